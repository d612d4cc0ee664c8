// Package wallet implements the mocked balance top-up. No payment
// integration exists: the identifier is an opaque string and the credited
// amount is a deterministic function of the user-entered amount.
package wallet

import (
	"fmt"
	"math/rand/v2"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rxtech-lab/paper-trading/internal/logger"
	"github.com/rxtech-lab/paper-trading/pkg/errors"
)

const (
	// MinIdentifierLen is the minimum accepted identifier length.
	MinIdentifierLen = 8
	// MinAmount and MaxAmount bound the accepted top-up amount.
	MinAmount = 20
	MaxAmount = 50
)

// Ledger is the cash account a top-up credits.
type Ledger interface {
	Credit(amount decimal.Decimal) decimal.Decimal
}

// TopUpResult reports a successful top-up. The confirmation code is a
// one-time display token and not part of ledger state.
type TopUpResult struct {
	Credited         decimal.Decimal `json:"credited"`
	Balance          decimal.Decimal `json:"balance"`
	ConfirmationCode string          `json:"confirmation_code"`
}

// Wallet validates top-up requests and credits the ledger.
type Wallet struct {
	ledger Ledger
	logger *logger.Logger
}

// NewWallet creates a wallet bound to one ledger.
func NewWallet(ledger Ledger, log *logger.Logger) *Wallet {
	return &Wallet{
		ledger: ledger,
		logger: log,
	}
}

// TopUp credits the ledger with amount squared, if the identifier is at
// least 8 characters and the amount lies in [20, 50]. A rejected request
// leaves the balance unchanged.
func (w *Wallet) TopUp(identifier string, amount float64) (TopUpResult, error) {
	if len(identifier) < MinIdentifierLen {
		return TopUpResult{}, errors.Newf(errors.ErrCodeInvalidTopUpIdentifier,
			"identifier must be at least %d characters, got %d", MinIdentifierLen, len(identifier))
	}

	if amount < MinAmount || amount > MaxAmount {
		return TopUpResult{}, errors.Newf(errors.ErrCodeInvalidTopUpAmount,
			"amount must be within [%d, %d], got %.2f", MinAmount, MaxAmount, amount)
	}

	credited := decimal.NewFromFloat(amount).Mul(decimal.NewFromFloat(amount))
	balance := w.ledger.Credit(credited)

	code := fmt.Sprintf("%06d", rand.IntN(1000000))

	w.logger.Info("Wallet topped up",
		zap.String("credited", credited.StringFixed(2)),
		zap.String("balance", balance.StringFixed(2)),
	)

	return TopUpResult{
		Credited:         credited,
		Balance:          balance,
		ConfirmationCode: code,
	}, nil
}
