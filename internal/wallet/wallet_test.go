package wallet

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/rxtech-lab/paper-trading/internal/logger"
	"github.com/rxtech-lab/paper-trading/pkg/errors"
)

type fakeLedger struct {
	balance decimal.Decimal
	credits int
}

func (l *fakeLedger) Credit(amount decimal.Decimal) decimal.Decimal {
	l.balance = l.balance.Add(amount)
	l.credits++

	return l.balance
}

type WalletTestSuite struct {
	suite.Suite
	ledger *fakeLedger
	wallet *Wallet
}

func TestWalletSuite(t *testing.T) {
	suite.Run(t, new(WalletTestSuite))
}

func (suite *WalletTestSuite) SetupTest() {
	suite.ledger = &fakeLedger{balance: decimal.NewFromInt(1000)}
	suite.wallet = NewWallet(suite.ledger, logger.NewNopLogger())
}

func (suite *WalletTestSuite) TestCreditsAmountSquared() {
	result, err := suite.wallet.TopUp("card-1234", 30)
	suite.Require().NoError(err)

	suite.True(decimal.NewFromInt(900).Equal(result.Credited), "got %s", result.Credited)
	suite.True(decimal.NewFromInt(1900).Equal(result.Balance), "got %s", result.Balance)
	suite.Equal(1, suite.ledger.credits)
}

func (suite *WalletTestSuite) TestConfirmationCodeIsSixDigits() {
	result, err := suite.wallet.TopUp("card-1234", 20)
	suite.Require().NoError(err)

	suite.Len(result.ConfirmationCode, 6)
	for _, r := range result.ConfirmationCode {
		suite.True(r >= '0' && r <= '9')
	}
}

func (suite *WalletTestSuite) TestShortIdentifierRejected() {
	_, err := suite.wallet.TopUp("short12", 30)
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidTopUpIdentifier))

	// Balance untouched.
	suite.True(decimal.NewFromInt(1000).Equal(suite.ledger.balance))
	suite.Equal(0, suite.ledger.credits)
}

func (suite *WalletTestSuite) TestAmountOutOfRangeRejected() {
	for _, amount := range []float64{19.99, 0, -5, 50.01, 1000} {
		_, err := suite.wallet.TopUp("card-1234", amount)
		suite.Require().Error(err, "amount %v", amount)
		suite.True(errors.HasCode(err, errors.ErrCodeInvalidTopUpAmount))
	}

	suite.Equal(0, suite.ledger.credits)
}

func (suite *WalletTestSuite) TestBoundaryAmountsAccepted() {
	_, err := suite.wallet.TopUp("card-1234", 20)
	suite.Require().NoError(err)

	_, err = suite.wallet.TopUp("card-1234", 50)
	suite.Require().NoError(err)

	// 400 + 2500 on top of the opening 1000.
	suite.True(decimal.NewFromInt(3900).Equal(suite.ledger.balance))
}
