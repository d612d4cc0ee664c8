// Package ledger owns the cash balance and position quantities of one
// paper-trading session and the rules for mutating them.
package ledger

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rxtech-lab/paper-trading/internal/analytics"
	"github.com/rxtech-lab/paper-trading/internal/logger"
	"github.com/rxtech-lab/paper-trading/internal/marketdata"
	"github.com/rxtech-lab/paper-trading/internal/types"
	"github.com/rxtech-lab/paper-trading/pkg/errors"
)

// Ledger applies buy and sell orders to a cash balance and position map,
// appending one transaction and one performance sample per executed order.
// All operations on a ledger are serialized by its mutex: an order
// execution, its transaction append and its performance sample form one
// atomic unit with respect to concurrent readers.
type Ledger struct {
	mu          sync.Mutex
	cash        decimal.Decimal
	initialCash decimal.Decimal
	positions   map[string]int64
	universe    map[string]struct{}
	store       *RecordStore
	feed        marketdata.PriceFeed
	logger      *logger.Logger
}

// NewLedger creates a ledger with the given starting cash and closed
// ticker universe, zero positions everywhere.
func NewLedger(initialCash decimal.Decimal, universe []string, store *RecordStore, feed marketdata.PriceFeed, log *logger.Logger) *Ledger {
	known := make(map[string]struct{}, len(universe))
	for _, ticker := range universe {
		known[ticker] = struct{}{}
	}

	return &Ledger{
		cash:        initialCash,
		initialCash: initialCash,
		positions:   make(map[string]int64),
		universe:    known,
		store:       store,
		feed:        feed,
		logger:      log,
	}
}

// Execute applies an order to the ledger.
//
// A buy succeeds only if cash covers quantity x price; a sell succeeds
// only if the held quantity covers the order quantity. A rejected order
// leaves the ledger, the transaction log and the performance series
// completely unchanged. On success the ledger state mutates, then exactly
// one transaction and one performance sample are appended, in that order.
func (l *Ledger) Execute(ctx context.Context, order types.Order) (types.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.validateOrder(order); err != nil {
		return types.Transaction{}, err
	}

	newCash := l.cash
	cost := order.Total()

	switch order.Side {
	case types.SideBuy:
		if l.cash.LessThan(cost) {
			return types.Transaction{}, errors.Newf(errors.ErrCodeInsufficientFunds,
				"buy %d %s at %.2f costs %s, balance is %s",
				order.Quantity, order.Ticker, order.Price, cost.StringFixed(2), l.cash.StringFixed(2))
		}

		newCash = l.cash.Sub(cost)
	case types.SideSell:
		if held := l.positions[order.Ticker]; held < order.Quantity {
			return types.Transaction{}, errors.Newf(errors.ErrCodeInsufficientShares,
				"sell %d %s rejected, holding %d", order.Quantity, order.Ticker, held)
		}

		newCash = l.cash.Add(cost)
	}

	newPositions := maps.Clone(l.positions)
	if order.Side == types.SideBuy {
		newPositions[order.Ticker] += order.Quantity
	} else {
		newPositions[order.Ticker] -= order.Quantity
		if newPositions[order.Ticker] == 0 {
			// Closed positions leave the active set entirely.
			delete(newPositions, order.Ticker)
		}
	}

	now := time.Now()
	txn := types.Transaction{
		ID:         uuid.New().String(),
		Ticker:     order.Ticker,
		Side:       order.Side,
		Quantity:   order.Quantity,
		Price:      order.Price,
		Total:      cost,
		ExecutedAt: now,
	}

	// The sample values the post-trade portfolio at current feed quotes,
	// not at the trade price.
	totalValue, warnings := analytics.TotalValue(ctx, types.Snapshot{
		Cash:      newCash,
		Positions: newPositions,
		TakenAt:   now,
	}, l.feed)

	for _, w := range warnings {
		l.logger.Warn("Price unavailable during valuation, counted as zero",
			zap.String("ticker", w.Ticker),
			zap.Error(w.Err),
		)
	}

	sample := types.PerformanceSample{
		ID:         uuid.New().String(),
		TotalValue: totalValue,
		SampledAt:  now,
	}

	if err := l.store.Record(txn, sample); err != nil {
		// Nothing was committed; the in-memory state is only adopted below.
		return types.Transaction{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to append records", err)
	}

	l.cash = newCash
	l.positions = newPositions

	l.logger.Info("Order executed",
		zap.String("ticker", order.Ticker),
		zap.String("side", string(order.Side)),
		zap.Int64("quantity", order.Quantity),
		zap.Float64("price", order.Price),
		zap.String("cash", l.cash.StringFixed(2)),
	)

	return txn, nil
}

// validateOrder rejects malformed orders and tickers outside the universe.
func (l *Ledger) validateOrder(order types.Order) error {
	validate := validator.New()
	if err := validate.Struct(order); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidOrder, "invalid order", err)
	}

	if _, known := l.universe[order.Ticker]; !known {
		return errors.Newf(errors.ErrCodeInvalidOrder, "unknown ticker: %s", order.Ticker)
	}

	return nil
}

// Snapshot returns a read-only copy of the ledger state.
func (l *Ledger) Snapshot() types.Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	return types.Snapshot{
		Cash:      l.cash,
		Positions: maps.Clone(l.positions),
		TakenAt:   time.Now(),
	}
}

// Credit adds to the cash balance outside the order path. Used by wallet
// top-ups; no transaction is recorded, which intentionally breaks the
// buy/sell reconciliation audit from the moment of the first top-up.
func (l *Ledger) Credit(amount decimal.Decimal) decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.cash = l.cash.Add(amount)

	return l.cash
}

// InitialCash returns the fixed session starting balance.
func (l *Ledger) InitialCash() decimal.Decimal {
	return l.initialCash
}

// Universe returns the known instrument set.
func (l *Ledger) Universe() []string {
	tickers := make([]string, 0, len(l.universe))
	for ticker := range l.universe {
		tickers = append(tickers, ticker)
	}

	return tickers
}

// Transactions returns the full transaction log in append order.
func (l *Ledger) Transactions() ([]types.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.store.Transactions()
}

// Samples returns the performance series in append order.
func (l *Ledger) Samples() ([]types.PerformanceSample, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.store.Samples()
}

// Reconcile verifies that the net cash traded matches the drop from the
// initial balance. It only holds while no wallet top-up has occurred.
func (l *Ledger) Reconcile() (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	net, err := l.store.NetTraded()
	if err != nil {
		return false, err
	}

	expected := l.initialCash.Sub(l.cash)
	tolerance := decimal.New(1, -6)

	return net.Sub(expected).Abs().LessThanOrEqual(tolerance), nil
}
