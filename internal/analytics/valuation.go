// Package analytics derives valuation and risk indicators from ledger state
// and price history. All functions are pure: they read a snapshot and a
// feed, never mutate either, and degrade per ticker when prices are missing.
package analytics

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/rxtech-lab/paper-trading/internal/marketdata"
	"github.com/rxtech-lab/paper-trading/internal/types"
)

// Warning reports a ticker whose price was unavailable during a computation.
// Its contribution was substituted with zero instead of aborting the whole
// result.
type Warning struct {
	Ticker string `json:"ticker"`
	Err    error  `json:"-"`
}

// TotalValue computes cash plus the market value of every held position.
// A feed failure for one ticker counts that position as zero and is
// surfaced in the returned warnings; it never fails the computation.
//
// This is the single valuation definition: performance sampling and
// diversification both go through it.
func TotalValue(ctx context.Context, snapshot types.Snapshot, feed marketdata.PriceFeed) (decimal.Decimal, []Warning) {
	total := snapshot.Cash
	warnings := make([]Warning, 0)

	for ticker, quantity := range snapshot.Positions {
		if quantity == 0 {
			continue
		}

		price, err := feed.CurrentPrice(ctx, ticker)
		if err != nil {
			warnings = append(warnings, Warning{Ticker: ticker, Err: err})

			continue
		}

		value := decimal.NewFromFloat(price).Mul(decimal.NewFromInt(quantity))
		total = total.Add(value)
	}

	return total, warnings
}
