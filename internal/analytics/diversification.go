package analytics

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/rxtech-lab/paper-trading/internal/marketdata"
	"github.com/rxtech-lab/paper-trading/internal/types"
)

// Diversification returns, for each ticker with nonzero market value, its
// proportion of the total market value of all positions. Proportions sum
// to one whenever any position has value. The result is empty when the
// total is zero; no division by zero ever happens. Tickers with a missing
// price contribute nothing and appear in the warnings.
func Diversification(ctx context.Context, snapshot types.Snapshot, feed marketdata.PriceFeed) (map[string]float64, []Warning) {
	values := make(map[string]decimal.Decimal, len(snapshot.Positions))
	warnings := make([]Warning, 0)
	total := decimal.Zero

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
		if value.IsZero() {
			continue
		}

		values[ticker] = value
		total = total.Add(value)
	}

	proportions := make(map[string]float64)
	if total.IsZero() {
		return proportions, warnings
	}

	for ticker, value := range values {
		proportion, _ := value.Div(total).Float64()
		proportions[ticker] = proportion
	}

	return proportions, warnings
}
