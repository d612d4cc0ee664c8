package analytics

import (
	"time"

	"github.com/rxtech-lab/paper-trading/internal/types"
)

// Return is one point of a simple-return series, stamped with the time of
// the later of the two bars it was derived from.
type Return struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

// Returns converts an OHLC series into simple close-to-close returns.
// Bars with a zero previous close are skipped rather than divided by.
func Returns(bars []types.Bar) []Return {
	if len(bars) < 2 {
		return []Return{}
	}

	out := make([]Return, 0, len(bars)-1)

	for i := 1; i < len(bars); i++ {
		prev := bars[i-1].Close
		if prev == 0 {
			continue
		}

		out = append(out, Return{
			Time:  bars[i].Time,
			Value: (bars[i].Close - prev) / prev,
		})
	}

	return out
}

// ClosePrices extracts the close-price series from bars.
func ClosePrices(bars []types.Bar) []float64 {
	prices := make([]float64, 0, len(bars))
	for _, bar := range bars {
		prices = append(prices, bar.Close)
	}

	return prices
}
