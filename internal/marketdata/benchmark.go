package marketdata

import (
	"context"

	"github.com/rxtech-lab/paper-trading/internal/types"
)

// BenchmarkFeed pins a price feed to one reference index symbol. It is
// consumed only by the beta calculation.
type BenchmarkFeed struct {
	feed   PriceFeed
	symbol string
}

// NewBenchmarkFeed wraps a feed around a fixed benchmark symbol.
func NewBenchmarkFeed(feed PriceFeed, symbol string) *BenchmarkFeed {
	return &BenchmarkFeed{
		feed:   feed,
		symbol: symbol,
	}
}

// Symbol returns the benchmark symbol.
func (b *BenchmarkFeed) Symbol() string {
	return b.symbol
}

// History returns the benchmark OHLC series for the period.
func (b *BenchmarkFeed) History(ctx context.Context, period types.Period) ([]types.Bar, error) {
	return b.feed.History(ctx, b.symbol, period)
}
