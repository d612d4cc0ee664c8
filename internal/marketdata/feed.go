// Package marketdata supplies current and historical prices to the ledger
// and analytics. Consumers must tolerate an unavailable price or empty
// history for any single ticker without aborting.
package marketdata

import (
	"context"
	"fmt"
	"sync"

	"github.com/rxtech-lab/paper-trading/internal/types"
	"github.com/rxtech-lab/paper-trading/pkg/errors"
)

// ProviderType defines the type of price feed provider.
type ProviderType string

const (
	ProviderStatic  ProviderType = "static"
	ProviderPolygon ProviderType = "polygon"
	ProviderBinance ProviderType = "binance"
)

// PriceFeed maps a ticker to a current price and to historical OHLC bars.
type PriceFeed interface {
	// CurrentPrice returns the latest quote for the ticker. Returns an
	// error with code ErrCodePriceUnavailable when no quote exists.
	CurrentPrice(ctx context.Context, ticker string) (float64, error)
	// History returns OHLC bars for the period, oldest first. An empty
	// slice is a valid result for an unknown ticker.
	History(ctx context.Context, ticker string, period types.Period) ([]types.Bar, error)
}

// NewPriceFeed creates a price feed based on the provider type.
func NewPriceFeed(providerType ProviderType, config any) (PriceFeed, error) {
	switch providerType {
	case ProviderStatic:
		return NewStaticFeed(), nil
	case ProviderBinance:
		return NewBinanceFeed(), nil
	case ProviderPolygon:
		apiKey, ok := config.(string)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidProvider, "polygon provider requires API key string config")
		}

		return NewPolygonFeed(apiKey)
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported price feed provider: %s", providerType)
	}
}

// StaticFeed is an in-memory price feed. It backs tests and the demo mode
// where no external market data source is configured.
type StaticFeed struct {
	mu     sync.RWMutex
	quotes map[string]float64
	bars   map[string][]types.Bar
}

// NewStaticFeed creates an empty static feed.
func NewStaticFeed() *StaticFeed {
	return &StaticFeed{
		quotes: make(map[string]float64),
		bars:   make(map[string][]types.Bar),
	}
}

// SetQuote sets the current price for a ticker.
func (f *StaticFeed) SetQuote(ticker string, price float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.quotes[ticker] = price
}

// RemoveQuote deletes the quote for a ticker, making it unavailable.
func (f *StaticFeed) RemoveQuote(ticker string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.quotes, ticker)
}

// SetBars sets the historical bars for a ticker.
func (f *StaticFeed) SetBars(ticker string, bars []types.Bar) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bars[ticker] = bars
}

// CurrentPrice implements PriceFeed.
func (f *StaticFeed) CurrentPrice(_ context.Context, ticker string) (float64, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	price, ok := f.quotes[ticker]
	if !ok {
		return 0, errors.Newf(errors.ErrCodePriceUnavailable, "no quote for symbol %s", ticker)
	}

	return price, nil
}

// History implements PriceFeed.
func (f *StaticFeed) History(_ context.Context, ticker string, period types.Period) ([]types.Bar, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	bars := f.bars[ticker]
	if len(bars) == 0 {
		return []types.Bar{}, nil
	}

	cutoff := bars[len(bars)-1].Time.Add(-period.Duration())
	out := make([]types.Bar, 0, len(bars))

	for _, bar := range bars {
		if bar.Time.Before(cutoff) {
			continue
		}

		out = append(out, bar)
	}

	return out, nil
}

var _ PriceFeed = (*StaticFeed)(nil)

// String returns the provider type name for logging.
func (p ProviderType) String() string {
	return string(p)
}

// ParseProviderType converts a string into a known ProviderType.
func ParseProviderType(s string) (ProviderType, error) {
	switch ProviderType(s) {
	case ProviderStatic, ProviderPolygon, ProviderBinance:
		return ProviderType(s), nil
	default:
		return "", fmt.Errorf("unknown price feed provider: %q", s)
	}
}
