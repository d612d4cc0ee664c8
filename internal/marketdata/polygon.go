package marketdata

import (
	"context"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"

	"github.com/rxtech-lab/paper-trading/internal/types"
	"github.com/rxtech-lab/paper-trading/pkg/errors"
)

// PolygonFeed serves quotes and daily bars from the polygon.io REST API.
type PolygonFeed struct {
	client *polygon.Client
}

// NewPolygonFeed creates a polygon-backed price feed.
func NewPolygonFeed(apiKey string) (*PolygonFeed, error) {
	if apiKey == "" {
		return nil, errors.New(errors.ErrCodeInvalidProvider, "polygon apiKey is required")
	}

	return &PolygonFeed{
		client: polygon.New(apiKey),
	}, nil
}

// CurrentPrice implements PriceFeed using the previous-close aggregate.
func (f *PolygonFeed) CurrentPrice(ctx context.Context, ticker string) (float64, error) {
	//nolint:exhaustruct // third-party struct with many optional fields
	params := &models.GetPreviousCloseAggParams{
		Ticker: ticker,
	}

	res, err := f.client.GetPreviousCloseAgg(ctx, params)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrCodePriceUnavailable, err, "failed to fetch quote for %s", ticker)
	}

	if len(res.Results) == 0 {
		return 0, errors.Newf(errors.ErrCodePriceUnavailable, "no quote for symbol %s", ticker)
	}

	return res.Results[0].Close, nil
}

// History implements PriceFeed with daily aggregates over the period.
func (f *PolygonFeed) History(ctx context.Context, ticker string, period types.Period) ([]types.Bar, error) {
	endDate := time.Now()
	startDate := endDate.Add(-period.Duration())

	//nolint:exhaustruct // third-party struct with many optional fields
	params := models.ListAggsParams{
		Ticker:     ticker,
		Multiplier: 1,
		Timespan:   models.Day,
		From:       models.Millis(startDate),
		To:         models.Millis(endDate),
	}.WithLimit(50000)

	iter := f.client.ListAggs(ctx, params)

	bars := make([]types.Bar, 0)

	for iter.Next() {
		agg := iter.Item()
		bars = append(bars, types.Bar{
			Time:   time.Time(agg.Timestamp),
			Open:   agg.Open,
			High:   agg.High,
			Low:    agg.Low,
			Close:  agg.Close,
			Volume: agg.Volume,
		})
	}

	if iter.Err() != nil {
		return nil, errors.Wrapf(errors.ErrCodeHistoryUnavailable, iter.Err(), "failed to fetch history for %s", ticker)
	}

	return bars, nil
}

var _ PriceFeed = (*PolygonFeed)(nil)
