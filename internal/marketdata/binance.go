package marketdata

import (
	"context"
	"strconv"
	"time"

	binance "github.com/adshao/go-binance/v2"

	"github.com/rxtech-lab/paper-trading/internal/types"
	"github.com/rxtech-lab/paper-trading/pkg/errors"
)

// BinanceFeed serves quotes and daily klines from the public Binance API.
// No API key is required for market data endpoints.
type BinanceFeed struct {
	client *binance.Client
}

// NewBinanceFeed creates a Binance-backed price feed.
func NewBinanceFeed() *BinanceFeed {
	return &BinanceFeed{
		client: binance.NewClient("", ""),
	}
}

// CurrentPrice implements PriceFeed via the ticker price endpoint.
func (f *BinanceFeed) CurrentPrice(ctx context.Context, ticker string) (float64, error) {
	prices, err := f.client.NewListPricesService().Symbol(ticker).Do(ctx)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrCodePriceUnavailable, err, "failed to fetch quote for %s", ticker)
	}

	if len(prices) == 0 {
		return 0, errors.Newf(errors.ErrCodePriceUnavailable, "no quote for symbol %s", ticker)
	}

	price, err := strconv.ParseFloat(prices[0].Price, 64)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrCodePriceUnavailable, err, "failed to parse quote for %s", ticker)
	}

	return price, nil
}

// History implements PriceFeed with daily klines over the period.
func (f *BinanceFeed) History(ctx context.Context, ticker string, period types.Period) ([]types.Bar, error) {
	endTime := time.Now()
	startTime := endTime.Add(-period.Duration())

	klines, err := f.client.NewKlinesService().
		Symbol(ticker).
		Interval("1d").
		StartTime(startTime.UnixMilli()).
		EndTime(endTime.UnixMilli()).
		Do(ctx)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeHistoryUnavailable, err, "failed to fetch klines for %s", ticker)
	}

	bars := make([]types.Bar, 0, len(klines))

	for _, kline := range klines {
		bar, err := klineToBar(kline)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeHistoryUnavailable, err, "failed to parse kline for %s", ticker)
		}

		bars = append(bars, bar)
	}

	return bars, nil
}

// klineToBar converts the Binance string-typed kline to a Bar.
func klineToBar(kline *binance.Kline) (types.Bar, error) {
	open, err := strconv.ParseFloat(kline.Open, 64)
	if err != nil {
		return types.Bar{}, err
	}

	high, err := strconv.ParseFloat(kline.High, 64)
	if err != nil {
		return types.Bar{}, err
	}

	low, err := strconv.ParseFloat(kline.Low, 64)
	if err != nil {
		return types.Bar{}, err
	}

	closePrice, err := strconv.ParseFloat(kline.Close, 64)
	if err != nil {
		return types.Bar{}, err
	}

	volume, err := strconv.ParseFloat(kline.Volume, 64)
	if err != nil {
		return types.Bar{}, err
	}

	return types.Bar{
		Time:   time.UnixMilli(kline.OpenTime),
		Open:   open,
		High:   high,
		Low:    low,
		Close:  closePrice,
		Volume: volume,
	}, nil
}

var _ PriceFeed = (*BinanceFeed)(nil)
