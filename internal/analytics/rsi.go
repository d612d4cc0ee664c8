package analytics

import (
	"github.com/moznion/go-optional"

	"github.com/rxtech-lab/paper-trading/pkg/errors"
)

// DefaultRSIWindow is the conventional RSI lookback.
const DefaultRSIWindow = 14

// RSISeries computes the Relative Strength Index over a close-price series
// using rolling simple means of gains and losses over the window.
//
// The result has one entry per input price. The first window entries are
// None: there is not enough history to define the oscillator there. By
// convention a zero average loss yields RSI = 100, and a flat window
// (zero gains and zero losses) yields RSI = 50.
func RSISeries(prices []float64, window int) ([]optional.Option[float64], error) {
	if window <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "rsi window must be positive, got %d", window)
	}

	series := make([]optional.Option[float64], len(prices))
	for i := range series {
		series[i] = optional.None[float64]()
	}

	if len(prices) < window+1 {
		return series, nil
	}

	// deltas[t] = prices[t] - prices[t-1], defined for t >= 1
	deltas := make([]float64, len(prices))
	for t := 1; t < len(prices); t++ {
		deltas[t] = prices[t] - prices[t-1]
	}

	for t := window; t < len(prices); t++ {
		var gainSum, lossSum float64

		for k := t - window + 1; k <= t; k++ {
			if deltas[k] > 0 {
				gainSum += deltas[k]
			} else {
				lossSum += -deltas[k]
			}
		}

		avgGain := gainSum / float64(window)
		avgLoss := lossSum / float64(window)

		series[t] = optional.Some(rsiFromAverages(avgGain, avgLoss))
	}

	return series, nil
}

// RSIValue returns the most recent defined RSI value of the series.
func RSIValue(prices []float64, window int) (float64, error) {
	series, err := RSISeries(prices, window)
	if err != nil {
		return 0, err
	}

	if len(prices) < window+1 {
		return 0, errors.NewInsufficientDataErrorf(window+1, len(prices), "",
			"rsi requires %d prices, have %d", window+1, len(prices))
	}

	return series[len(series)-1].Unwrap(), nil
}

func rsiFromAverages(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		if avgGain == 0 {
			// Flat window: gains and losses cancel out, 0/0 pins to neutral.
			return 50
		}

		return 100
	}

	rs := avgGain / avgLoss

	return 100 - 100/(1+rs)
}
