package analytics

import (
	"math"

	"github.com/rxtech-lab/paper-trading/pkg/errors"
)

// Volatility computes the sample standard deviation of the simple-return
// series derived from the price series. It is undefined for fewer than
// two returns (three prices).
func Volatility(prices []float64) (float64, error) {
	returns := make([]float64, 0, len(prices))

	for i := 1; i < len(prices); i++ {
		if prices[i-1] == 0 {
			continue
		}

		returns = append(returns, (prices[i]-prices[i-1])/prices[i-1])
	}

	if len(returns) < 2 {
		return 0, errors.NewInsufficientDataErrorf(2, len(returns), "",
			"volatility requires at least 2 returns, have %d", len(returns))
	}

	return stdDev(returns), nil
}

// stdDev is the sample standard deviation (n-1 denominator).
func stdDev(values []float64) float64 {
	mean := 0.0
	for _, v := range values {
		mean += v
	}

	mean /= float64(len(values))

	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}

	variance /= float64(len(values) - 1)

	return math.Sqrt(variance)
}
