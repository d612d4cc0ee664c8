package analytics

import (
	"github.com/rxtech-lab/paper-trading/pkg/errors"
)

// Beta computes the covariance of the asset's returns with the benchmark's
// returns, divided by the benchmark variance. The two series are aligned by
// an inner join on timestamp; unmatched points are dropped.
//
// It is undefined when fewer than two aligned points remain or when the
// benchmark variance is zero.
func Beta(asset, benchmark []Return) (float64, error) {
	benchByTime := make(map[int64]float64, len(benchmark))
	for _, r := range benchmark {
		benchByTime[r.Time.UnixNano()] = r.Value
	}

	assetAligned := make([]float64, 0, len(asset))
	benchAligned := make([]float64, 0, len(asset))

	for _, r := range asset {
		b, ok := benchByTime[r.Time.UnixNano()]
		if !ok {
			continue
		}

		assetAligned = append(assetAligned, r.Value)
		benchAligned = append(benchAligned, b)
	}

	if len(assetAligned) < 2 {
		return 0, errors.NewInsufficientDataErrorf(2, len(assetAligned), "",
			"beta requires at least 2 aligned return points, have %d", len(assetAligned))
	}

	covariance, variance := covVar(assetAligned, benchAligned)
	if variance == 0 {
		return 0, errors.New(errors.ErrCodeUndefinedIndicator, "beta undefined: benchmark variance is zero")
	}

	return covariance / variance, nil
}

// covVar returns Cov(a, b) and Var(b) with matching sample (n-1) denominators.
func covVar(a, b []float64) (float64, float64) {
	n := float64(len(a))

	meanA := 0.0
	meanB := 0.0

	for i := range a {
		meanA += a[i]
		meanB += b[i]
	}

	meanA /= n
	meanB /= n

	covariance := 0.0
	variance := 0.0

	for i := range a {
		covariance += (a[i] - meanA) * (b[i] - meanB)
		variance += (b[i] - meanB) * (b[i] - meanB)
	}

	covariance /= n - 1
	variance /= n - 1

	return covariance, variance
}
