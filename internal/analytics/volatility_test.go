package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/rxtech-lab/paper-trading/pkg/errors"
)

type VolatilityTestSuite struct {
	suite.Suite
}

func TestVolatilitySuite(t *testing.T) {
	suite.Run(t, new(VolatilityTestSuite))
}

func (suite *VolatilityTestSuite) TestKnownValue() {
	// Returns are +10% and -10%: mean 0, sample variance 0.02.
	prices := []float64{100, 110, 99}

	vol, err := Volatility(prices)
	suite.Require().NoError(err)
	suite.InDelta(math.Sqrt(0.02), vol, 1e-9)
}

func (suite *VolatilityTestSuite) TestFlatSeriesIsZero() {
	prices := []float64{100, 100, 100, 100}

	vol, err := Volatility(prices)
	suite.Require().NoError(err)
	suite.InDelta(0.0, vol, 1e-12)
}

func (suite *VolatilityTestSuite) TestTooFewPoints() {
	_, err := Volatility([]float64{100, 110})
	suite.Require().Error(err)
	suite.True(errors.IsInsufficientDataError(err))

	_, err = Volatility([]float64{})
	suite.Require().Error(err)
	suite.True(errors.IsInsufficientDataError(err))
}

func (suite *VolatilityTestSuite) TestZeroPricesAreSkipped() {
	// The zero price would divide by zero; that return is dropped.
	prices := []float64{0, 100, 110, 99}

	vol, err := Volatility(prices)
	suite.Require().NoError(err)
	suite.InDelta(math.Sqrt(0.02), vol, 1e-9)
}
