package analytics

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/rxtech-lab/paper-trading/internal/marketdata"
	"github.com/rxtech-lab/paper-trading/internal/types"
)

type ValuationTestSuite struct {
	suite.Suite
	feed *marketdata.StaticFeed
	ctx  context.Context
}

func TestValuationSuite(t *testing.T) {
	suite.Run(t, new(ValuationTestSuite))
}

func (suite *ValuationTestSuite) SetupTest() {
	suite.feed = marketdata.NewStaticFeed()
	suite.ctx = context.Background()
}

func (suite *ValuationTestSuite) TestCashPlusPositions() {
	suite.feed.SetQuote("AAPL", 100)
	suite.feed.SetQuote("MSFT", 50)

	snapshot := types.Snapshot{
		Cash:      decimal.NewFromInt(500),
		Positions: map[string]int64{"AAPL": 2, "MSFT": 4},
	}

	total, warnings := TotalValue(suite.ctx, snapshot, suite.feed)
	suite.Empty(warnings)
	suite.True(decimal.NewFromInt(900).Equal(total), "got %s", total)
}

func (suite *ValuationTestSuite) TestMissingPriceCountsAsZero() {
	suite.feed.SetQuote("AAPL", 100)

	snapshot := types.Snapshot{
		Cash:      decimal.NewFromInt(500),
		Positions: map[string]int64{"AAPL": 2, "MSFT": 4},
	}

	total, warnings := TotalValue(suite.ctx, snapshot, suite.feed)
	suite.Require().Len(warnings, 1)
	suite.Equal("MSFT", warnings[0].Ticker)
	suite.True(decimal.NewFromInt(700).Equal(total), "got %s", total)
}

func (suite *ValuationTestSuite) TestCashOnly() {
	snapshot := types.Snapshot{Cash: decimal.NewFromInt(1234)}

	total, warnings := TotalValue(suite.ctx, snapshot, suite.feed)
	suite.Empty(warnings)
	suite.True(decimal.NewFromInt(1234).Equal(total))
}

type DiversificationTestSuite struct {
	suite.Suite
	feed *marketdata.StaticFeed
	ctx  context.Context
}

func TestDiversificationSuite(t *testing.T) {
	suite.Run(t, new(DiversificationTestSuite))
}

func (suite *DiversificationTestSuite) SetupTest() {
	suite.feed = marketdata.NewStaticFeed()
	suite.ctx = context.Background()
}

func (suite *DiversificationTestSuite) TestProportionsSumToOne() {
	suite.feed.SetQuote("AAPL", 100)
	suite.feed.SetQuote("MSFT", 50)

	snapshot := types.Snapshot{
		Cash:      decimal.NewFromInt(99999),
		Positions: map[string]int64{"AAPL": 3, "MSFT": 2}, // 300 and 100
	}

	proportions, warnings := Diversification(suite.ctx, snapshot, suite.feed)
	suite.Empty(warnings)
	suite.Require().Len(proportions, 2)
	suite.InDelta(0.75, proportions["AAPL"], 1e-9)
	suite.InDelta(0.25, proportions["MSFT"], 1e-9)

	sum := 0.0
	for _, p := range proportions {
		sum += p
	}

	suite.InDelta(1.0, sum, 1e-9)
}

func (suite *DiversificationTestSuite) TestCashIsExcluded() {
	suite.feed.SetQuote("AAPL", 100)

	snapshot := types.Snapshot{
		Cash:      decimal.NewFromInt(1000000),
		Positions: map[string]int64{"AAPL": 1},
	}

	proportions, _ := Diversification(suite.ctx, snapshot, suite.feed)
	suite.Require().Len(proportions, 1)
	suite.InDelta(1.0, proportions["AAPL"], 1e-9)
}

func (suite *DiversificationTestSuite) TestEmptyWhenNoValue() {
	proportions, warnings := Diversification(suite.ctx, types.Snapshot{
		Cash: decimal.NewFromInt(500),
	}, suite.feed)
	suite.Empty(proportions)
	suite.Empty(warnings)

	// Held position with a zero price still yields no proportions.
	suite.feed.SetQuote("AAPL", 0)

	proportions, warnings = Diversification(suite.ctx, types.Snapshot{
		Positions: map[string]int64{"AAPL": 5},
	}, suite.feed)
	suite.Empty(proportions)
	suite.Empty(warnings)
}

func (suite *DiversificationTestSuite) TestMissingPriceWarnsAndRenormalizes() {
	suite.feed.SetQuote("AAPL", 100)

	snapshot := types.Snapshot{
		Positions: map[string]int64{"AAPL": 1, "MSFT": 10},
	}

	proportions, warnings := Diversification(suite.ctx, snapshot, suite.feed)
	suite.Require().Len(warnings, 1)
	suite.Equal("MSFT", warnings[0].Ticker)
	suite.Require().Len(proportions, 1)
	suite.InDelta(1.0, proportions["AAPL"], 1e-9)
}
