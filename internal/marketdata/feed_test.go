package marketdata

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/rxtech-lab/paper-trading/internal/types"
	"github.com/rxtech-lab/paper-trading/pkg/errors"
)

type StaticFeedTestSuite struct {
	suite.Suite
	feed *StaticFeed
	ctx  context.Context
}

func TestStaticFeedSuite(t *testing.T) {
	suite.Run(t, new(StaticFeedTestSuite))
}

func (suite *StaticFeedTestSuite) SetupTest() {
	suite.feed = NewStaticFeed()
	suite.ctx = context.Background()
}

func (suite *StaticFeedTestSuite) TestQuoteRoundTrip() {
	suite.feed.SetQuote("AAPL", 187.5)

	price, err := suite.feed.CurrentPrice(suite.ctx, "AAPL")
	suite.Require().NoError(err)
	suite.Equal(187.5, price)
}

func (suite *StaticFeedTestSuite) TestMissingQuote() {
	_, err := suite.feed.CurrentPrice(suite.ctx, "AAPL")
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodePriceUnavailable))
}

func (suite *StaticFeedTestSuite) TestRemoveQuote() {
	suite.feed.SetQuote("AAPL", 100)
	suite.feed.RemoveQuote("AAPL")

	_, err := suite.feed.CurrentPrice(suite.ctx, "AAPL")
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodePriceUnavailable))
}

func (suite *StaticFeedTestSuite) TestHistoryUnknownTickerIsEmpty() {
	bars, err := suite.feed.History(suite.ctx, "AAPL", types.PeriodMonth)
	suite.Require().NoError(err)
	suite.Empty(bars)
}

func (suite *StaticFeedTestSuite) TestHistoryWindowedByPeriod() {
	end := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	bars := make([]types.Bar, 0, 60)

	for i := 59; i >= 0; i-- {
		day := end.AddDate(0, 0, -i)
		bars = append(bars, types.Bar{Time: day, Close: 100 + float64(i)})
	}

	suite.feed.SetBars("AAPL", bars)

	week, err := suite.feed.History(suite.ctx, "AAPL", types.PeriodWeek)
	suite.Require().NoError(err)
	suite.Len(week, 8)
	suite.Equal(end, week[len(week)-1].Time)

	all, err := suite.feed.History(suite.ctx, "AAPL", types.PeriodQuarter)
	suite.Require().NoError(err)
	suite.Len(all, 60)
}

func (suite *StaticFeedTestSuite) TestParseProviderType() {
	for _, name := range []string{"static", "polygon", "binance"} {
		provider, err := ParseProviderType(name)
		suite.Require().NoError(err)
		suite.Equal(name, provider.String())
	}

	_, err := ParseProviderType("yahoo")
	suite.Require().Error(err)
}

func (suite *StaticFeedTestSuite) TestNewPriceFeed() {
	feed, err := NewPriceFeed(ProviderStatic, nil)
	suite.Require().NoError(err)
	suite.IsType(&StaticFeed{}, feed)

	_, err = NewPriceFeed(ProviderPolygon, nil)
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidProvider))

	_, err = NewPriceFeed(ProviderType("yahoo"), nil)
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidProvider))
}
