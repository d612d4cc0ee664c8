package watchlist

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
)

type WatchlistTestSuite struct {
	suite.Suite
	list *Watchlist
}

func TestWatchlistSuite(t *testing.T) {
	suite.Run(t, new(WatchlistTestSuite))
}

func (suite *WatchlistTestSuite) SetupTest() {
	suite.list = NewWatchlist()
}

func (suite *WatchlistTestSuite) TestAddPreservesInsertionOrder() {
	suite.True(suite.list.Add("MSFT"))
	suite.True(suite.list.Add("AAPL"))
	suite.True(suite.list.Add("TSLA"))

	suite.Equal([]string{"MSFT", "AAPL", "TSLA"}, suite.list.Symbols())
}

func (suite *WatchlistTestSuite) TestAddDuplicateIsNoop() {
	suite.True(suite.list.Add("AAPL"))
	suite.False(suite.list.Add("AAPL"))

	suite.Equal([]string{"AAPL"}, suite.list.Symbols())
}

func (suite *WatchlistTestSuite) TestRemove() {
	suite.list.Add("MSFT")
	suite.list.Add("AAPL")
	suite.list.Add("TSLA")

	suite.True(suite.list.Remove("AAPL"))
	suite.False(suite.list.Remove("AAPL"))
	suite.False(suite.list.Remove("GOOG"))

	suite.Equal([]string{"MSFT", "TSLA"}, suite.list.Symbols())
	suite.False(suite.list.Contains("AAPL"))
	suite.True(suite.list.Contains("MSFT"))
}

func (suite *WatchlistTestSuite) TestEmpty() {
	suite.Empty(suite.list.Symbols())
	suite.False(suite.list.Contains("AAPL"))
	suite.False(suite.list.Remove("AAPL"))
}

func (suite *WatchlistTestSuite) TestSymbolsReturnsCopy() {
	suite.list.Add("AAPL")

	symbols := suite.list.Symbols()
	symbols[0] = "XXXX"

	suite.Equal([]string{"AAPL"}, suite.list.Symbols())
}

func (suite *WatchlistTestSuite) TestConcurrentAccess() {
	var wg sync.WaitGroup

	tickers := []string{"AAPL", "MSFT", "TSLA", "GOOG", "AMZN"}
	for range 10 {
		for _, ticker := range tickers {
			wg.Add(1)

			go func() {
				defer wg.Done()
				suite.list.Add(ticker)
				suite.list.Contains(ticker)
				suite.list.Symbols()
			}()
		}
	}

	wg.Wait()
	suite.Len(suite.list.Symbols(), len(tickers))
}
