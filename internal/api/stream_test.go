package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

func (suite *ServerTestSuite) TestPerformanceStreamPushesSamples() {
	id := suite.createSession()

	suite.do(http.MethodPost, "/api/sessions/"+id+"/orders", map[string]any{
		"ticker": "AAPL", "side": "BUY", "quantity": 1, "price": 100,
	})

	url := strings.Replace(suite.ts.URL, "http://", "ws://", 1) +
		"/api/sessions/" + id + "/performance/stream"

	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	suite.Require().NoError(err)

	defer resp.Body.Close()
	defer conn.Close()

	suite.Require().NoError(conn.SetReadDeadline(time.Now().Add(5 * time.Second)))

	var sample struct {
		ID         string `json:"id"`
		TotalValue string `json:"total_value"`
	}

	// The sample recorded before connecting arrives immediately.
	suite.Require().NoError(conn.ReadJSON(&sample))
	suite.Equal("1000", sample.TotalValue)

	// A trade during the stream shows up on the next poll.
	suite.do(http.MethodPost, "/api/sessions/"+id+"/orders", map[string]any{
		"ticker": "MSFT", "side": "BUY", "quantity": 2, "price": 50,
	})

	suite.Require().NoError(conn.ReadJSON(&sample))
	suite.Equal("1000", sample.TotalValue)
}

func (suite *ServerTestSuite) TestPerformanceStreamUnknownSession() {
	url := strings.Replace(suite.ts.URL, "http://", "ws://", 1) +
		"/api/sessions/no-such-session/performance/stream"

	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	suite.Require().Error(err)
	suite.Require().NotNil(resp)

	defer resp.Body.Close()
	suite.Equal(http.StatusNotFound, resp.StatusCode)
}
