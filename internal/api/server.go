// Package api exposes the session state over HTTP for the dashboard.
// All mutation flows through order execution, wallet top-up and watchlist
// membership; everything else is read-only.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/rxtech-lab/paper-trading/internal/analytics"
	"github.com/rxtech-lab/paper-trading/internal/logger"
	"github.com/rxtech-lab/paper-trading/internal/marketdata"
	"github.com/rxtech-lab/paper-trading/internal/session"
	"github.com/rxtech-lab/paper-trading/internal/types"
	"github.com/rxtech-lab/paper-trading/pkg/errors"
)

// Server routes dashboard requests to session state and analytics.
type Server struct {
	sessions  *session.Manager
	feed      marketdata.PriceFeed
	benchmark *marketdata.BenchmarkFeed
	rsiWindow int
	lookback  types.Period
	logger    *logger.Logger
	router    *mux.Router
}

// NewServer builds the HTTP server and its routes.
func NewServer(sessions *session.Manager, feed marketdata.PriceFeed, benchmark *marketdata.BenchmarkFeed, rsiWindow int, lookback types.Period, log *logger.Logger) *Server {
	s := &Server{
		sessions:  sessions,
		feed:      feed,
		benchmark: benchmark,
		rsiWindow: rsiWindow,
		lookback:  lookback,
		logger:    log,
		router:    mux.NewRouter(),
	}

	s.routes()

	return s
}

func (s *Server) routes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/sessions", s.handleCreateSession).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}", s.handleRemoveSession).Methods(http.MethodDelete)
	api.HandleFunc("/sessions/{id}/portfolio", s.handlePortfolio).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}/orders", s.handlePlaceOrder).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/wallet/topup", s.handleTopUp).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/watchlist", s.handleWatchlist).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}/watchlist", s.handleWatchlistAdd).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/watchlist/{ticker}", s.handleWatchlistRemove).Methods(http.MethodDelete)
	api.HandleFunc("/sessions/{id}/transactions", s.handleTransactions).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}/performance", s.handlePerformance).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}/performance/stream", s.handlePerformanceStream).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}/diversification", s.handleDiversification).Methods(http.MethodGet)
	api.HandleFunc("/analytics/rsi", s.handleRSI).Methods(http.MethodGet)
	api.HandleFunc("/analytics/volatility", s.handleVolatility).Methods(http.MethodGet)
	api.HandleFunc("/analytics/beta", s.handleBeta).Methods(http.MethodGet)
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Create()
	if err != nil {
		s.writeError(w, err)

		return
	}

	s.writeJSON(w, http.StatusCreated, map[string]any{
		"session_id": sess.ID,
		"created_at": sess.CreatedAt,
		"portfolio":  sess.Ledger.Snapshot(),
	})
}

func (s *Server) handleRemoveSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Remove(mux.Vars(r)["id"]); err != nil {
		s.writeError(w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)

		return
	}

	snapshot := sess.Ledger.Snapshot()
	total, warnings := analytics.TotalValue(r.Context(), snapshot, s.feed)

	s.writeJSON(w, http.StatusOK, map[string]any{
		"portfolio":   snapshot,
		"total_value": total,
		"warnings":    warningTickers(warnings),
	})
}

type orderRequest struct {
	Ticker   string   `json:"ticker"`
	Side     string   `json:"side"`
	Quantity int64    `json:"quantity"`
	Price    *float64 `json:"price,omitempty"`
}

func (s *Server) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)

		return
	}

	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidOrder, "invalid order body", err))

		return
	}

	price := 0.0
	if req.Price != nil {
		price = *req.Price
	} else {
		// No price supplied: fill with the feed's current quote.
		quote, err := s.feed.CurrentPrice(r.Context(), req.Ticker)
		if err != nil {
			s.writeError(w, err)

			return
		}

		price = quote
	}

	txn, err := sess.Ledger.Execute(r.Context(), types.Order{
		Ticker:   req.Ticker,
		Side:     types.Side(req.Side),
		Quantity: req.Quantity,
		Price:    price,
	})
	if err != nil {
		s.writeError(w, err)

		return
	}

	s.writeJSON(w, http.StatusCreated, txn)
}

type topUpRequest struct {
	Identifier string  `json:"identifier"`
	Amount     float64 `json:"amount"`
}

func (s *Server) handleTopUp(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)

		return
	}

	var req topUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidTopUpIdentifier, "invalid top-up body", err))

		return
	}

	result, err := sess.Wallet.TopUp(req.Identifier, req.Amount)
	if err != nil {
		s.writeError(w, err)

		return
	}

	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleWatchlist(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)

		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"tickers": sess.Watchlist.Symbols()})
}

type watchlistRequest struct {
	Ticker string `json:"ticker"`
}

func (s *Server) handleWatchlistAdd(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)

		return
	}

	var req watchlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Ticker == "" {
		s.writeError(w, errors.New(errors.ErrCodeInvalidParameter, "ticker is required"))

		return
	}

	sess.Watchlist.Add(req.Ticker)
	s.writeJSON(w, http.StatusOK, map[string]any{"tickers": sess.Watchlist.Symbols()})
}

func (s *Server) handleWatchlistRemove(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	sess, err := s.sessions.Get(vars["id"])
	if err != nil {
		s.writeError(w, err)

		return
	}

	sess.Watchlist.Remove(vars["ticker"])
	s.writeJSON(w, http.StatusOK, map[string]any{"tickers": sess.Watchlist.Symbols()})
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)

		return
	}

	transactions, err := sess.Ledger.Transactions()
	if err != nil {
		s.writeError(w, err)

		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"transactions": transactions})
}

func (s *Server) handlePerformance(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)

		return
	}

	samples, err := sess.Ledger.Samples()
	if err != nil {
		s.writeError(w, err)

		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"samples": samples})
}

func (s *Server) handleDiversification(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)

		return
	}

	proportions, warnings := analytics.Diversification(r.Context(), sess.Ledger.Snapshot(), s.feed)

	s.writeJSON(w, http.StatusOK, map[string]any{
		"proportions": proportions,
		"warnings":    warningTickers(warnings),
	})
}

func (s *Server) handleRSI(w http.ResponseWriter, r *http.Request) {
	symbol := r.URL.Query().Get("symbol")
	if symbol == "" {
		s.writeError(w, errors.New(errors.ErrCodeInvalidParameter, "symbol is required"))

		return
	}

	bars, err := s.feed.History(r.Context(), symbol, s.lookback)
	if err != nil {
		s.writeError(w, err)

		return
	}

	value, err := analytics.RSIValue(analytics.ClosePrices(bars), s.rsiWindow)
	if err != nil {
		s.writeError(w, err)

		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"symbol": symbol, "rsi": value, "window": s.rsiWindow})
}

func (s *Server) handleVolatility(w http.ResponseWriter, r *http.Request) {
	symbol := r.URL.Query().Get("symbol")
	if symbol == "" {
		s.writeError(w, errors.New(errors.ErrCodeInvalidParameter, "symbol is required"))

		return
	}

	bars, err := s.feed.History(r.Context(), symbol, s.lookback)
	if err != nil {
		s.writeError(w, err)

		return
	}

	value, err := analytics.Volatility(analytics.ClosePrices(bars))
	if err != nil {
		s.writeError(w, err)

		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"symbol": symbol, "volatility": value})
}

func (s *Server) handleBeta(w http.ResponseWriter, r *http.Request) {
	symbol := r.URL.Query().Get("symbol")
	if symbol == "" {
		s.writeError(w, errors.New(errors.ErrCodeInvalidParameter, "symbol is required"))

		return
	}

	assetBars, err := s.feed.History(r.Context(), symbol, s.lookback)
	if err != nil {
		s.writeError(w, err)

		return
	}

	benchBars, err := s.benchmark.History(r.Context(), s.lookback)
	if err != nil {
		s.writeError(w, err)

		return
	}

	value, err := analytics.Beta(analytics.Returns(assetBars), analytics.Returns(benchBars))
	if err != nil {
		s.writeError(w, err)

		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"symbol":    symbol,
		"benchmark": s.benchmark.Symbol(),
		"beta":      value,
	})
}

func warningTickers(warnings []analytics.Warning) []string {
	tickers := make([]string, 0, len(warnings))
	for _, w := range warnings {
		tickers = append(tickers, w.Ticker)
	}

	return tickers
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// writeError maps the error taxonomy to HTTP statuses. Recoverable
// rejections stay 4xx; feed failures surface as bad gateway.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidOrder, errors.ErrCodeInvalidParameter,
		errors.ErrCodeInvalidTopUpIdentifier, errors.ErrCodeInvalidTopUpAmount:
		status = http.StatusBadRequest
	case errors.ErrCodeInsufficientFunds, errors.ErrCodeInsufficientShares:
		status = http.StatusUnprocessableEntity
	case errors.ErrCodeSessionNotFound:
		status = http.StatusNotFound
	case errors.ErrCodePriceUnavailable, errors.ErrCodeHistoryUnavailable:
		status = http.StatusBadGateway
	}

	if errors.IsInsufficientDataError(err) {
		status = http.StatusUnprocessableEntity
	}

	s.writeJSON(w, status, map[string]any{
		"error": err.Error(),
		"code":  errors.GetCode(err),
	})
}
