// Package session ties one ledger, watchlist and wallet together per
// user session and isolates sessions from each other. A session's own
// operations are serialized by its ledger mutex; no state is shared
// between sessions.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rxtech-lab/paper-trading/internal/ledger"
	"github.com/rxtech-lab/paper-trading/internal/logger"
	"github.com/rxtech-lab/paper-trading/internal/marketdata"
	"github.com/rxtech-lab/paper-trading/internal/wallet"
	"github.com/rxtech-lab/paper-trading/internal/watchlist"
	"github.com/rxtech-lab/paper-trading/pkg/errors"
)

// Session is one isolated paper-trading account: ledger state, record
// store, watchlist and wallet, created at session start and never shared.
type Session struct {
	ID        string
	Ledger    *ledger.Ledger
	Watchlist *watchlist.Watchlist
	Wallet    *wallet.Wallet
	CreatedAt time.Time

	store *ledger.RecordStore
}

// Close releases the session's record store.
func (s *Session) Close() error {
	return s.store.Close()
}

// Manager creates and looks up sessions.
type Manager struct {
	mu             sync.RWMutex
	sessions       map[string]*Session
	initialBalance decimal.Decimal
	universe       []string
	feed           marketdata.PriceFeed
	logger         *logger.Logger
}

// NewManager creates a session manager. Every session starts with the
// same initial balance and ticker universe.
func NewManager(initialBalance decimal.Decimal, universe []string, feed marketdata.PriceFeed, log *logger.Logger) *Manager {
	return &Manager{
		sessions:       make(map[string]*Session),
		initialBalance: initialBalance,
		universe:       universe,
		feed:           feed,
		logger:         log,
	}
}

// Create starts a new session with a fresh ledger and empty watchlist.
func (m *Manager) Create() (*Session, error) {
	store, err := ledger.NewRecordStore(m.logger)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreUnavailable, "failed to open session record store", err)
	}

	if err := store.Initialize(); err != nil {
		store.Close()

		return nil, errors.Wrap(errors.ErrCodeStoreUnavailable, "failed to initialize session record store", err)
	}

	led := ledger.NewLedger(m.initialBalance, m.universe, store, m.feed, m.logger)

	sess := &Session{
		ID:        uuid.New().String(),
		Ledger:    led,
		Watchlist: watchlist.NewWatchlist(),
		Wallet:    wallet.NewWallet(led, m.logger),
		CreatedAt: time.Now(),
		store:     store,
	}

	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()

	m.logger.Info("Session created",
		zap.String("session_id", sess.ID),
		zap.String("initial_balance", m.initialBalance.StringFixed(2)),
	)

	return sess, nil
}

// Get looks up a session by ID.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sess, ok := m.sessions[id]
	if !ok {
		return nil, errors.Newf(errors.ErrCodeSessionNotFound, "session not found: %s", id)
	}

	return sess, nil
}

// Remove closes and forgets a session.
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	sess, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return errors.Newf(errors.ErrCodeSessionNotFound, "session not found: %s", id)
	}

	return sess.Close()
}

// Count returns the number of active sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.sessions)
}
