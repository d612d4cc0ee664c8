// Package watchlist keeps an insertion-ordered set of tickers a session
// is tracking for display.
package watchlist

import (
	"slices"
	"sync"
)

// Watchlist is a unique ticker set preserving insertion order.
type Watchlist struct {
	mu      sync.RWMutex
	tickers []string
}

// NewWatchlist creates an empty watchlist.
func NewWatchlist() *Watchlist {
	return &Watchlist{
		tickers: make([]string, 0),
	}
}

// Add appends the ticker if not already present. Returns true when the
// membership changed.
func (w *Watchlist) Add(ticker string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if slices.Contains(w.tickers, ticker) {
		return false
	}

	w.tickers = append(w.tickers, ticker)

	return true
}

// Remove deletes the ticker. Returns true when the membership changed.
func (w *Watchlist) Remove(ticker string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	i := slices.Index(w.tickers, ticker)
	if i < 0 {
		return false
	}

	w.tickers = slices.Delete(w.tickers, i, i+1)

	return true
}

// Contains reports membership.
func (w *Watchlist) Contains(ticker string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return slices.Contains(w.tickers, ticker)
}

// Symbols returns the tickers in insertion order.
func (w *Watchlist) Symbols() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return slices.Clone(w.tickers)
}
