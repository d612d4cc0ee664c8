package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Position is the held quantity of one ticker.
type Position struct {
	Ticker   string `json:"ticker"`
	Quantity int64  `json:"quantity"`
}

// Snapshot is a read-only copy of the ledger state handed to callers.
// Mutating a snapshot has no effect on the ledger.
type Snapshot struct {
	Cash      decimal.Decimal  `json:"cash"`
	Positions map[string]int64 `json:"positions"`
	TakenAt   time.Time        `json:"taken_at"`
}

// PerformanceSample is one point of the total-portfolio-value time series,
// recorded after every successful trade.
type PerformanceSample struct {
	ID         string          `json:"id"`
	TotalValue decimal.Decimal `json:"total_value"`
	SampledAt  time.Time       `json:"sampled_at"`
}
