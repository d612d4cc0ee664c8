package types

import (
	"time"

	"github.com/shopspring/decimal"
)

type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Order is a buy or sell request against the ledger. Price is the quote the
// caller obtained from the price feed at call time; the ledger does not
// re-validate it against the market.
type Order struct {
	Ticker   string  `yaml:"ticker" json:"ticker" validate:"required"`
	Side     Side    `yaml:"side" json:"side" validate:"required,oneof=BUY SELL"`
	Quantity int64   `yaml:"quantity" json:"quantity" validate:"required,gt=0"`
	Price    float64 `yaml:"price" json:"price" validate:"gte=0"`
}

// Total returns the cash value of the order (quantity x price).
func (o Order) Total() decimal.Decimal {
	return decimal.NewFromFloat(o.Price).Mul(decimal.NewFromInt(o.Quantity))
}

// Transaction is the immutable record of an executed order. Created only by
// a successfully applied order, never mutated or deleted afterwards.
type Transaction struct {
	ID         string          `json:"id"`
	Ticker     string          `json:"ticker"`
	Side       Side            `json:"side"`
	Quantity   int64           `json:"quantity"`
	Price      float64         `json:"price"`
	Total      decimal.Decimal `json:"total"`
	ExecutedAt time.Time       `json:"executed_at"`
}
