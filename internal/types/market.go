package types

import "time"

// Bar is a single OHLC candle from the price feed.
type Bar struct {
	Time   time.Time `json:"time" csv:"time"`
	Open   float64   `json:"open" csv:"open"`
	High   float64   `json:"high" csv:"high"`
	Low    float64   `json:"low" csv:"low"`
	Close  float64   `json:"close" csv:"close"`
	Volume float64   `json:"volume" csv:"volume"`
}

// Period selects how much history a feed should return.
type Period string

const (
	PeriodWeek    Period = "1w"
	PeriodMonth   Period = "1mo"
	PeriodQuarter Period = "3mo"
	PeriodYear    Period = "1y"
)

// Duration maps a period to its wall-clock length.
func (p Period) Duration() time.Duration {
	switch p {
	case PeriodWeek:
		return 7 * 24 * time.Hour
	case PeriodMonth:
		return 30 * 24 * time.Hour
	case PeriodQuarter:
		return 91 * 24 * time.Hour
	case PeriodYear:
		return 365 * 24 * time.Hour
	default:
		return 30 * 24 * time.Hour
	}
}
