package model

import (
	"time"

	"github.com/guregu/null/v6"
)

// Trend is the dual-moving-average crossover classification.
type Trend string

const (
	TrendBullish Trend = "bullish"
	TrendBearish Trend = "bearish"
	TrendNeutral Trend = "neutral"
)

// Analysis holds the derived metrics for one instrument. It is recomputed on
// every fetch and owned by the caller that requested it.
type Analysis struct {
	Symbol         string     `json:"symbol"`
	Name           string     `json:"name"`
	InstrumentType string     `json:"instrument_type"`
	Currency       string     `json:"currency"`
	Price          float64    `json:"price"`
	ReferencePrice float64    `json:"reference_price"`
	Change         float64    `json:"change"`
	ChangePercent  float64    `json:"change_percent"`
	SMA50          null.Float `json:"sma50"`
	SMA200         null.Float `json:"sma200"`
	Trend          Trend      `json:"trend"`
	Volatility     float64    `json:"volatility"` // annualized, percent
	ComputedAt     time.Time  `json:"computed_at"`
}
