package recorder

import (
	"alphaview/internal/model"

	"github.com/guregu/null/v6"
)

// QuoteSnapshot is one persisted analysis row from a refresh.
type QuoteSnapshot struct {
	Symbol        string
	Name          string
	Currency      string
	Price         float64
	ChangePercent float64
	SMA50         null.Float
	SMA200        null.Float
	Trend         string
	Volatility    float64
	Range         string
	Interval      string
}

// FetchFailure records a symbol whose relay sweep and fallback ladder were
// both exhausted during a refresh.
type FetchFailure struct {
	Symbol   string
	Range    string
	Interval string
	Reason   string
}

// SnapshotFromAnalysis maps an analysis result onto a persistable row.
func SnapshotFromAnalysis(a *model.Analysis, spec model.RangeSpec) *QuoteSnapshot {
	return &QuoteSnapshot{
		Symbol:        a.Symbol,
		Name:          a.Name,
		Currency:      a.Currency,
		Price:         a.Price,
		ChangePercent: a.ChangePercent,
		SMA50:         a.SMA50,
		SMA200:        a.SMA200,
		Trend:         string(a.Trend),
		Volatility:    a.Volatility,
		Range:         spec.Range,
		Interval:      spec.Interval,
	}
}

// Recorder persists refresh history for later inspection.
type Recorder interface {
	RecordQuote(snap *QuoteSnapshot) error
	RecordFailure(evt *FetchFailure) error
	Close() error
}
