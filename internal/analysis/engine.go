package analysis

import (
	"errors"
	"time"

	"github.com/guregu/null/v6"

	"alphaview/internal/calculator"
	"alphaview/internal/model"
)

// ErrInsufficientSeries is returned when fewer than 2 clean points remain
// after normalization. Callers treat it as "no analysis available" for that
// symbol, equivalent to a fetch failure.
var ErrInsufficientSeries = errors.New("insufficient series for analysis")

// Moving-average windows for the trend classification.
const (
	shortWindow = 50
	longWindow  = 200
)

// Analyze derives the metric set for one instrument from a clean series and
// its metadata. Pure function of its inputs; no network or storage access.
//
// The reference price is the first point of the series (period-start
// baseline). When the requested range is the single-day granularity and the
// metadata carries a previous-session close, that close replaces the
// period start, so a one-day view reads "change since yesterday" instead of
// "change since market open".
func Analyze(s model.Series, meta model.InstrumentMeta, requested model.RangeSpec) (*model.Analysis, error) {
	if len(s) < 2 {
		return nil, ErrInsufficientSeries
	}

	prices := s.Prices()
	current := prices[len(prices)-1]

	reference := prices[0]
	if requested.Range == "1d" && meta.ChartPreviousClose.Valid {
		reference = meta.ChartPreviousClose.Float64
	}

	change := current - reference
	changePercent := 0.0
	if reference != 0 {
		changePercent = change / reference * 100
	}

	sma50 := calculator.SMA(prices, shortWindow)
	sma200 := calculator.SMA(prices, longWindow)

	instrumentType := meta.InstrumentType
	if instrumentType == "" {
		instrumentType = model.TypeEquity
	}

	return &model.Analysis{
		Symbol:         meta.Symbol,
		Name:           meta.DisplayName(),
		InstrumentType: instrumentType,
		Currency:       meta.Currency,
		Price:          current,
		ReferencePrice: reference,
		Change:         change,
		ChangePercent:  changePercent,
		SMA50:          sma50,
		SMA200:         sma200,
		Trend:          ClassifyTrend(current, sma50, sma200),
		Volatility:     calculator.AnnualizedVolatility(prices),
		ComputedAt:     time.Now(),
	}, nil
}

// ClassifyTrend applies the dual-moving-average crossover rule: bullish
// above both averages, bearish below both, neutral otherwise — including
// whenever either average is unavailable. A heuristic, not a forecast.
func ClassifyTrend(current float64, sma50, sma200 null.Float) model.Trend {
	if !sma50.Valid || !sma200.Valid {
		return model.TrendNeutral
	}
	switch {
	case current > sma50.Float64 && current > sma200.Float64:
		return model.TrendBullish
	case current < sma50.Float64 && current < sma200.Float64:
		return model.TrendBearish
	default:
		return model.TrendNeutral
	}
}
