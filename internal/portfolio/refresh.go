package portfolio

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"alphaview/internal/analysis"
	"alphaview/internal/collector"
	"alphaview/internal/model"
	"alphaview/internal/series"
)

// The EUR/USD rate is fetched alongside every batch as the quote of a
// currency-pair instrument. Its failure degrades to the fallback constant
// and never surfaces.
const (
	rateSymbol     = "EURUSD=X"
	FallbackEURUSD = 1.08
)

// Result is the outcome of one symbol's fetch-then-analyze pipeline.
// Analysis is nil when the symbol is unavailable; Err says why.
type Result struct {
	Symbol   string
	Analysis *model.Analysis
	Series   model.Series
	Err      error
}

// Unavailable reports whether this symbol yielded no usable analysis.
func (r Result) Unavailable() bool { return r.Analysis == nil }

// Snapshot is the aggregate outcome of one batch refresh. Results keeps the
// input symbol order.
type Snapshot struct {
	Results    []Result
	EURUSDRate float64
	TakenAt    time.Time
}

// Available counts symbols that produced an analysis.
func (s *Snapshot) Available() int {
	n := 0
	for _, r := range s.Results {
		if !r.Unavailable() {
			n++
		}
	}
	return n
}

// Refresher runs batch refreshes of a watchlist against one collector.
type Refresher struct {
	Collector *collector.Collector
	// FallbackRate replaces the EUR/USD rate when its fetch fails.
	FallbackRate float64
}

func NewRefresher(col *collector.Collector) *Refresher {
	return &Refresher{Collector: col, FallbackRate: FallbackEURUSD}
}

// Refresh starts one independent pipeline per symbol, all concurrent, plus
// the best-effort currency-rate fetch, and waits for the whole batch. One
// symbol's total failure (relays and ladder exhausted) never blocks or
// fails the others; it becomes an explicit unavailable marker in the
// snapshot.
func (r *Refresher) Refresh(ctx context.Context, symbols []string, spec model.RangeSpec) *Snapshot {
	fallback := r.FallbackRate
	if fallback == 0 {
		fallback = FallbackEURUSD
	}
	snap := &Snapshot{
		Results:    make([]Result, len(symbols)),
		EURUSDRate: fallback,
		TakenAt:    time.Now(),
	}

	var g errgroup.Group
	for i, symbol := range symbols {
		i, symbol := i, symbol
		g.Go(func() error {
			snap.Results[i] = r.refreshOne(ctx, symbol, spec)
			return nil
		})
	}
	g.Go(func() error {
		rate, err := r.fetchEURUSD(ctx)
		if err != nil {
			log.Printf("[WARN] EUR/USD rate fetch failed, using fallback %.4f: %v", fallback, err)
			return nil
		}
		snap.EURUSDRate = rate
		return nil
	})
	g.Wait()

	return snap
}

func (r *Refresher) refreshOne(ctx context.Context, symbol string, spec model.RangeSpec) Result {
	res := Result{Symbol: strings.ToUpper(strings.TrimSpace(symbol))}

	chart, err := r.Collector.Fetch(ctx, symbol, spec)
	if err != nil {
		log.Printf("[WARN] %s: no data returned: %v", res.Symbol, err)
		res.Err = err
		return res
	}

	res.Series = series.FromChart(chart)
	a, err := analysis.Analyze(res.Series, chart.Meta, spec)
	if err != nil {
		res.Err = err
		return res
	}
	res.Analysis = a
	return res
}

func (r *Refresher) fetchEURUSD(ctx context.Context) (float64, error) {
	chart, err := r.Collector.Fetch(ctx, rateSymbol, model.RangeSpec{Range: "1d", Interval: "1d"})
	if err != nil {
		return 0, err
	}
	if chart.Meta.RegularMarketPrice.Valid {
		return chart.Meta.RegularMarketPrice.Float64, nil
	}
	if s := series.FromChart(chart); len(s) > 0 {
		return s.Last(), nil
	}
	return 0, errors.New("rate payload carries no usable price")
}

// ValueInEUR converts a native-currency position value using the snapshot's
// EUR/USD rate. Non-USD values are assumed to already be in EUR.
func ValueInEUR(value float64, currency string, eurUsdRate float64) float64 {
	if currency == "USD" && eurUsdRate != 0 {
		return value / eurUsdRate
	}
	return value
}
