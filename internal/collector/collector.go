package collector

import (
	"context"
	"log"
	"strings"

	"alphaview/internal/cache"
	"alphaview/internal/model"
)

// DefaultFallbacks is the downgrade ladder for intraday requests that the
// upstream cannot serve: first a week of daily closes, then a month. Funds
// and indices often have no intraday data at all.
var DefaultFallbacks = []model.RangeSpec{
	{Range: "5d", Interval: "1d"},
	{Range: "1mo", Interval: "1d"},
}

// Collector resolves (symbol, range, interval) requests through the response
// cache and, for intraday requests, the fallback ladder. One symbol's total
// failure is reported as an error and never cached.
type Collector struct {
	Fetcher   ChartFetcher
	Cache     cache.Store
	Fallbacks []model.RangeSpec
}

// NewCollector creates a Collector. A nil fallback list uses
// DefaultFallbacks.
func NewCollector(fetcher ChartFetcher, store cache.Store, fallbacks []model.RangeSpec) *Collector {
	if fallbacks == nil {
		fallbacks = DefaultFallbacks
	}
	return &Collector{Fetcher: fetcher, Cache: store, Fallbacks: fallbacks}
}

// Fetch returns a validated chart for the request, from cache when fresh.
// On a miss it tries the exact request first; if that fails and the request
// was intraday, each ladder rung is tried in order, strictly sequentially.
// Whatever rung succeeds, the result is cached under the originally
// requested key so an identical request replays the same substitution.
func (c *Collector) Fetch(ctx context.Context, symbol string, spec model.RangeSpec) (*model.Chart, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	key := cache.Key(symbol, spec)

	if chart, ok := c.Cache.Get(ctx, key); ok {
		return chart, nil
	}

	chart, err := c.Fetcher.FetchChart(ctx, symbol, spec)
	if err != nil && spec.Intraday() {
		for _, rung := range c.Fallbacks {
			log.Printf("[WARN] %s: %s fetch failed (%v), downgrading to %s", symbol, spec, err, rung)
			chart, err = c.Fetcher.FetchChart(ctx, symbol, rung)
			if err == nil {
				break
			}
		}
	}
	if err != nil {
		return nil, err
	}

	c.Cache.Set(ctx, key, chart)
	return chart, nil
}
