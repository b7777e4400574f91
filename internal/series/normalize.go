package series

import (
	"sort"
	"time"

	"github.com/guregu/null/v6"

	"alphaview/internal/model"
)

// Normalize converts raw parallel (timestamp, price) columns into a clean
// series: indices with a null price or null timestamp are dropped, duplicate
// timestamps keep the first occurrence in raw order, and the result is
// sorted ascending by time. An all-null or empty input yields an empty
// series, never an error.
func Normalize(timestamps []null.Int64, prices []null.Float) model.Series {
	n := len(timestamps)
	if len(prices) < n {
		n = len(prices)
	}

	seen := make(map[int64]bool, n)
	out := make(model.Series, 0, n)
	for i := 0; i < n; i++ {
		if !timestamps[i].Valid || !prices[i].Valid {
			continue
		}
		ts := timestamps[i].Int64
		if seen[ts] {
			continue
		}
		seen[ts] = true
		out = append(out, model.PricePoint{
			Time:  time.Unix(ts, 0).UTC(),
			Price: prices[i].Float64,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out
}

// FromChart normalizes a validated chart payload, preferring the adjusted
// close column when the upstream provides one.
func FromChart(chart *model.Chart) model.Series {
	return Normalize(chart.Timestamps, chart.PriceColumn())
}
