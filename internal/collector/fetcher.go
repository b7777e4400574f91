package collector

import (
	"context"

	"alphaview/internal/model"
)

// ChartFetcher retrieves one validated chart payload for a request.
type ChartFetcher interface {
	FetchChart(ctx context.Context, symbol string, spec model.RangeSpec) (*model.Chart, error)
	Name() string
}
