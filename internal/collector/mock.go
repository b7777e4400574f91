package collector

import (
	"context"
	"fmt"
	"sync"

	"alphaview/internal/model"
)

// MockFetcher returns controllable fixed payloads for development and
// testing, keyed by "range/interval". FetchFunc, when set, takes over
// entirely (for per-symbol behavior). Unlisted requests fail.
type MockFetcher struct {
	mu        sync.Mutex
	Charts    map[string]*model.Chart
	Errs      map[string]error
	FetchFunc func(ctx context.Context, symbol string, spec model.RangeSpec) (*model.Chart, error)
	Requests  []model.RangeSpec
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchChart(ctx context.Context, symbol string, spec model.RangeSpec) (*model.Chart, error) {
	m.mu.Lock()
	m.Requests = append(m.Requests, spec)
	fn := m.FetchFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, symbol, spec)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.Errs[spec.String()]; ok {
		return nil, err
	}
	if chart, ok := m.Charts[spec.String()]; ok {
		return chart, nil
	}
	return nil, fmt.Errorf("mock: no data for %s", spec)
}

// RequestCount returns how many fetches have been issued.
func (m *MockFetcher) RequestCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Requests)
}
