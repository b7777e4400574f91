package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"alphaview/internal/model"
)

// DefaultTTL bounds how stale a cached chart may be. Bounded staleness is
// acceptable for a dashboard.
const DefaultTTL = 5 * time.Minute

// Store memoizes validated chart payloads per (symbol, range, interval).
// Failed fetches are never stored, so a transient outage does not poison
// later attempts. Implementations must be safe for concurrent use;
// same-key races resolve last-write-wins.
type Store interface {
	Get(ctx context.Context, key string) (*model.Chart, bool)
	Set(ctx context.Context, key string, chart *model.Chart)
}

// Key builds the cache key for a request. Distinct ranges or intervals for
// the same symbol are distinct entries: the downgrade ladder can silently
// substitute a different rung, and the key must stay the requested one.
func Key(symbol string, spec model.RangeSpec) string {
	return strings.ToUpper(symbol) + "|" + spec.Range + "|" + spec.Interval
}

type entry struct {
	chart      *model.Chart
	insertedAt time.Time
}

// Memory is the default in-process Store. Expiry is checked lazily on read;
// stale entries are overwritten on the next successful fetch rather than
// swept in the background.
type Memory struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry
	now     func() time.Time
}

// NewMemory builds a Memory store. A non-positive TTL falls back to
// DefaultTTL.
func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Memory{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key string) (*model.Chart, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	if m.now().Sub(e.insertedAt) >= m.ttl {
		return nil, false
	}
	return e.chart, true
}

func (m *Memory) Set(_ context.Context, key string, chart *model.Chart) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = entry{chart: chart, insertedAt: m.now()}
}
