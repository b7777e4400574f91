package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ErrNoRelay is returned when every relay (and every sweep) has been
// exhausted for one target URL. The wrapped message carries the last
// observed attempt error as diagnostic context.
var ErrNoRelay = errors.New("no relay available")

// DefaultTimeout bounds a single relay attempt.
const DefaultTimeout = 10 * time.Second

// Selector retrieves a target URL through an ordered list of untrusted
// forwarding endpoints. Each relay is an address prefix into which the
// fully-encoded target URL is substituted. Safe for concurrent use.
type Selector struct {
	Relays  []string
	Timeout time.Duration
	Sweeps  int
	Client  *http.Client
}

// NewSelector builds a Selector. A non-positive timeout falls back to
// DefaultTimeout; sweeps below 1 are clamped to a single pass.
func NewSelector(relays []string, timeout time.Duration, sweeps int) *Selector {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if sweeps < 1 {
		sweeps = 1
	}
	return &Selector{
		Relays:  relays,
		Timeout: timeout,
		Sweeps:  sweeps,
		Client:  &http.Client{},
	}
}

// Fetch tries each relay in order and returns the first non-empty,
// JSON-parseable 2xx body verbatim. Any of {transport error, timeout,
// non-2xx status, empty body, unparseable body} fails the attempt and moves
// on to the next relay. When Sweeps > 1 the whole relay list is retried
// with a linear backoff between passes.
func (s *Selector) Fetch(ctx context.Context, targetURL string) ([]byte, error) {
	if len(s.Relays) == 0 {
		return nil, fmt.Errorf("%w: no relays configured", ErrNoRelay)
	}

	var lastErr error
	for sweep := 1; sweep <= s.Sweeps; sweep++ {
		for _, prefix := range s.Relays {
			body, err := s.attempt(ctx, prefix+url.QueryEscape(targetURL))
			if err == nil {
				return body, nil
			}
			lastErr = err
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
		}
		if sweep < s.Sweeps {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(sweep) * time.Second):
			}
		}
	}
	return nil, fmt.Errorf("%w: last error: %v", ErrNoRelay, lastErr)
}

func (s *Selector) attempt(ctx context.Context, requestURL string) ([]byte, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("relay fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("relay read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("relay: status %d", resp.StatusCode)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errors.New("relay: empty body")
	}
	if !json.Valid(body) {
		return nil, errors.New("relay: body is not JSON")
	}
	return body, nil
}
