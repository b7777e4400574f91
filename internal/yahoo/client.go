package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"alphaview/internal/model"
	"alphaview/internal/relay"
)

// Default upstream endpoints. Both are only ever reached through a relay.
const (
	DefaultChartBaseURL  = "https://query1.finance.yahoo.com/v8/finance/chart"
	DefaultSearchBaseURL = "https://query1.finance.yahoo.com/v1/finance/search"
)

var (
	// ErrBadPayload marks a response that failed structural validation.
	ErrBadPayload = errors.New("malformed chart payload")
	// ErrNoPriceData marks a structurally valid payload with no usable
	// price signal: every close is null and the meta block carries neither
	// a market price nor a previous close.
	ErrNoPriceData = errors.New("no price data in payload")
)

// Client fetches chart and search payloads from the upstream finance API
// through a relay selector, and validates them at this boundary.
type Client struct {
	Relay         *relay.Selector
	ChartBaseURL  string
	SearchBaseURL string
}

// NewClient builds a Client. Empty base URLs fall back to the defaults.
func NewClient(sel *relay.Selector, chartBaseURL, searchBaseURL string) *Client {
	if chartBaseURL == "" {
		chartBaseURL = DefaultChartBaseURL
	}
	if searchBaseURL == "" {
		searchBaseURL = DefaultSearchBaseURL
	}
	return &Client{Relay: sel, ChartBaseURL: chartBaseURL, SearchBaseURL: searchBaseURL}
}

func (c *Client) Name() string { return "yahoo" }

// FetchChart retrieves one chart payload and validates it structurally
// (non-empty result array) and semantically (some price signal exists).
// It never returns a payload without a usable price.
func (c *Client) FetchChart(ctx context.Context, symbol string, spec model.RangeSpec) (*model.Chart, error) {
	target := fmt.Sprintf("%s/%s?interval=%s&range=%s",
		c.ChartBaseURL, url.PathEscape(symbol), spec.Interval, spec.Range)

	body, err := c.Relay.Fetch(ctx, target)
	if err != nil {
		return nil, err
	}

	var env chartEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	if env.Chart.Error != nil {
		return nil, fmt.Errorf("%w: upstream error: %s", ErrBadPayload, env.Chart.Error.Description)
	}
	if len(env.Chart.Result) == 0 {
		return nil, fmt.Errorf("%w: empty result array", ErrBadPayload)
	}

	chart := env.Chart.Result[0].toModel()
	if !chart.HasPrices() && !chart.HasQuote() {
		return nil, fmt.Errorf("%w: %s %s", ErrNoPriceData, symbol, spec)
	}
	return chart, nil
}
