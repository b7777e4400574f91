package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"alphaview/internal/model"
)

// SearchResult is one candidate instrument match.
type SearchResult struct {
	Symbol   string
	Name     string
	Type     string
	Exchange string
}

// Search queries the upstream auto-complete endpoint. Matches that are not
// flagged as authoritative by the provider are dropped.
func (c *Client) Search(ctx context.Context, query string) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	target := fmt.Sprintf("%s?q=%s&quotesCount=10&newsCount=0",
		c.SearchBaseURL, url.QueryEscape(query))

	body, err := c.Relay.Fetch(ctx, target)
	if err != nil {
		return nil, err
	}

	var env searchEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	results := make([]SearchResult, 0, len(env.Quotes))
	for _, q := range env.Quotes {
		if !q.IsYahooFinance {
			continue
		}
		name := q.ShortName
		if name == "" {
			name = q.LongName
		}
		if name == "" {
			name = q.Symbol
		}
		quoteType := q.QuoteType
		if quoteType == "" {
			quoteType = model.TypeUnknown
		}
		results = append(results, SearchResult{
			Symbol:   q.Symbol,
			Name:     name,
			Type:     quoteType,
			Exchange: q.Exchange,
		})
	}
	return results, nil
}
