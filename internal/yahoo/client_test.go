package yahoo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"alphaview/internal/model"
	"alphaview/internal/relay"
)

// newClient wires a Client to a single httptest relay that serves the given
// payload for every target URL.
func newClient(t *testing.T, payload string) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(payload))
	}))
	t.Cleanup(srv.Close)
	sel := relay.NewSelector([]string{srv.URL + "/?u="}, time.Second, 1)
	return NewClient(sel, "", "")
}

const chartPayload = `{
  "chart": {
    "result": [{
      "meta": {
        "currency": "USD",
        "symbol": "AAPL",
        "exchangeName": "NMS",
        "instrumentType": "EQUITY",
        "shortName": "Apple Inc.",
        "regularMarketPrice": 189.5,
        "chartPreviousClose": 187.0,
        "range": "1d",
        "dataGranularity": "5m"
      },
      "timestamp": [1700000000, 1700000300, 1700000600],
      "indicators": {
        "quote": [{"close": [188.1, null, 189.5]}],
        "adjclose": [{"adjclose": [188.0, null, 189.4]}]
      }
    }],
    "error": null
  }
}`

func TestFetchChart_ValidPayload(t *testing.T) {
	c := newClient(t, chartPayload)
	chart, err := c.FetchChart(context.Background(), "AAPL", model.RangeSpec{Range: "1d", Interval: "5m"})
	if err != nil {
		t.Fatalf("fetch chart: %v", err)
	}
	if chart.Meta.Symbol != "AAPL" || chart.Meta.Currency != "USD" {
		t.Errorf("meta not mapped: %+v", chart.Meta)
	}
	if !chart.Meta.RegularMarketPrice.Valid || chart.Meta.RegularMarketPrice.Float64 != 189.5 {
		t.Errorf("regular market price = %v", chart.Meta.RegularMarketPrice)
	}
	if len(chart.Timestamps) != 3 || len(chart.Close) != 3 || len(chart.AdjClose) != 3 {
		t.Fatalf("columns not mapped: %d/%d/%d", len(chart.Timestamps), len(chart.Close), len(chart.AdjClose))
	}
	if chart.Close[1].Valid {
		t.Error("null close should stay null")
	}
	if got := chart.PriceColumn()[0].Float64; got != 188.0 {
		t.Errorf("adjusted close preferred, got %.2f", got)
	}
}

func TestFetchChart_UpstreamError(t *testing.T) {
	c := newClient(t, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`)
	_, err := c.FetchChart(context.Background(), "NOPE", model.RangeSpec{Range: "1d", Interval: "1d"})
	if !errors.Is(err, ErrBadPayload) {
		t.Fatalf("expected ErrBadPayload, got %v", err)
	}
}

func TestFetchChart_EmptyResult(t *testing.T) {
	c := newClient(t, `{"chart":{"result":[],"error":null}}`)
	_, err := c.FetchChart(context.Background(), "AAPL", model.RangeSpec{Range: "1d", Interval: "1d"})
	if !errors.Is(err, ErrBadPayload) {
		t.Fatalf("expected ErrBadPayload, got %v", err)
	}
}

func TestFetchChart_AllNullClosesWithoutQuote(t *testing.T) {
	payload := `{"chart":{"result":[{
	  "meta": {"currency":"EUR","symbol":"FUND.MI","instrumentType":"MUTUALFUND"},
	  "timestamp": [1700000000, 1700000300],
	  "indicators": {"quote": [{"close": [null, null]}]}
	}],"error":null}}`
	c := newClient(t, payload)
	_, err := c.FetchChart(context.Background(), "FUND.MI", model.RangeSpec{Range: "1d", Interval: "5m"})
	if !errors.Is(err, ErrNoPriceData) {
		t.Fatalf("expected ErrNoPriceData, got %v", err)
	}
}

func TestFetchChart_QuoteOnlyPayloadIsAccepted(t *testing.T) {
	// Funds often ship a meta quote with an empty intraday series.
	payload := `{"chart":{"result":[{
	  "meta": {"currency":"EUR","symbol":"FUND.MI","instrumentType":"MUTUALFUND","regularMarketPrice":12.34},
	  "timestamp": [1700000000],
	  "indicators": {"quote": [{"close": [null]}]}
	}],"error":null}}`
	c := newClient(t, payload)
	chart, err := c.FetchChart(context.Background(), "FUND.MI", model.RangeSpec{Range: "1d", Interval: "5m"})
	if err != nil {
		t.Fatalf("fetch chart: %v", err)
	}
	if !chart.Meta.RegularMarketPrice.Valid {
		t.Error("expected quote to survive")
	}
}

func TestFetchChart_RelayFailurePropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)
	sel := relay.NewSelector([]string{srv.URL + "/?u="}, time.Second, 1)
	c := NewClient(sel, "", "")

	_, err := c.FetchChart(context.Background(), "AAPL", model.RangeSpec{Range: "1d", Interval: "1d"})
	if !errors.Is(err, relay.ErrNoRelay) {
		t.Fatalf("expected ErrNoRelay, got %v", err)
	}
}

func TestSearch_FiltersAndNameFallback(t *testing.T) {
	payload := `{"quotes":[
	  {"symbol":"AAPL","shortname":"Apple Inc.","quoteType":"EQUITY","exchange":"NMS","isYahooFinance":true},
	  {"symbol":"APLE","longname":"Apple Hospitality REIT","quoteType":"EQUITY","exchange":"NYQ","isYahooFinance":true},
	  {"symbol":"BARE","isYahooFinance":true},
	  {"symbol":"SPAM","shortname":"Not Ours","isYahooFinance":false}
	]}`
	c := newClient(t, payload)
	results, err := c.Search(context.Background(), "apple")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results after filtering, got %d", len(results))
	}
	if results[0].Name != "Apple Inc." {
		t.Errorf("short name preferred, got %q", results[0].Name)
	}
	if results[1].Name != "Apple Hospitality REIT" {
		t.Errorf("long name fallback, got %q", results[1].Name)
	}
	if results[2].Name != "BARE" || results[2].Type != model.TypeUnknown {
		t.Errorf("symbol/type fallback, got %+v", results[2])
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	c := newClient(t, `{}`)
	results, err := c.Search(context.Background(), "   ")
	if err != nil || results != nil {
		t.Fatalf("expected nil, nil for blank query, got %v, %v", results, err)
	}
}
