package model

import "github.com/guregu/null/v6"

// Instrument types as reported by the upstream meta block.
const (
	TypeEquity   = "EQUITY"
	TypeETF      = "ETF"
	TypeFund     = "MUTUALFUND"
	TypeIndex    = "INDEX"
	TypeCrypto   = "CRYPTOCURRENCY"
	TypeCurrency = "CURRENCY"
	TypeFuture   = "FUTURE"
	TypeOption   = "OPTION"
	TypeUnknown  = "UNKNOWN"
)

// InstrumentMeta describes the instrument a chart payload belongs to.
type InstrumentMeta struct {
	Symbol             string     `json:"symbol"`
	Currency           string     `json:"currency"`
	InstrumentType     string     `json:"instrument_type"`
	ExchangeName       string     `json:"exchange_name"`
	ShortName          string     `json:"short_name"`
	LongName           string     `json:"long_name"`
	RegularMarketPrice null.Float `json:"regular_market_price"`
	ChartPreviousClose null.Float `json:"chart_previous_close"`
	Range              string     `json:"range"`
	DataGranularity    string     `json:"data_granularity"`
}

// DisplayName resolves the short name, then the long name, then the symbol.
func (m *InstrumentMeta) DisplayName() string {
	if m.ShortName != "" {
		return m.ShortName
	}
	if m.LongName != "" {
		return m.LongName
	}
	return m.Symbol
}

// Chart is a validated upstream chart payload. Timestamps and price columns
// are parallel arrays and may still be sparse, duplicated, or unordered;
// the series normalizer cleans them up.
type Chart struct {
	Meta       InstrumentMeta `json:"meta"`
	Timestamps []null.Int64   `json:"timestamps"`
	Close      []null.Float   `json:"close"`
	AdjClose   []null.Float   `json:"adj_close"`
}

// PriceColumn returns the adjusted close column when present, else the raw
// close column.
func (c *Chart) PriceColumn() []null.Float {
	if len(c.AdjClose) > 0 {
		return c.AdjClose
	}
	return c.Close
}

// HasPrices reports whether at least one non-null closing price exists.
func (c *Chart) HasPrices() bool {
	for _, p := range c.PriceColumn() {
		if p.Valid {
			return true
		}
	}
	return false
}

// HasQuote reports whether the meta block alone carries a usable price.
func (c *Chart) HasQuote() bool {
	return c.Meta.RegularMarketPrice.Valid || c.Meta.ChartPreviousClose.Valid
}
