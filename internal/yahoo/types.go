package yahoo

import (
	"alphaview/internal/model"

	"github.com/guregu/null/v6"
)

// Wire shapes of the upstream chart and search endpoints. These are decoded
// once at the ingestion boundary and converted into model types; nothing
// outside this package touches them.

type chartEnvelope struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *apiError     `json:"error"`
	} `json:"chart"`
}

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type chartResult struct {
	Meta       wireMeta     `json:"meta"`
	Timestamp  []null.Int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Close []null.Float `json:"close"`
		} `json:"quote"`
		AdjClose []struct {
			AdjClose []null.Float `json:"adjclose"`
		} `json:"adjclose"`
	} `json:"indicators"`
}

type wireMeta struct {
	Currency           string     `json:"currency"`
	Symbol             string     `json:"symbol"`
	ExchangeName       string     `json:"exchangeName"`
	InstrumentType     string     `json:"instrumentType"`
	ShortName          string     `json:"shortName"`
	LongName           string     `json:"longName"`
	RegularMarketPrice null.Float `json:"regularMarketPrice"`
	ChartPreviousClose null.Float `json:"chartPreviousClose"`
	Range              string     `json:"range"`
	DataGranularity    string     `json:"dataGranularity"`
}

func (r *chartResult) toModel() *model.Chart {
	chart := &model.Chart{
		Meta: model.InstrumentMeta{
			Currency:           r.Meta.Currency,
			Symbol:             r.Meta.Symbol,
			ExchangeName:       r.Meta.ExchangeName,
			InstrumentType:     r.Meta.InstrumentType,
			ShortName:          r.Meta.ShortName,
			LongName:           r.Meta.LongName,
			RegularMarketPrice: r.Meta.RegularMarketPrice,
			ChartPreviousClose: r.Meta.ChartPreviousClose,
			Range:              r.Meta.Range,
			DataGranularity:    r.Meta.DataGranularity,
		},
		Timestamps: r.Timestamp,
	}
	if len(r.Indicators.Quote) > 0 {
		chart.Close = r.Indicators.Quote[0].Close
	}
	if len(r.Indicators.AdjClose) > 0 {
		chart.AdjClose = r.Indicators.AdjClose[0].AdjClose
	}
	return chart
}

type searchEnvelope struct {
	Quotes []struct {
		Symbol         string `json:"symbol"`
		ShortName      string `json:"shortname"`
		LongName       string `json:"longname"`
		QuoteType      string `json:"quoteType"`
		Exchange       string `json:"exchange"`
		IsYahooFinance bool   `json:"isYahooFinance"`
	} `json:"quotes"`
}
