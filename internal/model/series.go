package model

import "time"

// PricePoint is a single (time, price) sample of a clean series.
type PricePoint struct {
	Time  time.Time `json:"time"`
	Price float64   `json:"price"`
}

// Series is a normalized price series: strictly increasing timestamps, no
// null entries. An empty Series means "no chart, no analysis", not an error.
type Series []PricePoint

// Prices returns the price column.
func (s Series) Prices() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Price
	}
	return out
}

// Last returns the most recent price, or 0 for an empty series.
func (s Series) Last() float64 {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1].Price
}
