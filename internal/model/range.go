package model

import "fmt"

// RangeSpec pairs a requested time window with a sampling interval.
// Not every combination is valid upstream; intraday intervals in particular
// silently return empty series for funds and indices.
type RangeSpec struct {
	Range    string `yaml:"range" json:"range"`
	Interval string `yaml:"interval" json:"interval"`
}

var validRanges = map[string]bool{
	"1d": true, "5d": true, "1mo": true, "3mo": true, "6mo": true,
	"1y": true, "2y": true, "5y": true, "10y": true, "max": true,
}

var validIntervals = map[string]bool{
	"1m": true, "2m": true, "5m": true, "15m": true, "30m": true,
	"60m": true, "90m": true, "1h": true,
	"1d": true, "1wk": true, "1mo": true,
}

var coarseIntervals = map[string]bool{"1d": true, "1wk": true, "1mo": true}

// Valid reports whether both range and interval belong to the known sets.
func (s RangeSpec) Valid() bool {
	return validRanges[s.Range] && validIntervals[s.Interval]
}

// Intraday reports whether the interval is finer than one day. Only intraday
// requests are eligible for the downgrade ladder.
func (s RangeSpec) Intraday() bool {
	return !coarseIntervals[s.Interval]
}

func (s RangeSpec) String() string {
	return fmt.Sprintf("%s/%s", s.Range, s.Interval)
}
