package calculator

import (
	"github.com/guregu/null/v6"
	"gonum.org/v1/gonum/stat"
)

// SMA computes the simple moving average over the last window points.
// Returns an invalid Float when the series is shorter than the window;
// it never extrapolates or pads.
func SMA(prices []float64, window int) null.Float {
	if window <= 0 || len(prices) < window {
		return null.NewFloat(0, false)
	}
	return null.FloatFrom(stat.Mean(prices[len(prices)-window:], nil))
}
