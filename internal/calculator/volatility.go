package calculator

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// tradingDaysPerYear is the annualization assumption for daily returns.
const tradingDaysPerYear = 252

// LogReturns computes ln(p[i]/p[i-1]) for consecutive points.
func LogReturns(prices []float64) []float64 {
	if len(prices) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		returns = append(returns, math.Log(prices[i]/prices[i-1]))
	}
	return returns
}

// AnnualizedVolatility returns the population standard deviation of the log
// returns, scaled by sqrt(252) and expressed in percent. Defined as 0 when
// fewer than 2 returns exist.
func AnnualizedVolatility(prices []float64) float64 {
	returns := LogReturns(prices)
	if len(returns) < 2 {
		return 0
	}
	return stat.PopStdDev(returns, nil) * math.Sqrt(tradingDaysPerYear) * 100
}
