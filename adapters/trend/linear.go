package trend

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	domtrend "buildpulse/domain/trend"
)

// analyzeLinear fits ordinary least squares of value against a 0-based time
// index and derives direction, strength, smoothers, reversal points, and a
// linear extrapolation forecast.
func (d *Detector) analyzeLinear(values []float64) *domtrend.LinearTrend {
	n := len(values)
	x := make([]float64, n)
	for i := range x {
		x[i] = float64(i)
	}

	result := &domtrend.LinearTrend{
		MovingAverages: domtrend.MovingAverages{},
		ReversalPoints: detectReversalPoints(values),
	}

	if populationStd(values) == 0 {
		// A flat series has a zero slope and no correlation to speak of.
		result.TrendDirection = domtrend.DirectionStable
		result.TrendStrength = "very_weak"
		result.Coefficients = domtrend.Coefficients{Slope: 0, Intercept: values[0]}
		result.PValue = 1
	} else {
		intercept, slope := stat.LinearRegression(x, values, nil, false)
		r := stat.Correlation(x, values, nil)

		rss := 0.0
		sxx := 0.0
		xMean := float64(n-1) / 2
		for i := range x {
			resid := values[i] - (intercept + slope*x[i])
			rss += resid * resid
			sxx += (x[i] - xMean) * (x[i] - xMean)
		}
		stdErr := math.Sqrt(rss / float64(n-2) / sxx)

		pValue := 0.0
		if stdErr > 0 {
			t := slope / stdErr
			dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 2)}
			pValue = 2 * (1 - dist.CDF(math.Abs(t)))
		}

		switch {
		case slope > 0:
			result.TrendDirection = domtrend.DirectionIncreasing
		case slope < 0:
			result.TrendDirection = domtrend.DirectionDecreasing
		default:
			result.TrendDirection = domtrend.DirectionStable
		}
		result.TrendStrength = d.classifyStrength(r)
		result.Coefficients = domtrend.Coefficients{Slope: slope, Intercept: intercept}
		result.Correlation = r
		result.PValue = pValue
		result.StdError = stdErr

		forecast := make([]float64, d.cfg.ForecastPeriods)
		for i := range forecast {
			forecast[i] = intercept + slope*float64(n+i)
		}
		result.Forecast = forecast
	}

	if n >= 3 {
		result.MovingAverages.MA3 = movingAverage(values, 3)
	}
	if n >= 5 {
		result.MovingAverages.MA5 = movingAverage(values, 5)
	}

	return result
}

// movingAverage returns the simple moving average with the given window; the
// output has len(values)-window+1 entries.
func movingAverage(values []float64, window int) []float64 {
	if len(values) < window || window <= 0 {
		return nil
	}

	out := make([]float64, 0, len(values)-window+1)
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out = append(out, sum/float64(window))
		}
	}
	return out
}

// detectReversalPoints flags each index where the sign of the step into it
// differs from the sign of the preceding step, tagged peak or trough.
func detectReversalPoints(values []float64) []domtrend.ReversalPoint {
	var points []domtrend.ReversalPoint
	for i := 2; i < len(values); i++ {
		prev := values[i-1] - values[i-2]
		curr := values[i] - values[i-1]
		if prev == 0 || curr == 0 || (prev > 0) == (curr > 0) {
			continue
		}

		kind := "trough"
		if prev > 0 {
			kind = "peak"
		}
		points = append(points, domtrend.ReversalPoint{
			Index: i,
			Type:  kind,
			Value: values[i],
		})
	}
	return points
}
