package trend

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	domtrend "buildpulse/domain/trend"
)

// analyzeStructuralBreaks runs three independent detectors over the series:
// a CUSUM control chart, a midpoint Chow test, and a rolling-window mean-shift
// scan that also segments the series at its change points.
func (d *Detector) analyzeStructuralBreaks(values []float64) *domtrend.StructuralBreaksTrend {
	n := len(values)
	if n < d.cfg.MinBreakPoints {
		return &domtrend.StructuralBreaksTrend{
			Error: fmt.Sprintf("structural break analysis requires at least %d data points, got %d",
				d.cfg.MinBreakPoints, n),
		}
	}

	m := mean(values)
	std := populationStd(values)
	if std == 0 {
		return &domtrend.StructuralBreaksTrend{Error: "structural break analysis: zero variance in series"}
	}

	cusum := d.cusumTest(values, m, std)
	chow := d.chowTest(values)
	changePoints := d.meanShiftScan(values, std)

	return &domtrend.StructuralBreaksTrend{
		CUSUM:        cusum,
		ChowTest:     chow,
		ChangePoints: changePoints,
		Segments:     segmentSeries(values, changePoints),
	}
}

// cusumTest accumulates the standardized deviations and flags every index
// whose cumulative sum exceeds the 95% asymptotic bound.
func (d *Detector) cusumTest(values []float64, mean, std float64) domtrend.CUSUMResult {
	n := len(values)
	threshold := d.cfg.CUSUMCoefficient * math.Sqrt(float64(n))

	statistics := make([]float64, n)
	var breaks []int
	sum := 0.0
	for i, v := range values {
		sum += (v - mean) / std
		statistics[i] = sum
		if math.Abs(sum) > threshold {
			breaks = append(breaks, i)
		}
	}

	return domtrend.CUSUMResult{
		Statistics:        statistics,
		Threshold:         threshold,
		BreakIndices:      breaks,
		SignificantBreaks: len(breaks),
	}
}

// chowTest splits the series at the midpoint and compares the pooled
// regression fit against the two split fits with an F test on (2, n-4)
// degrees of freedom.
func (d *Detector) chowTest(values []float64) domtrend.ChowResult {
	n := len(values)
	mid := n / 2

	x := make([]float64, n)
	for i := range x {
		x[i] = float64(i)
	}

	rssPooled := regressionRSS(x, values)
	rssFirst := regressionRSS(x[:mid], values[:mid])
	rssSecond := regressionRSS(x[mid:], values[mid:])
	rssSplit := rssFirst + rssSecond

	result := domtrend.ChowResult{BreakPoint: mid, PValue: 1}
	if rssSplit <= 0 {
		// Both halves fit perfectly; any pooled misfit is a break.
		result.BreakDetected = rssPooled > 1e-10
		if result.BreakDetected {
			result.PValue = 0
			result.FStatistic = math.Inf(1)
		}
		return result
	}

	df2 := float64(n - 4)
	f := ((rssPooled - rssSplit) / 2) / (rssSplit / df2)
	if f < 0 {
		f = 0
	}

	fDist := distuv.F{D1: 2, D2: df2}
	p := 1 - fDist.CDF(f)

	result.FStatistic = f
	result.PValue = p
	result.BreakDetected = p < d.cfg.ChowAlpha
	return result
}

// regressionRSS returns the residual sum of squares of an OLS fit, or 0 for
// degenerate inputs.
func regressionRSS(x, y []float64) float64 {
	if len(x) < 3 {
		return 0
	}
	intercept, slope := stat.LinearRegression(x, y, nil, false)

	rss := 0.0
	for i := range x {
		resid := y[i] - (intercept + slope*x[i])
		rss += resid * resid
	}
	return rss
}

// meanShiftScan flags indices where the windowed means on either side differ
// by more than the configured fraction of the series' standard deviation.
func (d *Detector) meanShiftScan(values []float64, std float64) []int {
	n := len(values)
	window := 5
	if w := n / 3; w < window {
		window = w
	}
	if window < 1 {
		return nil
	}

	threshold := d.cfg.MeanShiftStdFraction * std
	var changePoints []int
	for i := window; i+window <= n; i++ {
		before := mean(values[i-window : i])
		after := mean(values[i : i+window])
		if math.Abs(after-before) > threshold {
			changePoints = append(changePoints, i)
		}
	}
	return changePoints
}

// segmentSeries cuts the series at the change points and summarizes each
// segment.
func segmentSeries(values []float64, changePoints []int) []domtrend.Segment {
	bounds := append([]int{0}, changePoints...)
	bounds = append(bounds, len(values))

	var segments []domtrend.Segment
	for i := 0; i+1 < len(bounds); i++ {
		start, end := bounds[i], bounds[i+1]
		if end <= start {
			continue
		}
		seg := values[start:end]
		segments = append(segments, domtrend.Segment{
			Start: start,
			End:   end - 1,
			Mean:  mean(seg),
			Std:   populationStd(seg),
		})
	}
	return segments
}
