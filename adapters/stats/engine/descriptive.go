package engine

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	domstats "buildpulse/domain/stats"
)

// CalculateNumericStatistics computes the full single-series summary. An empty
// input returns nil rather than an error; callers must check before reading.
func (e *StatsEngine) CalculateNumericStatistics(values []float64) *domstats.StatisticalSummary {
	if len(values) == 0 {
		return nil
	}

	mean, _ := stats.Mean(values)
	median, _ := stats.Median(values)
	minVal, _ := stats.Min(values)
	maxVal, _ := stats.Max(values)

	// Population standard deviation matches the summary's variance field.
	std := populationStd(values)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	q1 := quantileType7(sorted, 0.25)
	q3 := quantileType7(sorted, 0.75)

	return &domstats.StatisticalSummary{
		Count:    len(values),
		Mean:     mean,
		Median:   median,
		Mode:     scalarMode(sorted),
		Std:      std,
		Variance: std * std,
		Min:      minVal,
		Max:      maxVal,
		Range:    maxVal - minVal,
		Percentiles: domstats.Percentiles{
			P25: q1,
			P50: quantileType7(sorted, 0.50),
			P75: q3,
			P90: quantileType7(sorted, 0.90),
			P95: quantileType7(sorted, 0.95),
			P99: quantileType7(sorted, 0.99),
		},
		Skewness: populationSkewness(values, mean, std),
		Kurtosis: populationKurtosis(values, mean, std),
		Q1:       q1,
		Q3:       q3,
		IQR:      q3 - q1,
	}
}

// quantileType7 computes the type-7 (linear interpolation) quantile of an
// already-sorted slice.
func quantileType7(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}

	h := p * float64(n-1)
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// scalarMode returns the most frequent value, ties broken by the smallest
// value. With no repeated value it falls back to the smallest, matching the
// standard scalar-mode convention.
func scalarMode(sorted []float64) float64 {
	if len(sorted) == 0 {
		return 0
	}

	best := sorted[0]
	bestCount := 1
	current := sorted[0]
	count := 1

	for i := 1; i < len(sorted); i++ {
		if sorted[i] == current {
			count++
		} else {
			current = sorted[i]
			count = 1
		}
		// Strictly greater keeps the smallest value on ties, since the
		// slice is ascending.
		if count > bestCount {
			best = current
			bestCount = count
		}
	}

	return best
}

// populationSkewness is the Fisher-Pearson coefficient without sample bias
// adjustment. A zero-variance series has no defined shape; report 0.
func populationSkewness(values []float64, mean, std float64) float64 {
	if len(values) < 2 || std == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range values {
		z := (v - mean) / std
		sum += z * z * z
	}
	return sum / float64(len(values))
}

// populationKurtosis is the excess kurtosis (Fisher definition, population).
func populationKurtosis(values []float64, mean, std float64) float64 {
	if len(values) < 2 || std == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range values {
		z := (v - mean) / std
		sum += z * z * z * z
	}
	return sum/float64(len(values)) - 3
}
