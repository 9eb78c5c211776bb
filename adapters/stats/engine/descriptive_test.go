package engine

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestCalculateNumericStatistics_KnownValues(t *testing.T) {
	engine := NewDefaultStatsEngine()

	// Classic textbook sample: mean 5, population std exactly 2.
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	summary := engine.CalculateNumericStatistics(values)
	if summary == nil {
		t.Fatal("expected a summary for non-empty input")
	}

	if summary.Count != 8 {
		t.Errorf("Count = %d, want 8", summary.Count)
	}
	if !almostEqual(summary.Mean, 5, 1e-12) {
		t.Errorf("Mean = %f, want 5", summary.Mean)
	}
	if !almostEqual(summary.Median, 4.5, 1e-12) {
		t.Errorf("Median = %f, want 4.5", summary.Median)
	}
	if summary.Mode != 4 {
		t.Errorf("Mode = %f, want 4", summary.Mode)
	}
	if !almostEqual(summary.Std, 2, 1e-12) {
		t.Errorf("Std = %f, want 2", summary.Std)
	}
	if !almostEqual(summary.Variance, 4, 1e-12) {
		t.Errorf("Variance = %f, want 4", summary.Variance)
	}
	if summary.Min != 2 || summary.Max != 9 || summary.Range != 7 {
		t.Errorf("Min/Max/Range = %f/%f/%f, want 2/9/7", summary.Min, summary.Max, summary.Range)
	}
	if !almostEqual(summary.Skewness, 0.65625, 1e-12) {
		t.Errorf("Skewness = %f, want 0.65625", summary.Skewness)
	}
	if !almostEqual(summary.Kurtosis, -0.21875, 1e-12) {
		t.Errorf("Kurtosis = %f, want -0.21875", summary.Kurtosis)
	}
}

func TestCalculateNumericStatistics_Quartiles(t *testing.T) {
	engine := NewDefaultStatsEngine()

	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	summary := engine.CalculateNumericStatistics(values)

	// Linear-interpolation quantiles on the sorted sample.
	if !almostEqual(summary.Q1, 4, 1e-12) {
		t.Errorf("Q1 = %f, want 4", summary.Q1)
	}
	if !almostEqual(summary.Q3, 5.5, 1e-12) {
		t.Errorf("Q3 = %f, want 5.5", summary.Q3)
	}
	if !almostEqual(summary.IQR, 1.5, 1e-12) {
		t.Errorf("IQR = %f, want 1.5", summary.IQR)
	}
	if !almostEqual(summary.Percentiles.P50, summary.Median, 1e-12) {
		t.Errorf("P50 = %f should equal median %f", summary.Percentiles.P50, summary.Median)
	}
	if summary.Percentiles.P99 > summary.Max {
		t.Errorf("P99 = %f exceeds max %f", summary.Percentiles.P99, summary.Max)
	}
	if summary.Percentiles.P25 > summary.Percentiles.P75 {
		t.Error("P25 should not exceed P75")
	}
}

func TestCalculateNumericStatistics_EmptyInput(t *testing.T) {
	engine := NewDefaultStatsEngine()
	if summary := engine.CalculateNumericStatistics(nil); summary != nil {
		t.Errorf("expected nil summary for empty input, got %+v", summary)
	}
}

func TestCalculateNumericStatistics_SingleValue(t *testing.T) {
	engine := NewDefaultStatsEngine()
	summary := engine.CalculateNumericStatistics([]float64{7})
	if summary == nil {
		t.Fatal("expected a summary for single-element input")
	}
	if summary.Count != 1 || summary.Mean != 7 || summary.Median != 7 || summary.Mode != 7 {
		t.Errorf("unexpected central values: %+v", summary)
	}
	if summary.Std != 0 || summary.Variance != 0 || summary.Range != 0 {
		t.Errorf("spread should be zero for a single value: %+v", summary)
	}
	if summary.Skewness != 0 || summary.Kurtosis != 0 {
		t.Errorf("shape should be zero for a single value: %+v", summary)
	}
	if summary.Percentiles.P25 != 7 || summary.Percentiles.P99 != 7 {
		t.Errorf("all percentiles of a single value should equal it: %+v", summary.Percentiles)
	}
}

func TestScalarMode_Ties(t *testing.T) {
	cases := []struct {
		name   string
		sorted []float64
		want   float64
	}{
		{"tie keeps smallest", []float64{1, 1, 3, 3, 5}, 1},
		{"all unique keeps smallest", []float64{3, 5, 8}, 3},
		{"clear winner", []float64{1, 2, 2, 2, 9}, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := scalarMode(tc.sorted); got != tc.want {
				t.Errorf("scalarMode(%v) = %f, want %f", tc.sorted, got, tc.want)
			}
		})
	}
}

func TestQuantileType7_Interpolation(t *testing.T) {
	sorted := []float64{10, 20, 30, 40}

	// h = p*(n-1); p=0.5 lands between 20 and 30.
	if got := quantileType7(sorted, 0.5); !almostEqual(got, 25, 1e-12) {
		t.Errorf("median = %f, want 25", got)
	}
	if got := quantileType7(sorted, 0); got != 10 {
		t.Errorf("p=0 = %f, want 10", got)
	}
	if got := quantileType7(sorted, 1); got != 40 {
		t.Errorf("p=1 = %f, want 40", got)
	}
}
