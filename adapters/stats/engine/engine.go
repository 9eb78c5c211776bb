package engine

import (
	"math"

	"buildpulse/internal/config"
)

// StatsEngine provides descriptive, inferential, and modeling computations.
// It is stateless beyond its threshold configuration and safe for concurrent
// use.
type StatsEngine struct {
	cfg config.AnalysisConfig
}

// NewStatsEngine creates a new statistical engine with the given thresholds.
func NewStatsEngine(cfg config.AnalysisConfig) *StatsEngine {
	return &StatsEngine{cfg: cfg}
}

// NewDefaultStatsEngine creates an engine with the production threshold set.
func NewDefaultStatsEngine() *StatsEngine {
	return NewStatsEngine(config.DefaultAnalysisConfig())
}

// classifyStrength buckets an absolute correlation into the five-level label
// shared across correlation and trend reporting.
func (e *StatsEngine) classifyStrength(r float64) string {
	abs := math.Abs(r)
	switch {
	case abs >= e.cfg.StrengthVeryStrong:
		return "very_strong"
	case abs >= e.cfg.StrengthStrong:
		return "strong"
	case abs >= e.cfg.StrengthModerate:
		return "moderate"
	case abs >= e.cfg.StrengthWeak:
		return "weak"
	default:
		return "very_weak"
	}
}

// mean and sampleStd are the small helpers the engine reaches for when a
// library call would be heavier than the loop.
func mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range data {
		sum += v
	}
	return sum / float64(len(data))
}

func sampleVariance(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	m := mean(data)
	sumSq := 0.0
	for _, v := range data {
		diff := v - m
		sumSq += diff * diff
	}
	return sumSq / float64(len(data)-1)
}

func sampleStd(data []float64) float64 {
	return math.Sqrt(sampleVariance(data))
}

func populationStd(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	m := mean(data)
	sumSq := 0.0
	for _, v := range data {
		diff := v - m
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(len(data)))
}
