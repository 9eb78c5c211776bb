package ports

import (
	"buildpulse/domain/series"
	"buildpulse/domain/trend"
	"buildpulse/domain/weather"
)

// TrendAnalyzer runs the trend decomposition pipeline over one series.
type TrendAnalyzer interface {
	DetectTrends(s *series.Series, kinds []string) (*trend.TrendReport, error)
}

// ImpactScorer maps a weather bundle and project type to an impact analysis.
type ImpactScorer interface {
	Score(bundle weather.Bundle, projectType string) *weather.ImpactAnalysisResult
}
