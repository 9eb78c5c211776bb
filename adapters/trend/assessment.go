package trend

import (
	domtrend "buildpulse/domain/trend"
)

// assess synthesizes the per-kind results into the headline assessment:
// primary direction and confidence from the linear component, pattern
// complexity from how many secondary patterns were computed, and a forecast
// reliability gate combining the two.
func (d *Detector) assess(trends domtrend.Trends) domtrend.OverallAssessment {
	assessment := domtrend.OverallAssessment{
		PrimaryTrend:        "unknown",
		PatternComplexity:   domtrend.ComplexitySimple,
		ForecastReliability: "low",
	}

	if linear := trends.Linear; linear != nil && linear.Error == "" {
		assessment.PrimaryTrend = linear.TrendDirection
		switch linear.TrendStrength {
		case "very_strong", "strong":
			assessment.TrendConfidence = d.cfg.ConfidenceStrong
		case "moderate":
			assessment.TrendConfidence = d.cfg.ConfidenceModerate
		default:
			assessment.TrendConfidence = d.cfg.ConfidenceWeak
		}
	}

	computed := 0
	if trends.Seasonal != nil && trends.Seasonal.Error == "" {
		computed++
	}
	if trends.Cyclical != nil && trends.Cyclical.Error == "" {
		computed++
	}
	if trends.StructuralBreaks != nil && trends.StructuralBreaks.Error == "" {
		computed++
	}
	switch {
	case computed <= 1:
		assessment.PatternComplexity = domtrend.ComplexitySimple
	case computed == 2:
		assessment.PatternComplexity = domtrend.ComplexityModerate
	default:
		assessment.PatternComplexity = domtrend.ComplexityComplex
	}

	switch {
	case assessment.TrendConfidence > d.cfg.ReliabilityHighConfidence &&
		assessment.PatternComplexity == domtrend.ComplexitySimple:
		assessment.ForecastReliability = "high"
	case assessment.TrendConfidence > d.cfg.ReliabilityMediumConfidence:
		assessment.ForecastReliability = "medium"
	}

	return assessment
}
