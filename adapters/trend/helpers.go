package trend

import "math"

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

func populationVariance(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	m := mean(data)
	sumSq := 0.0
	for _, v := range data {
		diff := v - m
		sumSq += diff * diff
	}
	return sumSq / float64(len(data))
}

func populationStd(data []float64) float64 {
	return math.Sqrt(populationVariance(data))
}

// classifyStrength buckets an absolute correlation into the shared five-level
// label.
func (d *Detector) classifyStrength(r float64) string {
	abs := math.Abs(r)
	switch {
	case abs >= d.cfg.StrengthVeryStrong:
		return "very_strong"
	case abs >= d.cfg.StrengthStrong:
		return "strong"
	case abs >= d.cfg.StrengthModerate:
		return "moderate"
	case abs >= d.cfg.StrengthWeak:
		return "weak"
	default:
		return "very_weak"
	}
}

// classifyVarianceRatio buckets a seasonality or cyclical strength ratio.
func (d *Detector) classifyVarianceRatio(ratio float64) string {
	switch {
	case ratio < d.cfg.SeasonalityNone:
		return "none"
	case ratio < d.cfg.SeasonalityWeak:
		return "weak"
	case ratio < d.cfg.SeasonalityModerate:
		return "moderate"
	case ratio < d.cfg.SeasonalityStrong:
		return "strong"
	default:
		return "very_strong"
	}
}
