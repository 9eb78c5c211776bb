package weather

import (
	"fmt"
	"strings"

	domweather "buildpulse/domain/weather"
	"buildpulse/internal/config"
)

// ImpactScorer maps a weather observation bundle and a project type to a
// 0-100 impact score with advisory recommendations. It is a pure function of
// its inputs: same bundle and project type, same result.
type ImpactScorer struct {
	cfg config.WeatherConfig
}

// NewImpactScorer creates a scorer with the given weights.
func NewImpactScorer(cfg config.WeatherConfig) *ImpactScorer {
	return &ImpactScorer{cfg: cfg}
}

// NewDefaultImpactScorer creates a scorer with the production weights.
func NewDefaultImpactScorer() *ImpactScorer {
	return NewImpactScorer(config.DefaultWeatherConfig())
}

// Score runs the additive scoring pass, applies the project-type multiplier,
// clamps to [0, max], and generates recommendations from the same signals.
func (s *ImpactScorer) Score(bundle domweather.Bundle, projectType string) *domweather.ImpactAnalysisResult {
	score := 0.0
	current := bundle.Current

	// Temperature: the extreme bucket takes precedence over the moderate one.
	switch {
	case current.Temperature < s.cfg.TempExtremeLow || current.Temperature > s.cfg.TempExtremeHigh:
		score += s.cfg.TempExtremeScore
	case current.Temperature < s.cfg.TempModerateLow || current.Temperature > s.cfg.TempModerateHigh:
		score += s.cfg.TempModerateScore
	}

	switch {
	case current.Humidity > s.cfg.HumidityHigh:
		score += s.cfg.HumidityHighScore
	case current.Humidity < s.cfg.HumidityLow:
		score += s.cfg.HumidityLowScore
	}

	if current.Pressure < s.cfg.PressureLow {
		score += s.cfg.PressureLowScore
	}

	// Current conditions: severe precipitation outranks reduced visibility.
	switch {
	case hasSevereCondition(current.Conditions):
		score += s.cfg.SevereConditionScore
	case hasFogCondition(current.Conditions):
		score += s.cfg.FogConditionScore
	}

	switch {
	case current.WindSpeed > s.cfg.WindStrong:
		score += s.cfg.WindStrongScore
	case current.WindSpeed > s.cfg.WindModerate:
		score += s.cfg.WindModerateScore
	}

	summary := s.summarizeForecast(bundle)
	score += float64(summary.AdverseSlots) * s.cfg.ForecastSlotScore
	score += float64(summary.ActiveAlerts) * s.cfg.AlertScore

	score *= s.projectMultiplier(projectType)

	if score > s.cfg.MaxScore {
		score = s.cfg.MaxScore
	}
	if score < 0 {
		score = 0
	}

	return &domweather.ImpactAnalysisResult{
		ImpactScore:     score,
		ProjectType:     projectType,
		Recommendations: s.buildRecommendations(bundle, summary),
		ForecastSummary: summary,
	}
}

// summarizeForecast evaluates the next-24h look-ahead window (up to the
// configured number of three-hour slots).
func (s *ImpactScorer) summarizeForecast(bundle domweather.Bundle) domweather.ForecastSummary {
	slots := bundle.Forecast
	if len(slots) > s.cfg.ForecastSlots {
		slots = slots[:s.cfg.ForecastSlots]
	}

	counts := make(map[string]int)
	adverse := 0
	for _, slot := range slots {
		cond := strings.ToLower(slot.Condition)
		counts[cond]++
		if isSevere(cond) {
			adverse++
		}
	}

	return domweather.ForecastSummary{
		SlotsEvaluated:  len(slots),
		AdverseSlots:    adverse,
		ActiveAlerts:    len(bundle.Alerts),
		ConditionCounts: counts,
	}
}

func (s *ImpactScorer) projectMultiplier(projectType string) float64 {
	switch projectType {
	case domweather.ProjectOutdoor:
		return s.cfg.OutdoorMultiplier
	case domweather.ProjectRoofing:
		return s.cfg.RoofingMultiplier
	case domweather.ProjectUnderground:
		return s.cfg.UndergroundMultiplier
	default:
		return 1.0
	}
}

// buildRecommendations derives advisory strings from the same signals that
// drove the score, in a stable order. A quiet day yields the single
// favorable-conditions message.
func (s *ImpactScorer) buildRecommendations(bundle domweather.Bundle, summary domweather.ForecastSummary) []string {
	var recs []string
	current := bundle.Current

	if current.Temperature < s.cfg.TempExtremeLow {
		recs = append(recs, "Freezing temperatures: protect fresh concrete and masonry, winterize water lines, and limit exposed crew time")
	} else if current.Temperature > s.cfg.TempExtremeHigh {
		recs = append(recs, "Extreme heat: schedule heavy work for early hours, enforce hydration breaks, and monitor crew for heat stress")
	} else if current.Temperature < s.cfg.TempModerateLow || current.Temperature > s.cfg.TempModerateHigh {
		recs = append(recs, "Temperatures outside the comfortable working range: adjust curing schedules and crew rotations")
	}

	if hasSevereCondition(current.Conditions) || summary.AdverseSlots > 0 {
		recs = append(recs, "Precipitation expected: cover exposed materials, secure excavations, and review pour schedules")
	}

	if current.WindSpeed > s.cfg.WindStrong {
		recs = append(recs, fmt.Sprintf("High winds (%.0f): suspend crane lifts and scaffold work until wind drops", current.WindSpeed))
	} else if current.WindSpeed > s.cfg.WindModerate {
		recs = append(recs, "Moderate winds: secure loose materials and review lifting plans")
	}

	for _, alert := range bundle.Alerts {
		recs = append(recs, fmt.Sprintf("Active weather alert: %s - review site safety plan", alert.Event))
	}

	if len(recs) == 0 {
		recs = append(recs, "Weather conditions are favorable for construction activities")
	}
	return recs
}

func hasSevereCondition(conditions []string) bool {
	for _, c := range conditions {
		if isSevere(strings.ToLower(c)) {
			return true
		}
	}
	return false
}

func isSevere(condition string) bool {
	return strings.Contains(condition, domweather.ConditionRain) ||
		strings.Contains(condition, domweather.ConditionSnow) ||
		strings.Contains(condition, domweather.ConditionStorm)
}

func hasFogCondition(conditions []string) bool {
	for _, c := range conditions {
		lc := strings.ToLower(c)
		if strings.Contains(lc, domweather.ConditionFog) || strings.Contains(lc, domweather.ConditionMist) {
			return true
		}
	}
	return false
}
