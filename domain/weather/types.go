package weather

import "time"

// Condition categories as they arrive from the weather collaborator.
const (
	ConditionClear  = "clear"
	ConditionClouds = "clouds"
	ConditionRain   = "rain"
	ConditionSnow   = "snow"
	ConditionStorm  = "storm"
	ConditionFog    = "fog"
	ConditionMist   = "mist"
)

// Project types with dedicated impact multipliers.
const (
	ProjectOutdoor     = "outdoor"
	ProjectRoofing     = "roofing"
	ProjectUnderground = "underground"
)

// Observation is a single set of current conditions.
type Observation struct {
	Temperature float64  `json:"temperature"` // degrees C
	Humidity    float64  `json:"humidity"`    // percent
	Pressure    float64  `json:"pressure"`    // hPa
	WindSpeed   float64  `json:"wind_speed"`
	Conditions  []string `json:"conditions"`
}

// ForecastSlot is one three-hour forecast window.
type ForecastSlot struct {
	Time        time.Time `json:"time"`
	Condition   string    `json:"condition"`
	Temperature float64   `json:"temperature"`

	// PrecipProbability is nil until the forecast provider integration
	// supplies it; scoring ignores it rather than assuming a default.
	PrecipProbability *float64 `json:"precipitation_probability,omitempty"`
}

// Alert is an active weather alert for the location.
type Alert struct {
	Event    string    `json:"event"`
	Severity string    `json:"severity,omitempty"`
	Start    time.Time `json:"start,omitzero"`
	End      time.Time `json:"end,omitzero"`
}

// Bundle is the full observation package the scorer consumes: current
// conditions, the short-range forecast, and any active alerts.
type Bundle struct {
	Current  Observation    `json:"current"`
	Forecast []ForecastSlot `json:"forecast"`
	Alerts   []Alert        `json:"alerts"`
}

// ForecastSummary condenses the look-ahead window for reporting.
type ForecastSummary struct {
	SlotsEvaluated  int            `json:"slots_evaluated"`
	AdverseSlots    int            `json:"adverse_slots"`
	ActiveAlerts    int            `json:"active_alerts"`
	ConditionCounts map[string]int `json:"condition_counts"`
}

// ImpactAnalysisResult is the scorer output: a 0-100 score, ordered advisory
// strings, and the forecast summary. Produced once per call; storage is the
// caller's concern.
type ImpactAnalysisResult struct {
	ImpactScore     float64         `json:"impact_score"`
	ProjectType     string          `json:"project_type"`
	Recommendations []string        `json:"recommendations"`
	ForecastSummary ForecastSummary `json:"forecast_summary"`
}
