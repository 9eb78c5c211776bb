package config

import (
	"os"
	"strconv"

	"buildpulse/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Paths    PathConfig
	Analysis AnalysisConfig
	Weather  WeatherConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// PathConfig holds file system paths
type PathConfig struct {
	ImportFile string
}

// AnalysisConfig carries the statistical decision thresholds. The numeric
// values are empirical behavioral contracts inherited from the production
// scoring rules; change them and downstream dashboards change meaning.
type AnalysisConfig struct {
	// Minimum observation counts per operation.
	MinTrendPoints    int
	MinSeasonalPoints int
	MinBreakPoints    int
	MinCyclicalPoints int

	// Correlation / trend strength buckets on |r|.
	StrengthWeak       float64
	StrengthModerate   float64
	StrengthStrong     float64
	StrengthVeryStrong float64

	// Seasonality / cyclical strength buckets on variance ratio.
	SeasonalityNone       float64
	SeasonalityWeak       float64
	SeasonalityModerate   float64
	SeasonalityStrong     float64

	// Trend confidence by strength tier.
	ConfidenceStrong   float64
	ConfidenceModerate float64
	ConfidenceWeak     float64

	// Forecast reliability gates.
	ReliabilityHighConfidence   float64
	ReliabilityMediumConfidence float64

	// Structural break detection.
	CUSUMCoefficient     float64 // 95% asymptotic bound coefficient
	ChowAlpha            float64
	MeanShiftStdFraction float64

	// Cyclical detection.
	ACFCandidateThreshold   float64
	ACFSignificantThreshold float64
	MaxAutocorrelationLag   int

	// Forecast horizon for linear and seasonal projections.
	ForecastPeriods int

	// Sample size at which the normal approximation replaces Student's t.
	NormalApproxMinN int
}

// WeatherConfig carries the weather impact scoring weights and the
// project-type multipliers applied to the accumulated score.
type WeatherConfig struct {
	TempExtremeLow    float64
	TempExtremeHigh   float64
	TempModerateLow   float64
	TempModerateHigh  float64
	TempExtremeScore  float64
	TempModerateScore float64

	HumidityHigh      float64
	HumidityLow       float64
	HumidityHighScore float64
	HumidityLowScore  float64

	PressureLow      float64
	PressureLowScore float64

	SevereConditionScore float64
	FogConditionScore    float64

	WindStrong        float64
	WindModerate      float64
	WindStrongScore   float64
	WindModerateScore float64

	ForecastSlots     int
	ForecastSlotScore float64
	AlertScore        float64

	OutdoorMultiplier     float64
	RoofingMultiplier     float64
	UndergroundMultiplier float64

	MaxScore float64
}

// Load reads configuration from environment variables and applies the
// built-in analysis defaults.
func Load() (*Config, error) {
	config := &Config{
		Database: DatabaseConfig{URL: os.Getenv("DATABASE_URL")},
		Server:   loadServerConfig(),
		Paths:    PathConfig{ImportFile: os.Getenv("IMPORT_FILE")},
		Analysis: DefaultAnalysisConfig(),
		Weather:  DefaultWeatherConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig() ServerConfig {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8090"
	}
	return ServerConfig{Port: port}
}

// DefaultAnalysisConfig returns the production threshold set.
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		MinTrendPoints:    10,
		MinSeasonalPoints: 12,
		MinBreakPoints:    15,
		MinCyclicalPoints: 20,

		StrengthWeak:       0.2,
		StrengthModerate:   0.4,
		StrengthStrong:     0.6,
		StrengthVeryStrong: 0.8,

		SeasonalityNone:     0.1,
		SeasonalityWeak:     0.2,
		SeasonalityModerate: 0.4,
		SeasonalityStrong:   0.6,

		ConfidenceStrong:   0.8,
		ConfidenceModerate: 0.6,
		ConfidenceWeak:     0.4,

		ReliabilityHighConfidence:   0.7,
		ReliabilityMediumConfidence: 0.5,

		CUSUMCoefficient:     1.358,
		ChowAlpha:            0.05,
		MeanShiftStdFraction: 0.5,

		ACFCandidateThreshold:   0.3,
		ACFSignificantThreshold: 0.5,
		MaxAutocorrelationLag:   20,

		ForecastPeriods:  12,
		NormalApproxMinN: 30,
	}
}

// DefaultWeatherConfig returns the production scoring weights.
func DefaultWeatherConfig() WeatherConfig {
	return WeatherConfig{
		TempExtremeLow:    0,
		TempExtremeHigh:   35,
		TempModerateLow:   5,
		TempModerateHigh:  30,
		TempExtremeScore:  20,
		TempModerateScore: 10,

		HumidityHigh:      80,
		HumidityLow:       20,
		HumidityHighScore: 15,
		HumidityLowScore:  5,

		PressureLow:      1000,
		PressureLowScore: 25,

		SevereConditionScore: 30,
		FogConditionScore:    15,

		WindStrong:        20,
		WindModerate:      10,
		WindStrongScore:   25,
		WindModerateScore: 10,

		ForecastSlots:     8,
		ForecastSlotScore: 5,
		AlertScore:        10,

		OutdoorMultiplier:     1.2,
		RoofingMultiplier:     1.3,
		UndergroundMultiplier: 0.7,

		MaxScore: 100,
	}
}

func validateConfig(config *Config) error {
	if _, err := strconv.Atoi(config.Server.Port); err != nil {
		return errors.ConfigInvalid("PORT must be numeric")
	}
	a := config.Analysis
	if a.MinTrendPoints < 3 {
		return errors.ConfigInvalid("minimum trend points must be at least 3")
	}
	if a.ForecastPeriods <= 0 {
		return errors.ConfigInvalid("forecast periods must be positive")
	}
	return nil
}
