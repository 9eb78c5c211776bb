package testkit

import (
	"math"
	"math/rand"
	"time"

	"buildpulse/domain/series"
	"buildpulse/domain/weather"
)

// GeneratorConfig configures the synthetic series generators. The seed is
// explicit: identical configs always produce identical data.
type GeneratorConfig struct {
	Points     int       `json:"points"`
	StartDate  time.Time `json:"start_date"`
	NoiseLevel float64   `json:"noise_level"`
	Seed       int64     `json:"seed"`
}

// DefaultConfig returns sensible defaults for synthetic series generation.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Points:     24,
		StartDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		NoiseLevel: 0,
		Seed:       42,
	}
}

// SeriesGenerator produces deterministic synthetic metric series for tests
// and demos.
type SeriesGenerator struct {
	config GeneratorConfig
	rng    *rand.Rand
}

// NewSeriesGenerator creates a generator seeded from the config.
func NewSeriesGenerator(config GeneratorConfig) *SeriesGenerator {
	return &SeriesGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Linear generates y = slope*i + intercept plus noise, one point per month.
func (g *SeriesGenerator) Linear(slope, intercept float64) *series.Series {
	points := make([]series.Point, g.config.Points)
	for i := range points {
		points[i] = series.Point{
			Timestamp: g.config.StartDate.AddDate(0, i, 0),
			Value:     slope*float64(i) + intercept + g.noise(),
		}
	}
	s, _ := series.New("linear", points, series.DropNonFinite)
	return s
}

// Seasonal generates a repeating monthly pattern around a base level. The
// pattern slice is replayed with period 12 regardless of its length.
func (g *SeriesGenerator) Seasonal(base float64, pattern []float64) *series.Series {
	points := make([]series.Point, g.config.Points)
	for i := range points {
		points[i] = series.Point{
			Timestamp: g.config.StartDate.AddDate(0, i, 0),
			Value:     base + pattern[i%len(pattern)] + g.noise(),
		}
	}
	s, _ := series.New("seasonal", points, series.DropNonFinite)
	return s
}

// Sinusoidal generates a sine wave with the given amplitude and period.
func (g *SeriesGenerator) Sinusoidal(base, amplitude float64, period int) *series.Series {
	points := make([]series.Point, g.config.Points)
	for i := range points {
		points[i] = series.Point{
			Timestamp: g.config.StartDate.AddDate(0, i, 0),
			Value:     base + amplitude*math.Sin(2*math.Pi*float64(i)/float64(period)) + g.noise(),
		}
	}
	s, _ := series.New("sinusoidal", points, series.DropNonFinite)
	return s
}

// LevelShift generates a flat series that jumps from low to high at the
// midpoint.
func (g *SeriesGenerator) LevelShift(low, high float64) *series.Series {
	points := make([]series.Point, g.config.Points)
	for i := range points {
		value := low
		if i >= g.config.Points/2 {
			value = high
		}
		points[i] = series.Point{
			Timestamp: g.config.StartDate.AddDate(0, i, 0),
			Value:     value + g.noise(),
		}
	}
	s, _ := series.New("level_shift", points, series.DropNonFinite)
	return s
}

// Gaussian generates normally distributed values around a mean.
func (g *SeriesGenerator) Gaussian(mean, std float64) *series.Series {
	points := make([]series.Point, g.config.Points)
	for i := range points {
		points[i] = series.Point{
			Timestamp: g.config.StartDate.AddDate(0, i, 0),
			Value:     mean + std*g.rng.NormFloat64(),
		}
	}
	s, _ := series.New("gaussian", points, series.DropNonFinite)
	return s
}

func (g *SeriesGenerator) noise() float64 {
	if g.config.NoiseLevel == 0 {
		return 0
	}
	return g.rng.NormFloat64() * g.config.NoiseLevel
}

// ClearDayBundle returns a calm weather bundle: mild, dry, still.
func ClearDayBundle() weather.Bundle {
	return weather.Bundle{
		Current: weather.Observation{
			Temperature: 18,
			Humidity:    50,
			Pressure:    1013,
			WindSpeed:   5,
			Conditions:  []string{weather.ConditionClear},
		},
		Forecast: clearForecast(8),
	}
}

// StormBundle returns a bundle with every adverse signal active.
func StormBundle() weather.Bundle {
	slots := make([]weather.ForecastSlot, 8)
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := range slots {
		slots[i] = weather.ForecastSlot{
			Time:      base.Add(time.Duration(i*3) * time.Hour),
			Condition: weather.ConditionStorm,
		}
	}
	return weather.Bundle{
		Current: weather.Observation{
			Temperature: -4,
			Humidity:    90,
			Pressure:    995,
			WindSpeed:   25,
			Conditions:  []string{weather.ConditionStorm},
		},
		Forecast: slots,
		Alerts: []weather.Alert{
			{Event: "Winter Storm Warning", Severity: "severe"},
		},
	}
}

func clearForecast(n int) []weather.ForecastSlot {
	slots := make([]weather.ForecastSlot, n)
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := range slots {
		slots[i] = weather.ForecastSlot{
			Time:      base.Add(time.Duration(i*3) * time.Hour),
			Condition: weather.ConditionClear,
		}
	}
	return slots
}
