package testkit

import (
	"reflect"
	"testing"
	"time"
)

func TestSeriesGenerator_LinearDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NoiseLevel = 1

	first := NewSeriesGenerator(cfg).Linear(2, 5)
	second := NewSeriesGenerator(cfg).Linear(2, 5)
	if !reflect.DeepEqual(first, second) {
		t.Error("identical configs should generate identical series")
	}

	cfg.Seed = 99
	third := NewSeriesGenerator(cfg).Linear(2, 5)
	if reflect.DeepEqual(first, third) {
		t.Error("a different seed should change the noise")
	}
}

func TestSeriesGenerator_LinearShape(t *testing.T) {
	cfg := DefaultConfig()
	s := NewSeriesGenerator(cfg).Linear(3, 10)

	if s.Len() != 24 {
		t.Fatalf("Len = %d, want 24", s.Len())
	}
	if s.Points[0].Value != 10 {
		t.Errorf("first value = %f, want the intercept 10", s.Points[0].Value)
	}
	if s.Points[23].Value != 10+3*23 {
		t.Errorf("last value = %f, want 79", s.Points[23].Value)
	}
	if !s.HasCalendarDates() {
		t.Error("generated points should carry monthly timestamps")
	}
	if s.Points[1].Timestamp.Month() != time.February {
		t.Errorf("second point month = %v, want february", s.Points[1].Timestamp.Month())
	}
}

func TestSeriesGenerator_LevelShift(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Points = 20
	s := NewSeriesGenerator(cfg).LevelShift(0, 10)

	for i, p := range s.Points {
		want := 0.0
		if i >= 10 {
			want = 10
		}
		if p.Value != want {
			t.Errorf("point %d = %f, want %f", i, p.Value, want)
		}
	}
}

func TestSeriesGenerator_Seasonal(t *testing.T) {
	pattern := []float64{0, 5, 10}
	s := NewSeriesGenerator(DefaultConfig()).Seasonal(100, pattern)

	if s.Points[0].Value != 100 || s.Points[1].Value != 105 || s.Points[3].Value != 100 {
		t.Errorf("pattern should replay: %v", s.Values()[:4])
	}
}

func TestWeatherBundles(t *testing.T) {
	clear := ClearDayBundle()
	if len(clear.Forecast) != 8 {
		t.Errorf("clear forecast slots = %d, want 8", len(clear.Forecast))
	}
	if len(clear.Alerts) != 0 {
		t.Errorf("clear day should have no alerts")
	}

	storm := StormBundle()
	if len(storm.Alerts) != 1 {
		t.Errorf("storm alerts = %d, want 1", len(storm.Alerts))
	}
	if storm.Current.Temperature >= 0 {
		t.Errorf("storm temperature = %f, want below freezing", storm.Current.Temperature)
	}
}
