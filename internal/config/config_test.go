package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PORT", "")
	t.Setenv("IMPORT_FILE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != "8090" {
		t.Errorf("Port = %s, want the 8090 default", cfg.Server.Port)
	}
	if cfg.Database.URL != "" {
		t.Errorf("Database.URL = %s, want empty", cfg.Database.URL)
	}
	if cfg.Analysis.MinTrendPoints != 10 {
		t.Errorf("MinTrendPoints = %d, want 10", cfg.Analysis.MinTrendPoints)
	}
	if cfg.Weather.MaxScore != 100 {
		t.Errorf("MaxScore = %f, want 100", cfg.Weather.MaxScore)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9001")
	t.Setenv("DATABASE_URL", "postgres://localhost/buildpulse_test")
	t.Setenv("IMPORT_FILE", "/data/costs.xlsx")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != "9001" {
		t.Errorf("Port = %s", cfg.Server.Port)
	}
	if cfg.Database.URL != "postgres://localhost/buildpulse_test" {
		t.Errorf("Database.URL = %s", cfg.Database.URL)
	}
	if cfg.Paths.ImportFile != "/data/costs.xlsx" {
		t.Errorf("ImportFile = %s", cfg.Paths.ImportFile)
	}
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	if _, err := Load(); err == nil {
		t.Error("a non-numeric PORT should fail validation")
	}
}

func TestDefaultThresholdOrdering(t *testing.T) {
	a := DefaultAnalysisConfig()
	if !(a.StrengthWeak < a.StrengthModerate && a.StrengthModerate < a.StrengthStrong && a.StrengthStrong < a.StrengthVeryStrong) {
		t.Error("strength buckets must be strictly increasing")
	}
	if !(a.SeasonalityNone < a.SeasonalityWeak && a.SeasonalityWeak < a.SeasonalityModerate && a.SeasonalityModerate < a.SeasonalityStrong) {
		t.Error("seasonality buckets must be strictly increasing")
	}
	if a.MinSeasonalPoints < a.MinTrendPoints {
		t.Error("the seasonal minimum should not undercut the overall gate")
	}
}
