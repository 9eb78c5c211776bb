package report

import (
	"strings"
	"testing"

	"buildpulse/adapters/trend"
	"buildpulse/adapters/weather"
	domweather "buildpulse/domain/weather"
	"buildpulse/internal/testkit"
)

func TestTrendMarkdown(t *testing.T) {
	gen := testkit.NewSeriesGenerator(testkit.DefaultConfig())
	s := gen.Linear(2, 5)

	trendReport, err := trend.NewDefaultDetector().DetectTrends(s, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	md := TrendMarkdown("monthly_costs", trendReport)
	for _, want := range []string{
		"# Trend analysis: monthly_costs",
		"24 data points",
		"## Overall assessment",
		"## Linear trend",
		"increasing",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
	// Cyclical needs 20+ points but seasonal succeeds on 24; both sections
	// render either way, with errors surfaced inline.
	if !strings.Contains(md, "## Seasonality") {
		t.Error("markdown missing seasonality section")
	}
}

func TestTrendMarkdown_UnnamedSeries(t *testing.T) {
	gen := testkit.NewSeriesGenerator(testkit.DefaultConfig())
	trendReport, err := trend.NewDefaultDetector().DetectTrends(gen.Linear(1, 0), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	md := TrendMarkdown("", trendReport)
	if !strings.Contains(md, "# Trend analysis: series") {
		t.Error("an unnamed series should fall back to a generic title")
	}
}

func TestWeatherMarkdown(t *testing.T) {
	scorer := weather.NewDefaultImpactScorer()
	result := scorer.Score(testkit.StormBundle(), domweather.ProjectRoofing)

	md := WeatherMarkdown(result)
	for _, want := range []string{
		"# Weather impact: 100/100",
		"Project type: roofing",
		"## Recommendations",
		"## Forecast window",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestToHTML(t *testing.T) {
	html := string(ToHTML("# Title\n\n- item one\n- item two\n"))
	if !strings.Contains(html, "<h1") {
		t.Errorf("expected a heading element, got %s", html)
	}
	if !strings.Contains(html, "<li>") {
		t.Errorf("expected list items, got %s", html)
	}
}
