package report

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	domtrend "buildpulse/domain/trend"
	domweather "buildpulse/domain/weather"
)

// TrendMarkdown renders a trend report as a markdown document for the
// dashboard collaborator.
func TrendMarkdown(name string, report *domtrend.TrendReport) string {
	var b strings.Builder

	title := name
	if title == "" {
		title = "series"
	}
	fmt.Fprintf(&b, "# Trend analysis: %s\n\n", title)
	fmt.Fprintf(&b, "%d data points analyzed.\n\n", report.DataPoints)

	oa := report.OverallAssessment
	b.WriteString("## Overall assessment\n\n")
	fmt.Fprintf(&b, "- Primary trend: **%s** (confidence %.1f)\n", oa.PrimaryTrend, oa.TrendConfidence)
	fmt.Fprintf(&b, "- Pattern complexity: %s\n", oa.PatternComplexity)
	fmt.Fprintf(&b, "- Forecast reliability: %s\n\n", oa.ForecastReliability)

	if lin := report.Trends.Linear; lin != nil {
		b.WriteString("## Linear trend\n\n")
		if lin.Error != "" {
			fmt.Fprintf(&b, "Not available: %s\n\n", lin.Error)
		} else {
			fmt.Fprintf(&b, "- Direction: %s (%s)\n", lin.TrendDirection, lin.TrendStrength)
			fmt.Fprintf(&b, "- Slope: %.4f, intercept: %.4f\n", lin.Coefficients.Slope, lin.Coefficients.Intercept)
			fmt.Fprintf(&b, "- Correlation: %.4f (p=%.4g)\n", lin.Correlation, lin.PValue)
			fmt.Fprintf(&b, "- Reversal points: %d\n\n", len(lin.ReversalPoints))
		}
	}

	if sea := report.Trends.Seasonal; sea != nil {
		b.WriteString("## Seasonality\n\n")
		if sea.Error != "" {
			fmt.Fprintf(&b, "Not available: %s\n\n", sea.Error)
		} else {
			fmt.Fprintf(&b, "- Strength: %.3f (%s)\n", sea.SeasonalityStrength, sea.StrengthLevel)
			fmt.Fprintf(&b, "- Peak month: %d, trough month: %d\n", sea.PeakMonth, sea.TroughMonth)
			if sea.MonthSource == domtrend.MonthSourceFallback {
				b.WriteString("- Months derived from index fallback; calendar dates were missing\n")
			}
			b.WriteString("\n")
		}
	}

	if cyc := report.Trends.Cyclical; cyc != nil {
		b.WriteString("## Cyclical patterns\n\n")
		if cyc.Error != "" {
			fmt.Fprintf(&b, "Not available: %s\n\n", cyc.Error)
		} else {
			fmt.Fprintf(&b, "- Strength: %.3f (%s)\n", cyc.CyclicalStrength, cyc.StrengthLevel)
			fmt.Fprintf(&b, "- Significant cycle lengths: %v\n", cyc.SignificantCycles)
			fmt.Fprintf(&b, "- Business cycles found: %d\n\n", len(cyc.BusinessCycles))
		}
	}

	if brk := report.Trends.StructuralBreaks; brk != nil {
		b.WriteString("## Structural breaks\n\n")
		if brk.Error != "" {
			fmt.Fprintf(&b, "Not available: %s\n\n", brk.Error)
		} else {
			fmt.Fprintf(&b, "- CUSUM breaks: %d (threshold %.2f)\n", brk.CUSUM.SignificantBreaks, brk.CUSUM.Threshold)
			fmt.Fprintf(&b, "- Chow test: F=%.3f, p=%.4g, break detected: %t\n", brk.ChowTest.FStatistic, brk.ChowTest.PValue, brk.ChowTest.BreakDetected)
			fmt.Fprintf(&b, "- Change points: %v\n\n", brk.ChangePoints)
		}
	}

	return b.String()
}

// WeatherMarkdown renders an impact analysis as a markdown document.
func WeatherMarkdown(result *domweather.ImpactAnalysisResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Weather impact: %.0f/100\n\n", result.ImpactScore)
	fmt.Fprintf(&b, "Project type: %s\n\n", result.ProjectType)

	b.WriteString("## Recommendations\n\n")
	for _, rec := range result.Recommendations {
		fmt.Fprintf(&b, "- %s\n", rec)
	}

	fs := result.ForecastSummary
	b.WriteString("\n## Forecast window\n\n")
	fmt.Fprintf(&b, "- Slots evaluated: %d, adverse: %d\n", fs.SlotsEvaluated, fs.AdverseSlots)
	fmt.Fprintf(&b, "- Active alerts: %d\n", fs.ActiveAlerts)

	return b.String()
}

// ToHTML renders a markdown document to HTML for the report endpoint.
func ToHTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML([]byte(md), p, renderer)
}
