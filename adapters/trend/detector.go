package trend

import (
	"buildpulse/domain/series"
	domtrend "buildpulse/domain/trend"
	"buildpulse/internal"
	"buildpulse/internal/config"
	"buildpulse/internal/errors"
)

// Detector runs the trend decomposition pipeline: linear, seasonal, cyclical,
// and structural-break analysis over one time series. Stateless beyond its
// thresholds; safe for concurrent use.
type Detector struct {
	cfg config.AnalysisConfig
	log *internal.Logger
}

// NewDetector creates a detector with the given thresholds.
func NewDetector(cfg config.AnalysisConfig, log *internal.Logger) *Detector {
	if log == nil {
		log = internal.NewDefaultLogger("trend")
	}
	return &Detector{cfg: cfg, log: log}
}

// NewDefaultDetector creates a detector with the production threshold set.
func NewDefaultDetector() *Detector {
	return NewDetector(config.DefaultAnalysisConfig(), nil)
}

// DetectTrends analyzes the series for the requested trend kinds. The whole
// call fails only when the overall minimum is unmet; each kind applies its
// own stricter minimum and reports per-kind errors inside the result so batch
// callers keep going.
func (d *Detector) DetectTrends(s *series.Series, kinds []string) (*domtrend.TrendReport, error) {
	if s == nil || s.Len() < d.cfg.MinTrendPoints {
		n := 0
		if s != nil {
			n = s.Len()
		}
		return nil, errors.InsufficientDataf("trend detection", d.cfg.MinTrendPoints, n)
	}
	if len(kinds) == 0 {
		kinds = domtrend.DefaultKinds
	}

	values := s.Values()

	type kindResult struct {
		kind   string
		result interface{}
	}
	resultChan := make(chan kindResult, len(kinds))

	// Kinds are independent sub-analyses; fan them out.
	for _, kind := range kinds {
		go func(kind string) {
			switch kind {
			case domtrend.KindLinear:
				resultChan <- kindResult{kind, d.analyzeLinear(values)}
			case domtrend.KindSeasonal:
				resultChan <- kindResult{kind, d.analyzeSeasonal(s)}
			case domtrend.KindCyclical:
				resultChan <- kindResult{kind, d.analyzeCyclical(values)}
			case domtrend.KindStructuralBreaks:
				resultChan <- kindResult{kind, d.analyzeStructuralBreaks(values)}
			default:
				resultChan <- kindResult{kind, nil}
			}
		}(kind)
	}

	report := &domtrend.TrendReport{
		ValueField: s.Name,
		DataPoints: s.Len(),
	}
	for range kinds {
		kr := <-resultChan
		switch res := kr.result.(type) {
		case *domtrend.LinearTrend:
			report.Trends.Linear = res
		case *domtrend.SeasonalTrend:
			report.Trends.Seasonal = res
		case *domtrend.CyclicalTrend:
			report.Trends.Cyclical = res
		case *domtrend.StructuralBreaksTrend:
			report.Trends.StructuralBreaks = res
		default:
			d.log.Warn("unknown trend kind requested: %s", kr.kind)
		}
	}

	report.OverallAssessment = d.assess(report.Trends)
	return report, nil
}
