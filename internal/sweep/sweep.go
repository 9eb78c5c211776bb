package sweep

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	domtrend "buildpulse/domain/trend"
	"buildpulse/internal"
	"buildpulse/ports"
)

// Result is the outcome of analyzing one series in a sweep. A failed series
// carries its error message and leaves the rest of the sweep untouched.
type Result struct {
	SeriesID   string                `json:"series_id"`
	SeriesName string                `json:"series_name"`
	Report     *domtrend.TrendReport `json:"report,omitempty"`
	Error      string                `json:"error,omitempty"`
}

// SweepResult summarizes one batch run across all stored series.
type SweepResult struct {
	RunID     string    `json:"run_id"`
	StartedAt time.Time `json:"started_at"`
	Duration  string    `json:"duration"`
	Analyzed  int       `json:"analyzed"`
	Failed    int       `json:"failed"`
	Results   []Result  `json:"results"`
}

// Service runs the trend pipeline across every stored series, bounded
// concurrency, per-series failure isolation.
type Service struct {
	repo        ports.SeriesRepository
	detector    ports.TrendAnalyzer
	log         *internal.Logger
	concurrency int
}

// NewService creates a sweep service.
func NewService(repo ports.SeriesRepository, detector ports.TrendAnalyzer, log *internal.Logger) *Service {
	if log == nil {
		log = internal.NewDefaultLogger("sweep")
	}
	return &Service{
		repo:        repo,
		detector:    detector,
		log:         log,
		concurrency: 4,
	}
}

// Run analyzes every stored series for the given trend kinds and persists
// each successful report as an analysis run.
func (s *Service) Run(ctx context.Context, kinds []string) (*SweepResult, error) {
	started := time.Now()
	runID := uuid.NewString()

	metas, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.log.Info("sweep %s starting over %d series", runID, len(metas))

	results := make([]Result, len(metas))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, meta := range metas {
		i, meta := i, meta
		g.Go(func() error {
			results[i] = s.analyzeOne(gctx, meta, kinds)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sweep := &SweepResult{
		RunID:     runID,
		StartedAt: started,
		Duration:  time.Since(started).String(),
		Results:   results,
	}
	for _, r := range results {
		if r.Error == "" {
			sweep.Analyzed++
		} else {
			sweep.Failed++
		}
	}

	s.log.Info("sweep %s done: %d analyzed, %d failed in %s",
		runID, sweep.Analyzed, sweep.Failed, sweep.Duration)
	return sweep, nil
}

// analyzeOne never fails the sweep: errors become part of the result.
func (s *Service) analyzeOne(ctx context.Context, meta ports.SeriesMeta, kinds []string) Result {
	result := Result{SeriesID: meta.ID, SeriesName: meta.Name}

	ser, err := s.repo.Get(ctx, meta.ID)
	if err != nil {
		s.log.Warn("series %s: load failed: %v", meta.ID, err)
		result.Error = err.Error()
		return result
	}

	report, err := s.detector.DetectTrends(ser, kinds)
	if err != nil {
		s.log.Debug("series %s: %v", meta.ID, err)
		result.Error = err.Error()
		return result
	}
	result.Report = report

	reportJSON, err := json.Marshal(report)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	if err := s.repo.SaveRun(ctx, &ports.AnalysisRun{
		SeriesID:   meta.ID,
		ReportJSON: reportJSON,
	}); err != nil {
		s.log.Warn("series %s: failed to persist run: %v", meta.ID, err)
	}
	return result
}
