package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"buildpulse/domain/series"
	domweather "buildpulse/domain/weather"
	"buildpulse/internal/errors"
	"buildpulse/internal/report"
)

func (a *App) handleStatistics(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Values []float64 `json:"values"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	summary := a.deps.Stats.CalculateNumericStatistics(req.Values)
	if summary == nil {
		// Empty input yields an empty result, not an error.
		writeJSON(w, http.StatusOK, map[string]interface{}{})
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (a *App) handleHypothesisTest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Sample1  []float64 `json:"sample1"`
		Sample2  []float64 `json:"sample2"`
		TestType string    `json:"test_type"`
		Alpha    *float64  `json:"alpha"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	alpha := 0.05
	if req.Alpha != nil {
		alpha = *req.Alpha
	}
	result, err := a.deps.Stats.PerformHypothesisTest(req.Sample1, req.Sample2, req.TestType, alpha)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (a *App) handleConfidenceInterval(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Data            []float64 `json:"data"`
		ConfidenceLevel *float64  `json:"confidence_level"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	level := 0.95
	if req.ConfidenceLevel != nil {
		level = *req.ConfidenceLevel
	}
	result, err := a.deps.Stats.CalculateConfidenceIntervals(req.Data, level)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (a *App) handleCorrelation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Data1 []float64 `json:"data1"`
		Data2 []float64 `json:"data2"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := a.deps.Stats.PerformCorrelationAnalysis(req.Data1, req.Data2)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleTrends accepts either inline records with field names or a stored
// series ID.
func (a *App) handleTrends(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Records    []series.Record `json:"records"`
		ValueField string          `json:"value_field"`
		DateField  string          `json:"date_field"`
		TrendTypes []string        `json:"trend_types"`
		SeriesID   string          `json:"series_id"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	var (
		s   *series.Series
		err error
	)
	switch {
	case req.SeriesID != "":
		if a.deps.SeriesRepo == nil {
			writeError(w, errors.ValidationError("series storage is not configured"))
			return
		}
		s, err = a.deps.SeriesRepo.Get(r.Context(), req.SeriesID)
	case len(req.Records) > 0:
		s, err = series.FromRecords(req.Records, req.ValueField, req.DateField)
	default:
		err = errors.ValidationError("either records or series_id must be provided")
	}
	if err != nil {
		writeError(w, err)
		return
	}

	reportResult, err := a.deps.Detector.DetectTrends(s, req.TrendTypes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reportResult)
}

func (a *App) handleWeatherImpact(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Weather     domweather.Bundle `json:"weather"`
		ProjectType string            `json:"project_type"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, a.deps.Scorer.Score(req.Weather, req.ProjectType))
}

func (a *App) handleRegression(w http.ResponseWriter, r *http.Request) {
	var req struct {
		X []float64 `json:"x"`
		Y []float64 `json:"y"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := a.deps.Stats.PerformRegression(req.X, req.Y)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (a *App) handleClusters(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Data      [][]float64 `json:"data"`
		NClusters int         `json:"n_clusters"`
		Seed      *int64      `json:"seed"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	seed := int64(42)
	if req.Seed != nil {
		seed = *req.Seed
	}
	result, err := a.deps.Stats.PerformClusterAnalysis(req.Data, req.NClusters, seed)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (a *App) handlePCA(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Data        [][]float64 `json:"data"`
		NComponents int         `json:"n_components"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := a.deps.Stats.PerformPCA(req.Data, req.NComponents)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (a *App) handlePower(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EffectSize float64  `json:"effect_size"`
		Alpha      *float64 `json:"alpha"`
		SampleSize *int     `json:"sample_size"`
		Power      *float64 `json:"power"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	alpha := 0.05
	if req.Alpha != nil {
		alpha = *req.Alpha
	}
	result, err := a.deps.Stats.CalculateStatisticalPower(req.EffectSize, alpha, req.SampleSize, req.Power)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (a *App) handleListSeries(w http.ResponseWriter, r *http.Request) {
	if a.deps.SeriesRepo == nil {
		writeError(w, errors.ValidationError("series storage is not configured"))
		return
	}
	metas, err := a.deps.SeriesRepo.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, metas)
}

// handleImportSeries pulls every sheet of the configured import file into
// series storage.
func (a *App) handleImportSeries(w http.ResponseWriter, r *http.Request) {
	if a.deps.SeriesRepo == nil || a.deps.Reader == nil {
		writeError(w, errors.ValidationError("series storage and import file must be configured"))
		return
	}

	imported, err := a.deps.Reader.ReadSeries()
	if err != nil {
		writeError(w, errors.Wrap(err, "import failed"))
		return
	}

	ids := make([]string, 0, len(imported))
	for _, s := range imported {
		id, err := a.deps.SeriesRepo.Save(r.Context(), s.Name, s.Name, s)
		if err != nil {
			writeError(w, err)
			return
		}
		ids = append(ids, id)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"imported": len(ids), "series_ids": ids})
}

// handleSeriesReport runs the full pipeline on a stored series and renders
// the HTML report.
func (a *App) handleSeriesReport(w http.ResponseWriter, r *http.Request) {
	if a.deps.SeriesRepo == nil {
		writeError(w, errors.ValidationError("series storage is not configured"))
		return
	}

	id := chi.URLParam(r, "id")
	s, err := a.deps.SeriesRepo.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	trendReport, err := a.deps.Detector.DetectTrends(s, nil)
	if err != nil {
		writeError(w, err)
		return
	}

	md := report.TrendMarkdown(s.Name, trendReport)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(report.ToHTML(md))
}

func (a *App) handleSweep(w http.ResponseWriter, r *http.Request) {
	if a.deps.Sweep == nil {
		writeError(w, errors.ValidationError("series storage is not configured"))
		return
	}

	var req struct {
		TrendTypes []string `json:"trend_types"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := a.deps.Sweep.Run(r.Context(), req.TrendTypes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
