package ports

import (
	"context"
	"time"

	"buildpulse/domain/series"
)

// SeriesMeta describes a stored metric series without its points.
type SeriesMeta struct {
	ID         string    `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Metric     string    `db:"metric" json:"metric"`
	PointCount int       `db:"point_count" json:"point_count"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// AnalysisRun records one completed trend analysis over a stored series.
type AnalysisRun struct {
	ID         string    `db:"id" json:"id"`
	SeriesID   string    `db:"series_id" json:"series_id"`
	ReportJSON []byte    `db:"report" json:"report"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// SeriesRepository defines the interface for metric series storage.
type SeriesRepository interface {
	List(ctx context.Context) ([]SeriesMeta, error)
	Get(ctx context.Context, id string) (*series.Series, error)
	Save(ctx context.Context, name, metric string, s *series.Series) (string, error)
	SaveRun(ctx context.Context, run *AnalysisRun) error
	ListRuns(ctx context.Context, seriesID string) ([]AnalysisRun, error)
}
