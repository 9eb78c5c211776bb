package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"buildpulse/domain/series"
	"buildpulse/internal/errors"
	"buildpulse/ports"
)

// seriesRepository implements the SeriesRepository interface
type seriesRepository struct {
	db *sqlx.DB
}

// NewSeriesRepository creates a new metric series repository
func NewSeriesRepository(db *sqlx.DB) ports.SeriesRepository {
	return &seriesRepository{db: db}
}

// Connect opens a postgres connection pool for the repository.
func Connect(url string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", url)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to postgres")
	}
	return db, nil
}

// List returns metadata for every stored series.
func (r *seriesRepository) List(ctx context.Context) ([]ports.SeriesMeta, error) {
	query := `SELECT s.id, s.name, s.metric, s.created_at,
		(SELECT COUNT(*) FROM series_points p WHERE p.series_id = s.id) AS point_count
	FROM metric_series s ORDER BY s.created_at DESC`

	var out []ports.SeriesMeta
	if err := r.db.SelectContext(ctx, &out, query); err != nil {
		return nil, fmt.Errorf("failed to list series: %w", err)
	}
	return out, nil
}

// Get loads one series with its points in timestamp order.
func (r *seriesRepository) Get(ctx context.Context, id string) (*series.Series, error) {
	var name string
	err := r.db.QueryRowContext(ctx,
		`SELECT name FROM metric_series WHERE id = $1`, id).Scan(&name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFound("series")
		}
		return nil, fmt.Errorf("failed to get series: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT observed_at, value FROM series_points WHERE series_id = $1 ORDER BY observed_at`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load series points: %w", err)
	}
	defer rows.Close()

	var points []series.Point
	for rows.Next() {
		var p series.Point
		if err := rows.Scan(&p.Timestamp, &p.Value); err != nil {
			return nil, fmt.Errorf("failed to scan series point: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate series points: %w", err)
	}

	return series.New(name, points, series.DropNonFinite)
}

// Save stores a series and its points, returning the new series ID.
func (r *seriesRepository) Save(ctx context.Context, name, metric string, s *series.Series) (string, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	id := uuid.NewString()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO metric_series (id, name, metric, created_at) VALUES ($1, $2, $3, $4)`,
		id, name, metric, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("failed to insert series: %w", err)
	}

	for _, p := range s.Points {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO series_points (series_id, observed_at, value) VALUES ($1, $2, $3)`,
			id, p.Timestamp, p.Value)
		if err != nil {
			return "", fmt.Errorf("failed to insert series point: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit series: %w", err)
	}
	return id, nil
}

// SaveRun persists one completed analysis run.
func (r *seriesRepository) SaveRun(ctx context.Context, run *ports.AnalysisRun) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO analysis_runs (id, series_id, report, created_at) VALUES ($1, $2, $3, $4)`,
		run.ID, run.SeriesID, run.ReportJSON, run.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert analysis run: %w", err)
	}
	return nil
}

// ListRuns returns the analysis runs for one series, newest first.
func (r *seriesRepository) ListRuns(ctx context.Context, seriesID string) ([]ports.AnalysisRun, error) {
	var runs []ports.AnalysisRun
	err := r.db.SelectContext(ctx, &runs,
		`SELECT id, series_id, report, created_at FROM analysis_runs
		 WHERE series_id = $1 ORDER BY created_at DESC`, seriesID)
	if err != nil {
		return nil, fmt.Errorf("failed to list analysis runs: %w", err)
	}
	return runs, nil
}

// Schema is the DDL the repository expects; applied by cmd/api at startup
// when the tables are missing.
const Schema = `
CREATE TABLE IF NOT EXISTS metric_series (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	metric TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS series_points (
	series_id UUID NOT NULL REFERENCES metric_series(id) ON DELETE CASCADE,
	observed_at TIMESTAMPTZ NOT NULL,
	value DOUBLE PRECISION NOT NULL
);

CREATE TABLE IF NOT EXISTS analysis_runs (
	id UUID PRIMARY KEY,
	series_id UUID NOT NULL REFERENCES metric_series(id) ON DELETE CASCADE,
	report JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// EnsureSchema applies the repository DDL.
func EnsureSchema(db *sqlx.DB) error {
	if _, err := db.Exec(Schema); err != nil {
		return errors.Wrap(err, "failed to apply schema")
	}
	return nil
}
