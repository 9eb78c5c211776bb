package container

import (
	"github.com/jmoiron/sqlx"

	"buildpulse/adapters/excel"
	"buildpulse/adapters/postgres"
	"buildpulse/adapters/stats/engine"
	"buildpulse/adapters/trend"
	"buildpulse/adapters/weather"
	"buildpulse/internal"
	"buildpulse/internal/config"
	"buildpulse/internal/sweep"
	"buildpulse/ports"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Log    *internal.Logger

	// Infrastructure
	DB *sqlx.DB

	// Repositories and readers
	SeriesRepo ports.SeriesRepository
	Reader     ports.SeriesReader

	// Analysis components
	Stats    *engine.StatsEngine
	Detector *trend.Detector
	Scorer   ports.ImpactScorer

	// Services
	Sweep *sweep.Service
}

// New creates a new dependency injection container. The database and the
// import reader are optional: absent configuration leaves them nil and the
// pure-computation surfaces still work.
func New(cfg *config.Config) (*Container, error) {
	log := internal.NewDefaultLogger("buildpulse")

	c := &Container{
		Config:   cfg,
		Log:      log,
		Stats:    engine.NewStatsEngine(cfg.Analysis),
		Detector: trend.NewDetector(cfg.Analysis, internal.NewDefaultLogger("trend")),
		Scorer:   weather.NewImpactScorer(cfg.Weather),
	}

	if cfg.Database.URL != "" {
		db, err := postgres.Connect(cfg.Database.URL)
		if err != nil {
			return nil, err
		}
		if err := postgres.EnsureSchema(db); err != nil {
			return nil, err
		}
		c.DB = db
		c.SeriesRepo = postgres.NewSeriesRepository(db)
		c.Sweep = sweep.NewService(c.SeriesRepo, c.Detector, internal.NewDefaultLogger("sweep"))
		log.Info("postgres series repository initialized")
	} else {
		log.Warn("DATABASE_URL not set; series storage disabled")
	}

	if cfg.Paths.ImportFile != "" {
		c.Reader = excel.NewSeriesReader(cfg.Paths.ImportFile)
	}

	return c, nil
}

// Close releases held resources.
func (c *Container) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
