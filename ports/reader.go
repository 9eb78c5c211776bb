package ports

import (
	"buildpulse/domain/series"
)

// SeriesReader defines the interface for importing dated metric series from
// external files.
type SeriesReader interface {
	// ReadSeries loads every sheet of the source as one named series.
	ReadSeries() ([]*series.Series, error)
}
