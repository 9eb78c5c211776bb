package series

import (
	"math"
	"sort"
	"time"

	"buildpulse/internal/errors"
)

// CoercePolicy controls what happens to non-finite values during construction.
type CoercePolicy int

const (
	// RejectNonFinite fails construction on the first NaN or Inf value.
	RejectNonFinite CoercePolicy = iota
	// DropNonFinite silently drops NaN and Inf points.
	DropNonFinite
)

// Point is a single dated observation.
type Point struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// Series is an ordered sequence of dated observations. It is a value object:
// constructed once per analysis call, never mutated afterwards.
type Series struct {
	Name   string  `json:"name,omitempty"`
	Points []Point `json:"points"`
}

// New builds a Series from points, applying the coercion policy and sorting
// by timestamp (stable, so equal timestamps keep input order).
func New(name string, points []Point, policy CoercePolicy) (*Series, error) {
	kept := make([]Point, 0, len(points))
	for _, p := range points {
		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			if policy == RejectNonFinite {
				return nil, errors.InvalidInput("series contains non-finite value")
			}
			continue
		}
		kept = append(kept, p)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Timestamp.Before(kept[j].Timestamp)
	})

	return &Series{Name: name, Points: kept}, nil
}

// Record is the loosely-typed shape collaborators hand us: one map per
// observation, with caller-named value and date fields.
type Record = map[string]interface{}

// FromRecords builds a Series out of collaborator records. Records whose value
// field is missing or not numeric are skipped; a record with a missing date
// keeps a zero timestamp so downstream month grouping can detect the gap.
func FromRecords(records []Record, valueField, dateField string) (*Series, error) {
	if valueField == "" {
		return nil, errors.InvalidInput("value field name is required")
	}

	points := make([]Point, 0, len(records))
	for _, rec := range records {
		raw, ok := rec[valueField]
		if !ok {
			continue
		}
		val, ok := toFloat(raw)
		if !ok {
			continue
		}

		var ts time.Time
		if dateField != "" {
			switch d := rec[dateField].(type) {
			case time.Time:
				ts = d
			case string:
				ts = parseDate(d)
			}
		}
		points = append(points, Point{Timestamp: ts, Value: val})
	}

	return New("", points, DropNonFinite)
}

// Len returns the number of observations.
func (s *Series) Len() int {
	return len(s.Points)
}

// Values returns the observation values in timestamp order.
func (s *Series) Values() []float64 {
	vals := make([]float64, len(s.Points))
	for i, p := range s.Points {
		vals[i] = p.Value
	}
	return vals
}

// Timestamps returns the observation timestamps in order.
func (s *Series) Timestamps() []time.Time {
	ts := make([]time.Time, len(s.Points))
	for i, p := range s.Points {
		ts[i] = p.Timestamp
	}
	return ts
}

// HasCalendarDates reports whether every point carries a real timestamp.
// Month-based grouping needs this; zero timestamps force the index fallback.
func (s *Series) HasCalendarDates() bool {
	for _, p := range s.Points {
		if p.Timestamp.IsZero() {
			return false
		}
	}
	return len(s.Points) > 0
}

// LastTimestamp returns the timestamp of the final observation.
func (s *Series) LastTimestamp() time.Time {
	if len(s.Points) == 0 {
		return time.Time{}
	}
	return s.Points[len(s.Points)-1].Timestamp
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	}
	return 0, false
}

// parseDate tries the formats collaborators actually send. Unparseable dates
// come back zero rather than failing the whole record batch.
func parseDate(s string) time.Time {
	formats := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02 15:04:05",
		"2006/01/02",
		"01/02/2006",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
