package series

import (
	"math"
	"testing"
	"time"

	"buildpulse/internal/errors"
)

func TestNew_SortsByTimestamp(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	points := []Point{
		{Timestamp: base.AddDate(0, 2, 0), Value: 3},
		{Timestamp: base, Value: 1},
		{Timestamp: base.AddDate(0, 1, 0), Value: 2},
	}

	s, err := New("costs", points, RejectNonFinite)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	values := s.Values()
	for i, want := range []float64{1, 2, 3} {
		if values[i] != want {
			t.Errorf("values = %v, want sorted by timestamp", values)
			break
		}
	}
	if s.Name != "costs" {
		t.Errorf("Name = %s", s.Name)
	}
}

func TestNew_CoercePolicies(t *testing.T) {
	points := []Point{
		{Value: 1},
		{Value: math.NaN()},
		{Value: math.Inf(1)},
		{Value: 2},
	}

	if _, err := New("bad", points, RejectNonFinite); err == nil {
		t.Error("RejectNonFinite should fail on NaN")
	} else if errors.GetCode(err) != errors.CodeInvalidInput {
		t.Errorf("code = %s, want INVALID_INPUT", errors.GetCode(err))
	}

	s, err := New("dropped", points, DropNonFinite)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2 after dropping non-finite points", s.Len())
	}
}

func TestFromRecords(t *testing.T) {
	records := []Record{
		{"cost": 120.5, "date": "2024-01-01"},
		{"cost": 98, "date": "2024-02-01"},
		{"cost": "not a number", "date": "2024-03-01"},
		{"date": "2024-04-01"},
		{"cost": 110.0, "date": "2024-04-01"},
	}

	s, err := FromRecords(records, "cost", "date")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Len() != 3 {
		t.Fatalf("Len = %d, want 3 (bad records skipped)", s.Len())
	}
	if s.Points[0].Value != 120.5 {
		t.Errorf("first value = %f, want 120.5", s.Points[0].Value)
	}
	if s.Points[1].Value != 98 {
		t.Errorf("int values should coerce, got %f", s.Points[1].Value)
	}
	if !s.HasCalendarDates() {
		t.Error("parsed dates should count as calendar dates")
	}
	if s.Points[0].Timestamp.Month() != time.January {
		t.Errorf("first timestamp = %v, want january", s.Points[0].Timestamp)
	}
}

func TestFromRecords_MissingValueField(t *testing.T) {
	if _, err := FromRecords(nil, "", "date"); err == nil {
		t.Error("empty value field name should fail")
	}
}

func TestFromRecords_DateFormats(t *testing.T) {
	records := []Record{
		{"v": 1.0, "d": "2024-03-15T10:30:00Z"},
		{"v": 2.0, "d": "2024/03/16"},
		{"v": 3.0, "d": "03/17/2024"},
		{"v": 4.0, "d": "garbage"},
	}

	s, err := FromRecords(records, "v", "d")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Len() != 4 {
		t.Fatalf("Len = %d, want 4", s.Len())
	}
	// The garbage date keeps a zero timestamp, which disables calendar mode.
	if s.HasCalendarDates() {
		t.Error("an unparseable date should leave a zero timestamp")
	}
}

func TestHasCalendarDates(t *testing.T) {
	s, _ := New("undated", []Point{{Value: 1}, {Value: 2}}, RejectNonFinite)
	if s.HasCalendarDates() {
		t.Error("zero timestamps are not calendar dates")
	}

	empty, _ := New("empty", nil, RejectNonFinite)
	if empty.HasCalendarDates() {
		t.Error("an empty series has no calendar dates")
	}
}

func TestLastTimestamp(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s, _ := New("dated", []Point{
		{Timestamp: base.AddDate(0, 1, 0), Value: 2},
		{Timestamp: base, Value: 1},
	}, RejectNonFinite)

	if got := s.LastTimestamp(); !got.Equal(base.AddDate(0, 1, 0)) {
		t.Errorf("LastTimestamp = %v, want the latest point", got)
	}

	empty, _ := New("empty", nil, RejectNonFinite)
	if !empty.LastTimestamp().IsZero() {
		t.Error("empty series should report a zero last timestamp")
	}
}
