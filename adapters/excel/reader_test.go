package excel

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestReadSeries_CSV(t *testing.T) {
	path := writeTempCSV(t, "monthly_costs.csv",
		"date,cost\n"+
			"2024-01-01,120.5\n"+
			"2024-02-01,130\n"+
			"2024-03-01,not-a-number\n"+
			"2024-04-01,125\n")

	all, err := NewSeriesReader(path).ReadSeries()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("series count = %d, want 1", len(all))
	}

	s := all[0]
	if s.Name != "monthly_costs" {
		t.Errorf("Name = %s, want the file basename", s.Name)
	}
	if s.Len() != 3 {
		t.Fatalf("Len = %d, want 3 (unparseable row skipped)", s.Len())
	}
	if s.Points[0].Value != 120.5 {
		t.Errorf("first value = %f, want 120.5", s.Points[0].Value)
	}
	if !s.HasCalendarDates() {
		t.Error("csv dates should parse to calendar timestamps")
	}
}

func TestReadSeries_ColumnDiscovery(t *testing.T) {
	// Named columns win over positional defaults regardless of order.
	path := writeTempCSV(t, "reordered.csv",
		"amount,period\n"+
			"42,2024-01-01\n"+
			"43,2024-02-01\n")

	all, err := NewSeriesReader(path).ReadSeries()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := all[0]
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}
	if s.Points[0].Value != 42 {
		t.Errorf("value = %f, want 42 from the amount column", s.Points[0].Value)
	}
	if !s.HasCalendarDates() {
		t.Error("dates should come from the period column")
	}
}

func TestReadSeries_MissingFile(t *testing.T) {
	if _, err := NewSeriesReader("/nonexistent/input.csv").ReadSeries(); err == nil {
		t.Error("a missing file should fail")
	}
}

func TestReadSeries_HeaderOnly(t *testing.T) {
	path := writeTempCSV(t, "empty.csv", "date,value\n")
	all, err := NewSeriesReader(path).ReadSeries()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 1 || all[0].Len() != 0 {
		t.Errorf("header-only file should produce one empty series: %+v", all)
	}
}
