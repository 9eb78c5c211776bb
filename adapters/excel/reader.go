package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"buildpulse/domain/series"
	"buildpulse/ports"
)

// SeriesReader imports dated metric series from Excel or CSV files. Each
// sheet (or the single CSV body) becomes one named series.
type SeriesReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewSeriesReader creates a reader that handles both Excel and CSV files.
func NewSeriesReader(filePath string) ports.SeriesReader {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(filePath)) == ".csv" {
		fileType = "csv"
	}
	return &SeriesReader{filePath: filePath, fileType: fileType}
}

// ReadSeries loads every sheet of the source as one series.
func (r *SeriesReader) ReadSeries() ([]*series.Series, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("import file not found: %s", r.filePath)
	}

	if r.fileType == "csv" {
		s, err := r.readCSV()
		if err != nil {
			return nil, err
		}
		return []*series.Series{s}, nil
	}
	return r.readExcel()
}

func (r *SeriesReader) readExcel() ([]*series.Series, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer f.Close()

	var out []*series.Series
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
		}
		s, err := rowsToSeries(sheet, rows)
		if err != nil {
			return nil, fmt.Errorf("sheet %s: %w", sheet, err)
		}
		if s.Len() > 0 {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *SeriesReader) readCSV() (*series.Series, error) {
	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv file: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(r.filePath), filepath.Ext(r.filePath))
	return rowsToSeries(name, records)
}

// rowsToSeries converts a header row plus data rows into a series. The date
// and value columns are found by header name, falling back to the first two
// columns.
func rowsToSeries(name string, rows [][]string) (*series.Series, error) {
	if len(rows) < 2 {
		return series.New(name, nil, series.DropNonFinite)
	}

	dateCol, valueCol := findColumns(rows[0])

	var points []series.Point
	for _, row := range rows[1:] {
		if valueCol >= len(row) {
			continue
		}
		val, err := strconv.ParseFloat(strings.TrimSpace(row[valueCol]), 64)
		if err != nil {
			continue
		}

		var ts time.Time
		if dateCol >= 0 && dateCol < len(row) {
			ts = parseCellDate(strings.TrimSpace(row[dateCol]))
		}
		points = append(points, series.Point{Timestamp: ts, Value: val})
	}

	return series.New(name, points, series.DropNonFinite)
}

func findColumns(header []string) (dateCol, valueCol int) {
	dateCol, valueCol = 0, 1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "date", "timestamp", "observed_at", "period":
			dateCol = i
		case "value", "amount", "cost", "metric":
			valueCol = i
		}
	}
	return dateCol, valueCol
}

func parseCellDate(s string) time.Time {
	formats := []string{
		"2006-01-02",
		time.RFC3339,
		"01-02-06",
		"1/2/06 15:04",
		"01/02/2006",
		"2006/01/02",
		"Jan-06",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
