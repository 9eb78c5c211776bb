package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"buildpulse/internal/config"
	"buildpulse/internal/container"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := &config.Config{
		Server:   config.ServerConfig{Port: "0"},
		Analysis: config.DefaultAnalysisConfig(),
		Weather:  config.DefaultWeatherConfig(),
	}
	deps, err := container.New(cfg)
	if err != nil {
		t.Fatalf("container init failed: %v", err)
	}
	return NewApp(deps)
}

func postJSON(t *testing.T, app *App, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestHandleStatistics(t *testing.T) {
	app := newTestApp(t)
	rec := postJSON(t, app, "/api/v1/statistics", map[string]interface{}{
		"values": []float64{2, 4, 4, 4, 5, 5, 7, 9},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if body["mean"] != 5.0 {
		t.Errorf("mean = %v, want 5", body["mean"])
	}
	if body["count"] != 8.0 {
		t.Errorf("count = %v, want 8", body["count"])
	}
	percentiles, ok := body["percentiles"].(map[string]interface{})
	if !ok {
		t.Fatal("response should nest percentiles")
	}
	if _, ok := percentiles["25"]; !ok {
		t.Error("percentiles should be keyed by their level")
	}
}

func TestHandleHypothesisTest_ErrorMapping(t *testing.T) {
	app := newTestApp(t)

	// Missing sample1 is a validation failure.
	rec := postJSON(t, app, "/api/v1/hypothesis-test", map[string]interface{}{
		"test_type": "t_test_one_sample",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("validation failure mapped to %d, want 400", rec.Code)
	}

	// A constant sample is structurally valid but numerically degenerate.
	rec = postJSON(t, app, "/api/v1/hypothesis-test", map[string]interface{}{
		"sample1":   []float64{3, 3, 3, 3},
		"test_type": "t_test_one_sample",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("degeneracy mapped to %d, want 422", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	if body["code"] != "NUMERIC_DEGENERACY" {
		t.Errorf("error code = %s", body["code"])
	}
}

func TestHandleTrends_WithRecords(t *testing.T) {
	app := newTestApp(t)

	records := make([]map[string]interface{}, 24)
	for i := range records {
		records[i] = map[string]interface{}{
			"cost": 100 + float64(i)*2,
			"date": time24Months(i),
		}
	}
	rec := postJSON(t, app, "/api/v1/trends", map[string]interface{}{
		"records":     records,
		"value_field": "cost",
		"date_field":  "date",
		"trend_types": []string{"linear"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if body["data_points"] != 24.0 {
		t.Errorf("data_points = %v, want 24", body["data_points"])
	}
	trends := body["trends"].(map[string]interface{})
	linear := trends["linear"].(map[string]interface{})
	if linear["trend_direction"] != "increasing" {
		t.Errorf("trend_direction = %v", linear["trend_direction"])
	}
}

func TestHandleTrends_InsufficientData(t *testing.T) {
	app := newTestApp(t)

	rec := postJSON(t, app, "/api/v1/trends", map[string]interface{}{
		"records": []map[string]interface{}{
			{"cost": 1.0}, {"cost": 2.0}, {"cost": 3.0},
		},
		"value_field": "cost",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
}

func TestHandleTrends_NoInput(t *testing.T) {
	app := newTestApp(t)
	rec := postJSON(t, app, "/api/v1/trends", map[string]interface{}{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 without records or series_id", rec.Code)
	}
}

func TestHandleWeatherImpact(t *testing.T) {
	app := newTestApp(t)

	rec := postJSON(t, app, "/api/v1/weather-impact", map[string]interface{}{
		"weather": map[string]interface{}{
			"current": map[string]interface{}{
				"temperature": -5,
				"humidity":    50,
				"pressure":    1013,
				"wind_speed":  5,
				"conditions":  []string{"clear"},
			},
		},
		"project_type": "outdoor",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if body["impact_score"] != 24.0 {
		t.Errorf("impact_score = %v, want 24", body["impact_score"])
	}
}

func TestHandlePower(t *testing.T) {
	app := newTestApp(t)

	rec := postJSON(t, app, "/api/v1/models/power", map[string]interface{}{
		"effect_size": 0.5,
		"sample_size": 64,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if body["solved_for"] != "power" {
		t.Errorf("solved_for = %v", body["solved_for"])
	}
	power := body["power"].(float64)
	if power < 0.7 || power > 0.9 {
		t.Errorf("power = %f, want near 0.8", power)
	}
}

func TestStorageEndpointsWithoutDatabase(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/series/", nil)
	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("series listing without storage: status = %d, want 400", rec.Code)
	}

	rec = postJSON(t, app, "/api/v1/sweep", map[string]interface{}{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("sweep without storage: status = %d, want 400", rec.Code)
	}
}

func TestInvalidJSONBody(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/statistics", bytes.NewReader([]byte("{broken")))
	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for malformed JSON", rec.Code)
	}
}

func time24Months(i int) string {
	return fmt.Sprintf("%d-%02d-01", 2023+i/12, i%12+1)
}
