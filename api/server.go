package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"buildpulse/internal/container"
	"buildpulse/internal/errors"
)

// App is the HTTP surface over the analytics core. It marshals core results
// verbatim so the field contract passes through untouched.
type App struct {
	router *chi.Mux
	deps   *container.Container
}

// NewApp creates the HTTP application and mounts its routes.
func NewApp(deps *container.Container) *App {
	app := &App{
		router: chi.NewRouter(),
		deps:   deps,
	}
	app.routes()
	return app
}

func (a *App) routes() {
	r := a.router
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/statistics", a.handleStatistics)
		r.Post("/hypothesis-test", a.handleHypothesisTest)
		r.Post("/confidence-interval", a.handleConfidenceInterval)
		r.Post("/correlation", a.handleCorrelation)
		r.Post("/trends", a.handleTrends)
		r.Post("/weather-impact", a.handleWeatherImpact)

		r.Route("/models", func(r chi.Router) {
			r.Post("/regression", a.handleRegression)
			r.Post("/clusters", a.handleClusters)
			r.Post("/pca", a.handlePCA)
			r.Post("/power", a.handlePower)
		})

		r.Route("/series", func(r chi.Router) {
			r.Get("/", a.handleListSeries)
			r.Post("/import", a.handleImportSeries)
			r.Get("/{id}/report", a.handleSeriesReport)
		})
		r.Post("/sweep", a.handleSweep)
	})
}

// Start runs the server until the context is canceled, then shuts down
// gracefully.
func (a *App) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		a.deps.Log.Info("server listening on :%s", port)
		errChan <- srv.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// Router exposes the mux for tests.
func (a *App) Router() http.Handler {
	return a.router
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps the error taxonomy to HTTP statuses and a structured body.
func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.CodeValidationError, errors.CodeInvalidInput:
		status = http.StatusBadRequest
	case errors.CodeInsufficientData, errors.CodeNumericDegeneracy:
		status = http.StatusUnprocessableEntity
	case errors.CodeNotFound:
		status = http.StatusNotFound
	}
	writeJSON(w, status, map[string]string{"error": err.Error(), "code": code})
}

func decode(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.InvalidInput("invalid JSON body: " + err.Error())
	}
	return nil
}
