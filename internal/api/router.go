// Package api serves chart calculations and city search over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/litescript/ls-astromap/internal/astrocarto"
	"github.com/litescript/ls-astromap/internal/gazetteer"
	"github.com/litescript/ls-astromap/internal/logging"
)

// Charter computes charts.
type Charter interface {
	Calculate(b astrocarto.BirthData) (*astrocarto.Result, error)
}

// Searcher looks up cities.
type Searcher interface {
	Search(query string, limit int) []gazetteer.City
}

// Handler holds the dependencies shared by all endpoints.
type Handler struct {
	Charter  Charter
	Searcher Searcher
	Logger   *logging.Logger
}

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler.
func NewRouter(charter Charter, searcher Searcher, log *logging.Logger) http.Handler {
	if log == nil {
		log = logging.Discard()
	}
	h := &Handler{Charter: charter, Searcher: searcher, Logger: log}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", h.Health)
	mux.HandleFunc("/v1/chart", h.Chart)
	mux.HandleFunc("/v1/chart.geojson", h.ChartGeoJSON)
	mux.HandleFunc("/v1/cities", h.Cities)

	return loggingMiddleware(log, mux)
}

// NewServer wraps handler in an http.Server with conservative timeouts.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
