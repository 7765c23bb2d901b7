package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/litescript/ls-astromap/internal/astrocarto"
	"github.com/litescript/ls-astromap/internal/gazetteer"
	"github.com/litescript/ls-astromap/internal/report"
	"github.com/litescript/ls-astromap/internal/version"
)

// Search limits for /v1/cities.
const (
	MaxSearchLimit = 50
	maxBodyBytes   = 1 << 16
)

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// CityResponse is one search hit.
type CityResponse struct {
	Name     string  `json:"name"`
	Country  string  `json:"country"`
	Label    string  `json:"label"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Timezone string  `json:"timezone,omitempty"`
	Pop      int64   `json:"pop,omitempty"`
}

// CitiesResponse wraps search hits.
type CitiesResponse struct {
	Query  string         `json:"query"`
	Cities []CityResponse `json:"cities"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Logger.Warn("http.encode_failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, msg, field string) {
	h.writeJSON(w, r, status, errorResponse{Error: msg, Field: field})
}

func (h *Handler) allow(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	h.writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", "")
	return false
}

// Health provides a minimal liveness check endpoint.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r, http.MethodGet) {
		return
	}
	h.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok", "version": version.Version})
}

// Chart computes a chart from a BirthData body.
func (h *Handler) Chart(w http.ResponseWriter, r *http.Request) {
	res, ok := h.calculate(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, r, http.StatusOK, report.Export(res))
}

// ChartGeoJSON computes a chart and returns it as a FeatureCollection.
func (h *Handler) ChartGeoJSON(w http.ResponseWriter, r *http.Request) {
	res, ok := h.calculate(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	if err := report.WriteGeoJSON(w, res); err != nil {
		h.Logger.Warn("http.encode_failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}
}

// calculate decodes the request and runs the chart. On failure it has
// already written the response.
func (h *Handler) calculate(w http.ResponseWriter, r *http.Request) (*astrocarto.Result, bool) {
	if !h.allow(w, r, http.MethodPost) {
		return nil, false
	}

	var req ChartRequest

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "invalid json body", "")
		return nil, false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		h.writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object", "")
		return nil, false
	}

	var res *astrocarto.Result
	birth, err := req.BirthData()
	if err == nil {
		res, err = h.Charter.Calculate(birth)
	}
	switch {
	case err == nil:
		return res, true
	case errors.Is(err, astrocarto.ErrInvalidInput):
		h.writeError(w, r, http.StatusBadRequest, err.Error(), astrocarto.FieldOf(err))
	case errors.Is(err, astrocarto.ErrReferenceDataUnavailable):
		h.Logger.Error("chart.reference_data", "err", err)
		h.writeError(w, r, http.StatusServiceUnavailable, "reference data unavailable", "")
	default:
		h.Logger.Error("chart.failed", "err", err)
		h.writeError(w, r, http.StatusInternalServerError, "internal server error", "")
	}
	return nil, false
}

// Cities searches the gazetteer.
func (h *Handler) Cities(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r, http.MethodGet) {
		return
	}

	q := strings.TrimSpace(r.URL.Query().Get("q"))
	limit := gazetteer.DefaultSearchLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > MaxSearchLimit {
			h.writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 50", "limit")
			return
		}
		limit = n
	}

	res := CitiesResponse{Query: q, Cities: []CityResponse{}}
	if h.Searcher == nil {
		h.writeError(w, r, http.StatusServiceUnavailable, "reference data unavailable", "")
		return
	}
	for _, c := range h.Searcher.Search(q, limit) {
		res.Cities = append(res.Cities, CityResponse{
			Name:     c.Name,
			Country:  c.Country,
			Label:    c.Label(),
			Lat:      c.Lat,
			Lon:      c.Lon,
			Timezone: c.TZ,
			Pop:      c.Pop,
		})
	}
	h.writeJSON(w, r, http.StatusOK, res)
}
