package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/litescript/ls-astromap/internal/astrocarto"
	"github.com/litescript/ls-astromap/internal/gazetteer"
	"github.com/litescript/ls-astromap/internal/logging"
	"github.com/litescript/ls-astromap/internal/report"
	"github.com/litescript/ls-astromap/internal/version"
)

const baliBody = `{"date":"2024-03-20","time":"12:00","location":{"name":"Bali","lat":-8.34,"lon":115.09,"timezone":""}}`

func newTestRouter(t *testing.T) (http.Handler, *bytes.Buffer) {
	t.Helper()
	cat, err := gazetteer.Open(t.Context(), gazetteer.EmbeddedSource{})
	if err != nil {
		t.Fatalf("open gazetteer: %v", err)
	}
	var buf bytes.Buffer
	log := logging.NewWithFormat(logging.LevelInfo, logging.FormatText, &buf)
	return NewRouter(astrocarto.NewEngine(cat), cat, log), &buf
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var e errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&e); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return e
}

func TestHealth(t *testing.T) {
	h, logs := newTestRouter(t)

	rec := do(h, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" || body["version"] != version.Version {
		t.Errorf("body = %v", body)
	}
	if !strings.Contains(logs.String(), "http.request") || !strings.Contains(logs.String(), "status=200") {
		t.Errorf("request not logged: %q", logs.String())
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h, _ := newTestRouter(t)

	tests := []struct {
		method, path, allow string
	}{
		{http.MethodPost, "/health", http.MethodGet},
		{http.MethodGet, "/v1/chart", http.MethodPost},
		{http.MethodGet, "/v1/chart.geojson", http.MethodPost},
		{http.MethodDelete, "/v1/cities", http.MethodGet},
	}
	for _, tt := range tests {
		rec := do(h, tt.method, tt.path, "")
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s %s status = %d", tt.method, tt.path, rec.Code)
		}
		if got := rec.Header().Get("Allow"); got != tt.allow {
			t.Errorf("%s %s Allow = %q, want %q", tt.method, tt.path, got, tt.allow)
		}
	}
}

func TestChart(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(h, http.MethodPost, "/v1/chart", baliBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var got report.ChartExport
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.JulianDate != 2460390.0 {
		t.Errorf("JulianDate = %v", got.JulianDate)
	}
	if got.Birth.Timezone != "UTC+8" || got.Birth.Place != "Bali" {
		t.Errorf("Birth = %+v", got.Birth)
	}
	if len(got.Positions) != 7 || len(got.Lines) != 14 {
		t.Errorf("positions = %d lines = %d", len(got.Positions), len(got.Lines))
	}
	if n := len(got.Recommendations); n < 3 || n > 6 {
		t.Errorf("recommendations = %d, want 3..6", n)
	}
}

func TestChartGeoJSON(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(h, http.MethodPost, "/v1/chart.geojson", baliBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/geo+json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&fc); err != nil {
		t.Fatal(err)
	}
	if fc.Type != "FeatureCollection" {
		t.Errorf("type = %q", fc.Type)
	}
	lines := 0
	for _, f := range fc.Features {
		if f.Properties["kind"] == report.KindLine {
			lines++
		}
	}
	if lines != 14 {
		t.Errorf("line features = %d, want 14", lines)
	}
}

func TestChart_BadRequests(t *testing.T) {
	h, _ := newTestRouter(t)

	tests := []struct {
		name      string
		body      string
		wantField string
		wantMsg   string
	}{
		{"malformed", `{"date":`, "", "invalid json body"},
		{"unknown field", `{"date":"2024-03-20","zodiac":"tropical"}`, "", "invalid json body"},
		{"two objects", baliBody + baliBody, "", "only one JSON object"},
		{"bad date", `{"date":"2024-13-40","time":"12:00","location":{"name":"X","lat":0,"lon":0}}`, "date", "invalid_input"},
		{"bad time", `{"date":"2024-03-20","time":"noon","location":{"name":"X","lat":0,"lon":0}}`, "time", "invalid_input"},
		{"empty name", `{"date":"2024-03-20","time":"12:00","location":{"name":" ","lat":0,"lon":0}}`, "location.name", "invalid_input"},
		{"lat", `{"date":"2024-03-20","time":"12:00","location":{"name":"X","lat":91,"lon":0}}`, "location.lat", "invalid_input"},
		{"lon", `{"date":"2024-03-20","time":"12:00","location":{"name":"X","lat":0,"lon":-181}}`, "location.lon", "invalid_input"},
		{"missing coordinates", `{"date":"2024-03-20","time":"12:00","location":{"name":"Bali"}}`, "location.lat", "invalid_input"},
		{"missing lon", `{"date":"2024-03-20","time":"12:00","location":{"name":"Bali","lat":-8.34}}`, "location.lon", "invalid_input"},
		{"null lat", `{"date":"2024-03-20","time":"12:00","location":{"name":"Bali","lat":null,"lon":115.09}}`, "location.lat", "invalid_input"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(h, http.MethodPost, "/v1/chart", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			e := decodeError(t, rec)
			if e.Field != tt.wantField {
				t.Errorf("field = %q, want %q", e.Field, tt.wantField)
			}
			if !strings.Contains(e.Error, tt.wantMsg) {
				t.Errorf("error = %q, want substring %q", e.Error, tt.wantMsg)
			}
		})
	}
}

type stubCharter struct{ err error }

func (s stubCharter) Calculate(astrocarto.BirthData) (*astrocarto.Result, error) {
	return nil, s.err
}

func TestChart_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"reference data", &astrocarto.Error{Op: "calculate", Kind: astrocarto.KindReferenceDataUnavailable}, http.StatusServiceUnavailable},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewRouter(stubCharter{err: tt.err}, nil, nil)
			rec := do(h, http.MethodPost, "/v1/chart", baliBody)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			if e := decodeError(t, rec); strings.Contains(e.Error, "boom") {
				t.Errorf("internal error leaked: %q", e.Error)
			}
		})
	}
}

func TestChart_EmptyGazetteer(t *testing.T) {
	h := NewRouter(astrocarto.NewEngine(gazetteer.NewCatalog(nil)), nil, nil)
	rec := do(h, http.MethodPost, "/v1/chart", baliBody)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestCities(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(h, http.MethodGet, "/v1/cities?q=par&limit=3", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got CitiesResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Query != "par" {
		t.Errorf("Query = %q", got.Query)
	}
	if len(got.Cities) == 0 || len(got.Cities) > 3 {
		t.Fatalf("cities = %d, want 1..3", len(got.Cities))
	}
	for _, c := range got.Cities {
		if !strings.Contains(strings.ToLower(c.Label), "par") {
			t.Errorf("%q does not match query", c.Label)
		}
	}
}

func TestCities_Limit(t *testing.T) {
	h, _ := newTestRouter(t)

	for _, limit := range []string{"0", "51", "-1", "ten"} {
		rec := do(h, http.MethodGet, "/v1/cities?q=a&limit="+limit, "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("limit=%s status = %d, want 400", limit, rec.Code)
			continue
		}
		if e := decodeError(t, rec); e.Field != "limit" {
			t.Errorf("limit=%s field = %q", limit, e.Field)
		}
	}

	rec := do(h, http.MethodGet, "/v1/cities?q=a", "")
	var got CitiesResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if len(got.Cities) > gazetteer.DefaultSearchLimit {
		t.Errorf("default limit: got %d cities", len(got.Cities))
	}
}

func TestCities_NoSearcher(t *testing.T) {
	h := NewRouter(stubCharter{}, nil, nil)
	if rec := do(h, http.MethodGet, "/v1/cities?q=x", ""); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestStatusWriter_ImplicitOK(t *testing.T) {
	rec := httptest.NewRecorder()
	sw := &statusWriter{ResponseWriter: rec}
	n, err := sw.Write([]byte("hello"))
	if err != nil || n != 5 {
		t.Fatalf("Write = %d, %v", n, err)
	}
	if sw.status != http.StatusOK || sw.bytes != 5 {
		t.Errorf("status = %d bytes = %d", sw.status, sw.bytes)
	}
}

func TestNewServer(t *testing.T) {
	srv := NewServer(":0", http.NotFoundHandler())
	if srv.ReadHeaderTimeout == 0 || srv.WriteTimeout == 0 || srv.Addr != ":0" {
		t.Errorf("server = %+v", srv)
	}
}
