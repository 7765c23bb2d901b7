package gazetteer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const sampleJSON = `[
  {"name": "Bali", "country": "Indonesia", "lat": -8.3405, "lon": 115.092, "pop": 4362000},
  {"name": "Tokyo", "country": "Japan", "lat": 35.6762, "lon": 139.6503, "tz": "Asia/Tokyo", "pop": 13960000}
]`

func TestDecodeJSON(t *testing.T) {
	cities, err := DecodeJSON(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatalf("DecodeJSON() error = %v", err)
	}
	if len(cities) != 2 {
		t.Fatalf("got %d cities, want 2", len(cities))
	}
	if cities[1].TZ != "Asia/Tokyo" || cities[1].Pop != 13960000 {
		t.Errorf("Tokyo = %+v", cities[1])
	}
	if cities[0].TZ != "" {
		t.Errorf("Bali tz = %q, want empty", cities[0].TZ)
	}

	if _, err := DecodeJSON(strings.NewReader(`{"name": "not an array"}`)); err == nil {
		t.Error("DecodeJSON on an object should fail")
	}
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cities.json")
	if err := os.WriteFile(path, []byte(sampleJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	cat, err := Open(context.Background(), FileSource{Path: path})
	if err != nil {
		t.Fatalf("Open(file) error = %v", err)
	}
	if cat.Len() != 2 {
		t.Errorf("Len() = %d, want 2", cat.Len())
	}
	if !strings.HasPrefix(cat.Source(), "file:") {
		t.Errorf("Source() = %q", cat.Source())
	}

	if _, err := Open(context.Background(), FileSource{Path: filepath.Join(t.TempDir(), "missing.json")}); err == nil {
		t.Error("Open on a missing file should fail")
	}
}

func TestHTTPSource(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		switch r.URL.Path {
		case "/cities.json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(sampleJSON))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL+"/cities.json", WithTimeout(5*time.Second))
	cat, err := Open(context.Background(), src)
	if err != nil {
		t.Fatalf("Open(http) error = %v", err)
	}
	if cat.Len() != 2 {
		t.Errorf("Len() = %d, want 2", cat.Len())
	}
	if !strings.HasPrefix(gotUA, "ls-astromap/") {
		t.Errorf("User-Agent = %q", gotUA)
	}

	missing := NewHTTPSource(srv.URL+"/nope.json", WithHTTPClient(srv.Client()))
	if _, err := Open(context.Background(), missing); err == nil || !strings.Contains(err.Error(), "404") {
		t.Errorf("Open on 404 error = %v, want status error", err)
	}
}

func TestSQLSource_SQLite(t *testing.T) {
	db, err := OpenDB(DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("OpenDB() error = %v", err)
	}
	defer db.Close()

	stmts := []string{
		`CREATE TABLE cities (id INTEGER PRIMARY KEY, name TEXT NOT NULL, country TEXT NOT NULL,
			lat REAL NOT NULL, lon REAL NOT NULL, tz TEXT, pop INTEGER)`,
		`INSERT INTO cities (id, name, country, lat, lon, tz, pop) VALUES
			(2, 'Tokyo', 'Japan', 35.6762, 139.6503, 'Asia/Tokyo', 13960000),
			(1, 'Lima', 'Peru', -12.0464, -77.0428, NULL, NULL)`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			t.Fatalf("exec %q: %v", s, err)
		}
	}

	cat, err := Open(context.Background(), &SQLSource{DB: db, OrderBy: "id"})
	if err != nil {
		t.Fatalf("Open(sql) error = %v", err)
	}
	all := cat.All()
	if len(all) != 2 {
		t.Fatalf("got %d cities, want 2", len(all))
	}
	if all[0].Name != "Lima" || all[0].TZ != "" || all[0].Pop != 0 {
		t.Errorf("first row = %+v, want Lima with empty tz and pop", all[0])
	}
	if all[1].Name != "Tokyo" || all[1].Pop != 13960000 {
		t.Errorf("second row = %+v", all[1])
	}
}

func TestSQLSource_Errors(t *testing.T) {
	if _, err := (&SQLSource{}).Load(context.Background()); err == nil {
		t.Error("Load with nil DB should fail")
	}

	db, err := OpenDB(DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("OpenDB() error = %v", err)
	}
	defer db.Close()

	if _, err := (&SQLSource{DB: db, Table: "cities; DROP TABLE x"}).Load(context.Background()); err == nil {
		t.Error("Load with an unsafe table name should fail")
	}
	if _, err := (&SQLSource{DB: db, Table: "missing"}).Load(context.Background()); err == nil {
		t.Error("Load from a missing table should fail")
	}
}

func TestOpenDB_UnsupportedDriver(t *testing.T) {
	if _, err := OpenDB("mysql", "dsn"); err == nil {
		t.Error("OpenDB(mysql) should fail")
	}
}

func TestS3Config_Validate(t *testing.T) {
	full := S3Config{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "s", Bucket: "geo", Key: "cities.json"}
	if err := full.Validate(); err != nil {
		t.Errorf("Validate() on full config = %v", err)
	}

	partial := full
	partial.Bucket = ""
	partial.SecretKey = ""
	err := partial.Validate()
	if err == nil {
		t.Fatal("Validate() on partial config should fail")
	}
	if !strings.Contains(err.Error(), "bucket") || !strings.Contains(err.Error(), "secret key") {
		t.Errorf("Validate() error = %v, want both missing fields named", err)
	}

	if _, err := NewS3Source(partial); err == nil {
		t.Error("NewS3Source on partial config should fail")
	}
}

func TestNewS3Source_Name(t *testing.T) {
	src, err := NewS3Source(S3Config{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "s", Bucket: "geo", Key: "cities.json"})
	if err != nil {
		t.Fatalf("NewS3Source() error = %v", err)
	}
	if src.Name() != "s3://geo/cities.json" {
		t.Errorf("Name() = %q", src.Name())
	}
}
