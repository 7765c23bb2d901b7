package gazetteer

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

//go:embed data/cities.json
var embeddedCities []byte

// DecodeJSON reads a JSON array of cities.
func DecodeJSON(r io.Reader) ([]City, error) {
	var cities []City
	if err := json.NewDecoder(r).Decode(&cities); err != nil {
		return nil, fmt.Errorf("decode cities: %w", err)
	}
	return cities, nil
}

// EmbeddedSource serves the city table compiled into the binary.
type EmbeddedSource struct{}

// Name implements Source.
func (EmbeddedSource) Name() string { return "embedded" }

// Load implements Source.
func (EmbeddedSource) Load(ctx context.Context) ([]City, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var cities []City
	if err := json.Unmarshal(embeddedCities, &cities); err != nil {
		return nil, fmt.Errorf("decode embedded cities: %w", err)
	}
	return cities, nil
}

// FileSource reads a JSON city table from disk.
type FileSource struct {
	Path string
}

// Name implements Source.
func (s FileSource) Name() string { return "file:" + s.Path }

// Load implements Source.
func (s FileSource) Load(ctx context.Context) ([]City, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open city file: %w", err)
	}
	defer f.Close()
	return DecodeJSON(f)
}
