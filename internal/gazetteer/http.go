package gazetteer

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/litescript/ls-astromap/internal/version"
)

// DefaultHTTPTimeout for gazetteer downloads.
const DefaultHTTPTimeout = 30 * time.Second

// HTTPSource downloads a JSON city table.
type HTTPSource struct {
	client  *http.Client
	url     string
	timeout time.Duration
}

// HTTPOption configures an HTTPSource.
type HTTPOption func(*HTTPSource)

// WithTimeout sets the HTTP request timeout.
func WithTimeout(d time.Duration) HTTPOption {
	return func(s *HTTPSource) {
		s.timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(s *HTTPSource) {
		s.client = client
	}
}

// NewHTTPSource creates a source that fetches url.
func NewHTTPSource(url string, opts ...HTTPOption) *HTTPSource {
	s := &HTTPSource{
		url:     url,
		timeout: DefaultHTTPTimeout,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.client == nil {
		s.client = &http.Client{
			Timeout: s.timeout,
		}
	}

	return s
}

// Name implements Source.
func (s *HTTPSource) Name() string { return s.url }

// Load implements Source.
func (s *HTTPSource) Load(ctx context.Context) ([]City, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", "ls-astromap/"+version.Version)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch cities: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return DecodeJSON(resp.Body)
}
