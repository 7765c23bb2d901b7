// Package config loads runtime settings from astromap.yaml, the environment
// and a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/litescript/ls-astromap/internal/ephem"
	"github.com/litescript/ls-astromap/internal/logging"
	"github.com/litescript/ls-astromap/internal/match"
)

// DefaultFile is read from the working directory when no path is given.
const DefaultFile = "astromap.yaml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "ASTROMAP_"

// Config holds all runtime settings.
type Config struct {
	LogLevel  string
	LogFormat string
	Ephemeris string
	Gazetteer GazetteerConfig
	Server    ServerConfig
	Match     match.Config
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: string(logging.FormatText),
		Ephemeris: ephem.ModeLinear.String(),
		Gazetteer: GazetteerConfig{Spec: "embedded"},
		Server:    ServerConfig{Addr: ":8080"},
		Match:     match.DefaultConfig(),
	}
}

// Load builds a Config from defaults, then the YAML file at path, then the
// environment. A .env file in the working directory is loaded into the
// environment first without overriding variables already set. An empty
// path means DefaultFile, which may be absent.
func Load(path string) (Config, error) {
	cfg := Default()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := applyYAML(&cfg, b); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// optional
	default:
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Validate reports settings that cannot work.
func (c Config) Validate() error {
	if _, err := ephem.ParseMode(c.Ephemeris); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := logging.ParseFormat(c.LogFormat); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := c.Gazetteer.Kind(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	m := c.Match
	if !positive(m.RadiusKm) || m.MaxLines <= 0 || m.PerLine <= 0 || m.MaxResults <= 0 {
		return errors.New("config: match radius_km, max_lines, per_line and max_results must be positive")
	}
	if !positive(m.ScaleKm) {
		return errors.New("config: match scale_km must be positive")
	}
	if !unitInterval(m.FloorStrength) || !unitInterval(m.FallbackStrength) {
		return errors.New("config: match floor_strength and fallback_strength must be within [0, 1]")
	}
	return nil
}

// positive reports whether v is a finite number above zero.
func positive(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

func unitInterval(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 1
}

type yamlConfig struct {
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`

	Ephemeris string `yaml:"ephemeris"`

	Gazetteer struct {
		Source  string `yaml:"source"`
		Table   string `yaml:"table"`
		OrderBy string `yaml:"order_by"`
		S3      struct {
			Endpoint  string `yaml:"endpoint"`
			AccessKey string `yaml:"access_key"`
			SecretKey string `yaml:"secret_key"`
			UseSSL    *bool  `yaml:"use_ssl"`
		} `yaml:"s3"`
	} `yaml:"gazetteer"`

	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`

	Match struct {
		MaxLines         *int     `yaml:"max_lines"`
		RadiusKm         *float64 `yaml:"radius_km"`
		PerLine          *int     `yaml:"per_line"`
		MinResults       *int     `yaml:"min_results"`
		MaxResults       *int     `yaml:"max_results"`
		FloorStrength    *float64 `yaml:"floor_strength"`
		ScaleKm          *float64 `yaml:"scale_km"`
		FallbackStrength *float64 `yaml:"fallback_strength"`
	} `yaml:"match"`
}

func applyYAML(cfg *Config, b []byte) error {
	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return err
	}

	// Apply parsed values on top of defaults.
	setString(&cfg.LogLevel, y.Log.Level)
	setString(&cfg.LogFormat, y.Log.Format)
	setString(&cfg.Ephemeris, y.Ephemeris)
	setString(&cfg.Gazetteer.Spec, y.Gazetteer.Source)
	setString(&cfg.Gazetteer.Table, y.Gazetteer.Table)
	setString(&cfg.Gazetteer.OrderBy, y.Gazetteer.OrderBy)
	setString(&cfg.Gazetteer.S3.Endpoint, y.Gazetteer.S3.Endpoint)
	setString(&cfg.Gazetteer.S3.AccessKey, y.Gazetteer.S3.AccessKey)
	setString(&cfg.Gazetteer.S3.SecretKey, y.Gazetteer.S3.SecretKey)
	if y.Gazetteer.S3.UseSSL != nil {
		cfg.Gazetteer.S3.UseSSL = *y.Gazetteer.S3.UseSSL
	}
	setString(&cfg.Server.Addr, y.Server.Addr)

	m := &cfg.Match
	setPtr(&m.MaxLines, y.Match.MaxLines)
	setPtr(&m.RadiusKm, y.Match.RadiusKm)
	setPtr(&m.PerLine, y.Match.PerLine)
	setPtr(&m.MinResults, y.Match.MinResults)
	setPtr(&m.MaxResults, y.Match.MaxResults)
	setPtr(&m.FloorStrength, y.Match.FloorStrength)
	setPtr(&m.ScaleKm, y.Match.ScaleKm)
	setPtr(&m.FallbackStrength, y.Match.FallbackStrength)
	return nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(EnvPrefix + key)
		if !ok || strings.TrimSpace(v) == "" {
			return "", false
		}
		return strings.TrimSpace(v), true
	}

	strs := []struct {
		key string
		dst *string
	}{
		{"LOG_LEVEL", &cfg.LogLevel},
		{"LOG_FORMAT", &cfg.LogFormat},
		{"EPHEM", &cfg.Ephemeris},
		{"GAZETTEER", &cfg.Gazetteer.Spec},
		{"GAZETTEER_TABLE", &cfg.Gazetteer.Table},
		{"ADDR", &cfg.Server.Addr},
		{"S3_ENDPOINT", &cfg.Gazetteer.S3.Endpoint},
		{"S3_ACCESS_KEY", &cfg.Gazetteer.S3.AccessKey},
		{"S3_SECRET_KEY", &cfg.Gazetteer.S3.SecretKey},
	}
	for _, s := range strs {
		if v, ok := get(s.key); ok {
			*s.dst = v
		}
	}

	if v, ok := get("S3_USE_SSL"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sS3_USE_SSL: %w", EnvPrefix, err)
		}
		cfg.Gazetteer.S3.UseSSL = b
	}
	if v, ok := get("RADIUS_KM"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%sRADIUS_KM: %w", EnvPrefix, err)
		}
		cfg.Match.RadiusKm = f
	}
	return nil
}

func setString(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func setPtr[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
