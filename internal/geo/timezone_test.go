package geo

import (
	"math"
	"testing"
)

func TestDetectTimezone(t *testing.T) {
	tests := []struct {
		name string
		lon  float64
		want string
	}{
		{"Greenwich", 0, "UTC+0"},
		{"London", -0.1278, "UTC+0"},
		{"New York", -74.006, "UTC-5"},
		{"Tokyo", 139.6503, "UTC+9"},
		{"Bali", 115.092, "UTC+8"},
		{"half hour rounds up", -7.5, "UTC+0"},
		{"date line east", 180, "UTC+12"},
		{"date line west", -180, "UTC-12"},
		{"out of range", 200, "UTC"},
		{"NaN", math.NaN(), "UTC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectTimezone(0, tt.lon); got != tt.want {
				t.Errorf("DetectTimezone(0, %v) = %q, want %q", tt.lon, got, tt.want)
			}
		})
	}
}
