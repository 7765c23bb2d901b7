package astro

import (
	"math"
	"testing"
)

func TestNormalize360(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{45, 45},
		{360, 0},
		{725, 5},
		{-90, 270},
		{-720, 0},
		{8998.5113, 358.5113},
	}

	for _, tt := range tests {
		got := Normalize360(tt.in)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Normalize360(%v) = %v, want %v", tt.in, got, tt.want)
		}
		if got < 0 || got >= 360 {
			t.Errorf("Normalize360(%v) = %v, outside [0, 360)", tt.in, got)
		}
	}
}

func TestNormalize360_TinyNegative(t *testing.T) {
	got := Normalize360(-1e-15)
	if got < 0 || got >= 360 {
		t.Errorf("Normalize360(-1e-15) = %v, outside [0, 360)", got)
	}
}

func TestSignedLongitude(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{90, 90},
		{180, 180},
		{180.5, -179.5},
		{270, -90},
		{359, -1},
	}
	for _, tt := range tests {
		if got := SignedLongitude(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("SignedLongitude(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDegRadRoundTrip(t *testing.T) {
	for _, deg := range []float64{-180, -45.5, 0, 30, 90, 359.9} {
		if got := RadToDeg(DegToRad(deg)); math.Abs(got-deg) > 1e-9 {
			t.Errorf("RadToDeg(DegToRad(%v)) = %v", deg, got)
		}
	}
	if got := DegToRad(180); math.Abs(got-math.Pi) > 1e-12 {
		t.Errorf("DegToRad(180) = %v, want pi", got)
	}
}
