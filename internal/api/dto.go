package api

import (
	"errors"

	"github.com/litescript/ls-astromap/internal/astrocarto"
)

// ChartRequest is the body of the chart endpoints. Coordinates are pointers
// so a missing value is told apart from zero.
type ChartRequest struct {
	Date     string          `json:"date"`
	Time     string          `json:"time"`
	Location LocationRequest `json:"location"`
}

// LocationRequest is the birth place of a ChartRequest.
type LocationRequest struct {
	Name     string   `json:"name"`
	Lat      *float64 `json:"lat"`
	Lon      *float64 `json:"lon"`
	Timezone string   `json:"timezone"`
}

// BirthData converts the request, rejecting missing coordinates.
func (r ChartRequest) BirthData() (astrocarto.BirthData, error) {
	const op = "api.chart"
	if r.Location.Lat == nil {
		return astrocarto.BirthData{}, &astrocarto.Error{
			Op: op, Kind: astrocarto.KindInvalidInput, Field: "location.lat", Err: errors.New("latitude is required"),
		}
	}
	if r.Location.Lon == nil {
		return astrocarto.BirthData{}, &astrocarto.Error{
			Op: op, Kind: astrocarto.KindInvalidInput, Field: "location.lon", Err: errors.New("longitude is required"),
		}
	}
	return astrocarto.BirthData{
		Date: r.Date,
		Time: r.Time,
		Location: astrocarto.Location{
			Name:     r.Location.Name,
			Lat:      *r.Location.Lat,
			Lon:      *r.Location.Lon,
			Timezone: r.Location.Timezone,
		},
	}, nil
}
