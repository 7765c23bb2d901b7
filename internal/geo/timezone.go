package geo

import (
	"fmt"
	"math"
)

// DetectTimezone guesses a nautical timezone label ("UTC+8", "UTC-5",
// "UTC+0") from longitude alone, one hour per 15°. Half hours round up.
// Latitude is accepted for callers that have it and is currently ignored.
func DetectTimezone(lat, lon float64) string {
	_ = lat
	if math.IsNaN(lon) {
		return "UTC"
	}
	offset := int(math.Floor(lon/15 + 0.5))
	if offset < -12 || offset > 12 {
		return "UTC"
	}
	if offset >= 0 {
		return fmt.Sprintf("UTC+%d", offset)
	}
	return fmt.Sprintf("UTC%d", offset)
}
