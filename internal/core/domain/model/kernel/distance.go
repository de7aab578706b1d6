package kernel

import (
	"errors"
	"math"
)

// EarthRadiusKm is the mean Earth radius used for great-circle distance.
const EarthRadiusKm = 6371.0

// HaversineDistance returns the great-circle distance between two locations
// in kilometers, computed with the haversine formula. The metric is symmetric,
// zero for identical points, and respects the triangle inequality.
//
// Both locations must be properly constructed.
func HaversineDistance(from Location, to Location) (float64, error) {
	if err := errors.Join(from.Validate(), to.Validate()); err != nil {
		return 0, err
	}

	dlat := radians(to.latitude - from.latitude)
	dlon := radians(to.longitude - from.longitude)

	sinLat := math.Sin(dlat / 2)
	sinLon := math.Sin(dlon / 2)

	a := sinLat*sinLat +
		math.Cos(radians(from.latitude))*math.Cos(radians(to.latitude))*sinLon*sinLon

	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a)), nil
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
