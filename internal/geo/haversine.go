// Package geo computes great-circle distances between latitude/longitude
// points using the haversine formula on a spherical Earth.
package geo

import (
	"errors"
	"fmt"
	"math"
)

// EarthRadiusKm is the mean Earth radius used for every distance.
const EarthRadiusKm = 6371.0

// ErrInvalidCoordinate is returned for latitudes outside [-90,90],
// longitudes outside [-180,180], and non-finite values.
var ErrInvalidCoordinate = errors.New("geo: invalid coordinate")

// CoordinateError names the offending component of a coordinate.
type CoordinateError struct {
	Field string // "lat" or "lng"
	Value float64
}

func (e *CoordinateError) Error() string {
	return fmt.Sprintf("geo: invalid coordinate: %s=%v", e.Field, e.Value)
}

func (e *CoordinateError) Unwrap() error { return ErrInvalidCoordinate }

// ValidateCoordinate reports whether lat/lng lie within their valid ranges.
func ValidateCoordinate(lat, lng float64) error {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || lat < -90 || lat > 90 {
		return &CoordinateError{Field: "lat", Value: lat}
	}
	if math.IsNaN(lng) || math.IsInf(lng, 0) || lng < -180 || lng > 180 {
		return &CoordinateError{Field: "lng", Value: lng}
	}
	return nil
}

// Distance returns the great-circle distance in kilometers between
// (lat1,lng1) and (lat2,lng2), both in decimal degrees.
//
// The result is symmetric bit-for-bit and exactly 0 for identical points.
func Distance(lat1, lng1, lat2, lng2 float64) (float64, error) {
	if err := ValidateCoordinate(lat1, lng1); err != nil {
		return 0, err
	}
	if err := ValidateCoordinate(lat2, lng2); err != nil {
		return 0, err
	}

	return haversine(lat1, lng1, lat2, lng2), nil
}

// haversine assumes validated input.
//
// a = sin²(Δφ/2) + cos φ1 ⋅ cos φ2 ⋅ sin²(Δλ/2)
// c = 2 ⋅ atan2(√a, √(1−a))
// d = R ⋅ c
func haversine(lat1, lng1, lat2, lng2 float64) float64 {
	if lat1 == lat2 && lng1 == lng2 {
		return 0
	}
	// Evaluate in a fixed point order so d(a,b) and d(b,a) share every rounding step.
	if lat1 > lat2 || (lat1 == lat2 && lng1 > lng2) {
		lat1, lng1, lat2, lng2 = lat2, lng2, lat1, lng1
	}

	phi1 := toRadians(lat1)
	phi2 := toRadians(lat2)
	dPhi := toRadians(lat2 - lat1)
	dLambda := toRadians(lng2 - lng1)

	sinPhi := math.Sin(dPhi / 2)
	sinLambda := math.Sin(dLambda / 2)
	a := sinPhi*sinPhi + math.Cos(phi1)*math.Cos(phi2)*sinLambda*sinLambda

	// Rounding can push a just past 1 for antipodal points.
	a = math.Min(math.Max(a, 0), 1)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }
