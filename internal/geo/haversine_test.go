package geo

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceOneDegreeAtEquator(t *testing.T) {
	d, err := Distance(0, 0, 0, 1)
	require.NoError(t, err)

	// 2πR/360
	assert.InDelta(t, 111.19492664455873, d, 1e-9)
}

func TestDistanceIdenticalPointsIsZero(t *testing.T) {
	points := [][2]float64{{0, 0}, {51.5074, -0.1278}, {-33.8688, 151.2093}, {90, 180}, {-90, -180}}
	for _, p := range points {
		d, err := Distance(p[0], p[1], p[0], p[1])
		require.NoError(t, err)
		assert.Equal(t, 0.0, d, "point %v", p)
	}
}

func TestDistanceIsSymmetric(t *testing.T) {
	pairs := [][4]float64{
		{40.7128, -74.0060, 34.0522, -118.2437},
		{-33.8688, 151.2093, 35.6762, 139.6503},
		{0.1, 0.2, 0.3, -0.4},
		{12.5, 179.9, 12.5, -179.9},
		{89.9, 10, -89.9, -170},
	}
	for _, p := range pairs {
		ab, err := Distance(p[0], p[1], p[2], p[3])
		require.NoError(t, err)
		ba, err := Distance(p[2], p[3], p[0], p[1])
		require.NoError(t, err)
		assert.Equal(t, ab, ba, "pair %v", p)
		assert.Greater(t, ab, 0.0)
	}
}

func TestDistanceAntipodalIsHalfCircumference(t *testing.T) {
	d, err := Distance(0, 0, 0, 180)
	require.NoError(t, err)
	assert.InDelta(t, math.Pi*EarthRadiusKm, d, 1e-6)
	assert.False(t, math.IsNaN(d))
}

func TestDistanceKnownCityPair(t *testing.T) {
	// London -> Paris, ~343.5 km great-circle.
	d, err := Distance(51.5074, -0.1278, 48.8566, 2.3522)
	require.NoError(t, err)
	assert.InDelta(t, 343.5, d, 1.0)
}

func TestDistanceRejectsInvalidCoordinates(t *testing.T) {
	cases := []struct {
		name                   string
		lat1, lng1, lat2, lng2 float64
		field                  string
	}{
		{"lat above range", 95, 0, 0, 0, "lat"},
		{"lat below range", 0, 0, -90.0001, 0, "lat"},
		{"lng above range", 0, 180.5, 0, 0, "lng"},
		{"lng below range", 0, 0, 0, -181, "lng"},
		{"nan lat", math.NaN(), 0, 0, 0, "lat"},
		{"inf lng", 0, math.Inf(1), 0, 0, "lng"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Distance(tc.lat1, tc.lng1, tc.lat2, tc.lng2)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidCoordinate))

			var ce *CoordinateError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tc.field, ce.Field)
		})
	}
}

func TestValidateCoordinateBoundsInclusive(t *testing.T) {
	assert.NoError(t, ValidateCoordinate(90, 180))
	assert.NoError(t, ValidateCoordinate(-90, -180))
	assert.NoError(t, ValidateCoordinate(0, 0))
}
