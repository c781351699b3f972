package kernel

import (
	"errors"
	"fmt"
	"math"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	// EarthRadiusKm is the mean Earth radius used by the haversine formula.
	EarthRadiusKm = 6371.0

	MinLongitude = -180.0
	MaxLongitude = 180.0
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
)

// ErrPointIsNotConstructed is returned when a zero-value Point is used.
var ErrPointIsNotConstructed = errs.NewValueIsRequiredError(
	"point must be created via NewPoint or PointFromPair")

// Point is a geographic coordinate in GeoJSON order: longitude first, then latitude.
// Every adapter converts to Point at its boundary, so no [lat, lng] pair travels
// through the domain.
//
// Example:
//
//	nairobi, err := kernel.NewPoint(36.8219, -1.2921)
//	km, _ := nairobi.DistanceKm(other)
type Point struct { //nolint:recvcheck //using for validation
	lng   float64
	lat   float64
	guard guard.ConstructorGuard
}

// NewPoint validates the ranges lng ∈ [-180, 180] and lat ∈ [-90, 90].
// No other plausibility checks are made.
func NewPoint(lng, lat float64) (Point, error) {
	p := Point{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setLng(lng), p.setLat(lat)); err != nil {
		return Point{}, err
	}

	return p, nil
}

// PointFromPair builds a Point from a GeoJSON [lng, lat] pair.
func PointFromPair(pair []float64) (Point, error) {
	if len(pair) != 2 {
		return Point{}, errs.NewValueIsInvalidErrorWithCause(
			"coordinate", fmt.Errorf("expected [lng, lat], got %d values", len(pair)))
	}
	return NewPoint(pair[0], pair[1])
}

// Validate reports whether the point was built through a constructor.
func (p Point) Validate() error {
	return p.guard.Validate(ErrPointIsNotConstructed)
}

func (p Point) Lng() float64 {
	return p.lng
}

func (p Point) Lat() float64 {
	return p.lat
}

// Pair returns the GeoJSON [lng, lat] representation.
func (p Point) Pair() []float64 {
	return []float64{p.lng, p.lat}
}

func (p Point) String() string {
	return fmt.Sprintf("Point(%g, %g)", p.lng, p.lat)
}

// IsEqual compares coordinates exactly.
func (p Point) IsEqual(other Point) bool {
	return p.lng == other.lng && p.lat == other.lat
}

// DistanceKm returns the haversine great-circle distance in kilometres at full
// precision. Ranking uses this value; use RoundKm only for display.
func (p Point) DistanceKm(other Point) (float64, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return 0, err
	}
	return Haversine(p.lng, p.lat, other.lng, other.lat), nil
}

// Haversine computes the distance in kilometres between two (lng, lat) pairs.
func Haversine(lng1, lat1, lng2, lat2 float64) float64 {
	const degToRad = math.Pi / 180
	dLat := (lat2 - lat1) * degToRad
	dLng := (lng2 - lng1) * degToRad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*degToRad)*math.Cos(lat2*degToRad)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

// RoundKm rounds a distance to two decimal places for display.
func RoundKm(km float64) float64 {
	return math.Round(km*100) / 100
}

func (p *Point) setLng(lng float64) error {
	if math.IsNaN(lng) || lng < MinLongitude || lng > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("lng", lng, MinLongitude, MaxLongitude)
	}
	p.lng = lng
	return nil
}

func (p *Point) setLat(lat float64) error {
	if math.IsNaN(lat) || lat < MinLatitude || lat > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("lat", lat, MinLatitude, MaxLatitude)
	}
	p.lat = lat
	return nil
}
