package kernel

import (
	"fmt"
	"math"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// boundaryEpsilon absorbs floating point noise when deciding whether a point
// lies on a ring edge (about 1 cm at the equator).
const boundaryEpsilon = 1e-9

var ErrRingIsNotConstructed = errs.NewValueIsRequiredError("ring must be created via NewRing")

// Ring is a simple closed polygon ring of GeoJSON [lng, lat] vertices.
// Holes and multi-polygons are not supported.
//
// Boundary rule: a point lying exactly on an edge or a vertex is inside.
type Ring struct { //nolint:recvcheck //using for validation
	vertices []Point
	guard    guard.ConstructorGuard
}

// NewRing builds a ring from at least three distinct vertices. A ring that is
// not explicitly closed (first != last) is closed implicitly.
func NewRing(vertices []Point) (Ring, error) {
	for i, v := range vertices {
		if err := v.Validate(); err != nil {
			return Ring{}, fmt.Errorf("vertex %d: %w", i, err)
		}
	}

	open := vertices
	if len(open) > 1 && open[0].IsEqual(open[len(open)-1]) {
		open = open[:len(open)-1]
	}
	if len(open) < 3 {
		return Ring{}, errs.NewValueIsInvalidErrorWithCause(
			"ring", fmt.Errorf("need at least 3 distinct vertices, got %d", len(open)))
	}

	closed := make([]Point, 0, len(open)+1)
	closed = append(closed, open...)
	closed = append(closed, open[0])

	return Ring{vertices: closed, guard: guard.NewConstructorGuard()}, nil
}

// RingFromPairs builds a ring from GeoJSON coordinates such as
// [[36.7,-1.4],[36.9,-1.4],[36.9,-1.2],[36.7,-1.2],[36.7,-1.4]].
func RingFromPairs(pairs [][]float64) (Ring, error) {
	points := make([]Point, 0, len(pairs))
	for i, pair := range pairs {
		p, err := PointFromPair(pair)
		if err != nil {
			return Ring{}, fmt.Errorf("vertex %d: %w", i, err)
		}
		points = append(points, p)
	}
	return NewRing(points)
}

func (r Ring) Validate() error {
	return r.guard.Validate(ErrRingIsNotConstructed)
}

// Vertices returns the closed vertex list (first vertex repeated at the end).
func (r Ring) Vertices() []Point {
	out := make([]Point, len(r.vertices))
	copy(out, r.vertices)
	return out
}

// Pairs returns the closed ring as GeoJSON coordinates.
func (r Ring) Pairs() [][]float64 {
	out := make([][]float64, 0, len(r.vertices))
	for _, v := range r.vertices {
		out = append(out, v.Pair())
	}
	return out
}

// Contains reports whether p lies inside the ring or on its boundary.
// The answer is a pure function of its inputs, so repeated calls agree.
func (r Ring) Contains(p Point) bool {
	if r.Validate() != nil || p.Validate() != nil {
		return false
	}

	for i := 0; i+1 < len(r.vertices); i++ {
		if onSegment(p, r.vertices[i], r.vertices[i+1]) {
			return true
		}
	}

	// Ray casting on the closed ring.
	inside := false
	lng, lat := p.lng, p.lat
	for i, j := 0, len(r.vertices)-2; i < len(r.vertices)-1; j, i = i, i+1 {
		xi, yi := r.vertices[i].lng, r.vertices[i].lat
		xj, yj := r.vertices[j].lng, r.vertices[j].lat

		intersect := ((yi > lat) != (yj > lat)) &&
			(lng < (xj-xi)*(lat-yi)/(yj-yi)+xi)
		if intersect {
			inside = !inside
		}
	}

	return inside
}

func onSegment(p, a, b Point) bool {
	cross := (b.lng-a.lng)*(p.lat-a.lat) - (b.lat-a.lat)*(p.lng-a.lng)
	if math.Abs(cross) > boundaryEpsilon {
		return false
	}
	return p.lng >= math.Min(a.lng, b.lng)-boundaryEpsilon &&
		p.lng <= math.Max(a.lng, b.lng)+boundaryEpsilon &&
		p.lat >= math.Min(a.lat, b.lat)-boundaryEpsilon &&
		p.lat <= math.Max(a.lat, b.lat)+boundaryEpsilon
}
