package kernel_test

import (
	"testing"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPoint(t *testing.T, lng, lat float64) kernel.Point {
	t.Helper()
	p, err := kernel.NewPoint(lng, lat)
	require.NoError(t, err)
	return p
}

func squareRing(t *testing.T) kernel.Ring {
	t.Helper()
	ring, err := kernel.RingFromPairs([][]float64{
		{36.70, -1.40}, {36.90, -1.40}, {36.90, -1.20}, {36.70, -1.20}, {36.70, -1.40},
	})
	require.NoError(t, err)
	return ring
}

func TestNewPoint(t *testing.T) {
	t.Run("should keep GeoJSON order", func(t *testing.T) {
		p := mustPoint(t, 36.8219, -1.2921)

		assert.InDelta(t, 36.8219, p.Lng(), 1e-12)
		assert.InDelta(t, -1.2921, p.Lat(), 1e-12)
		assert.Equal(t, []float64{36.8219, -1.2921}, p.Pair())
	})

	t.Run("should reject out of range values", func(t *testing.T) {
		testCases := []struct {
			name     string
			lng, lat float64
			param    string
		}{
			{"longitude too small", -180.5, 0, "lng"},
			{"longitude too large", 181, 0, "lng"},
			{"latitude too small", 0, -91, "lat"},
			{"latitude too large", 0, 90.01, "lat"},
		}
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := kernel.NewPoint(tc.lng, tc.lat)

				require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
				assert.Contains(t, err.Error(), tc.param)
			})
		}
	})

	t.Run("should reject pairs of wrong length", func(t *testing.T) {
		_, err := kernel.PointFromPair([]float64{1})
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value is invalid", func(t *testing.T) {
		var p kernel.Point
		require.ErrorIs(t, p.Validate(), kernel.ErrPointIsNotConstructed)
	})
}

func TestPoint_DistanceKm(t *testing.T) {
	t.Run("should be zero for the same point", func(t *testing.T) {
		p := mustPoint(t, 36.8, -1.3)

		d, err := p.DistanceKm(p)

		require.NoError(t, err)
		assert.InDelta(t, 0, d, 1e-9)
	})

	t.Run("one degree of longitude at the equator", func(t *testing.T) {
		a := mustPoint(t, 0, 0)
		b := mustPoint(t, 1, 0)

		d, err := a.DistanceKm(b)

		require.NoError(t, err)
		assert.InDelta(t, 111.19, d, 0.01)
		assert.InDelta(t, 111.19, kernel.RoundKm(d), 1e-9)
	})

	t.Run("should be symmetric", func(t *testing.T) {
		a := mustPoint(t, 36.8, -1.3)
		b := mustPoint(t, 36.9, -1.25)

		ab, _ := a.DistanceKm(b)
		ba, _ := b.DistanceKm(a)

		assert.InDelta(t, ab, ba, 1e-12)
	})

	t.Run("should fail for zero value point", func(t *testing.T) {
		_, err := mustPoint(t, 0, 0).DistanceKm(kernel.Point{})
		require.Error(t, err)
	})
}

func TestRoundKm(t *testing.T) {
	assert.InDelta(t, 1.23, kernel.RoundKm(1.2349), 1e-12)
	assert.InDelta(t, 1.24, kernel.RoundKm(1.2351), 1e-12)
}

func TestRing_Contains(t *testing.T) {
	ring := squareRing(t)

	t.Run("interior point", func(t *testing.T) {
		assert.True(t, ring.Contains(mustPoint(t, 36.80, -1.30)))
	})

	t.Run("exterior point", func(t *testing.T) {
		assert.False(t, ring.Contains(mustPoint(t, 37.00, -1.30)))
		assert.False(t, ring.Contains(mustPoint(t, 36.80, -1.50)))
	})

	t.Run("points on the boundary are inside", func(t *testing.T) {
		boundary := []kernel.Point{
			mustPoint(t, 36.80, -1.40), // bottom edge
			mustPoint(t, 36.90, -1.30), // right edge
			mustPoint(t, 36.80, -1.20), // top edge
			mustPoint(t, 36.70, -1.30), // left edge
			mustPoint(t, 36.70, -1.40), // vertex
			mustPoint(t, 36.90, -1.20), // vertex
		}
		for _, p := range boundary {
			for range 3 {
				assert.True(t, ring.Contains(p), "boundary point %s must be inside", p)
			}
		}
	})

	t.Run("concave ring", func(t *testing.T) {
		// U shape opening to the north.
		u, err := kernel.RingFromPairs([][]float64{
			{0, 0}, {3, 0}, {3, 3}, {2, 3}, {2, 1}, {1, 1}, {1, 3}, {0, 3},
		})
		require.NoError(t, err)

		assert.True(t, u.Contains(mustPoint(t, 0.5, 2)))
		assert.True(t, u.Contains(mustPoint(t, 2.5, 2)))
		assert.False(t, u.Contains(mustPoint(t, 1.5, 2)))
	})

	t.Run("zero value ring contains nothing", func(t *testing.T) {
		var r kernel.Ring
		assert.False(t, r.Contains(mustPoint(t, 36.8, -1.3)))
	})
}

func TestNewRing(t *testing.T) {
	t.Run("should close an open ring", func(t *testing.T) {
		ring, err := kernel.RingFromPairs([][]float64{{0, 0}, {1, 0}, {1, 1}})

		require.NoError(t, err)
		pairs := ring.Pairs()
		require.Len(t, pairs, 4)
		assert.Equal(t, pairs[0], pairs[3])
	})

	t.Run("should reject degenerate rings", func(t *testing.T) {
		_, err := kernel.RingFromPairs([][]float64{{0, 0}, {1, 0}, {0, 0}})
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject invalid vertices", func(t *testing.T) {
		_, err := kernel.RingFromPairs([][]float64{{0, 0}, {200, 0}, {1, 1}})
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestMoney_ShareFromBasisPointFraction(t *testing.T) {
	bp, err := kernel.BasisPointsFromFraction(0.8)
	require.NoError(t, err)
	assert.Equal(t, kernel.BasisPoints(8000), bp)

	assert.Equal(t, kernel.Money(160), kernel.Money(200).Share(bp))
	assert.Equal(t, kernel.Money(120), kernel.Money(150).Share(bp))
	// 5.6 rounds to 6
	assert.Equal(t, kernel.Money(6), kernel.Money(7).Share(bp))

	_, err = kernel.BasisPointsFromFraction(1.5)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}
