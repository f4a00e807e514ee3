package curve

import (
	"testing"

	"github.com/chazu/molding/pkg/path"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func squareKnots() []Knot {
	return []Knot{
		PolyKnot(v3.Vec{X: 0, Y: 0}),
		PolyKnot(v3.Vec{X: 2, Y: 0}),
		PolyKnot(v3.Vec{X: 2, Y: 2}),
		PolyKnot(v3.Vec{X: 0, Y: 2}),
	}
}

func TestSamplePoly(t *testing.T) {
	open, err := Spline{Kind: Poly, Knots: squareKnots()}.Sample(12)
	require.NoError(t, err)
	assert.Len(t, open, 4)

	closed, err := Spline{Kind: Poly, Knots: squareKnots(), Cyclic: true}.Sample(12)
	require.NoError(t, err)
	require.Len(t, closed, 5)
	assert.Equal(t, closed[0], closed[4])
}

func TestSampleCyclicSquareRoundTrip(t *testing.T) {
	pts, err := Spline{Kind: Poly, Knots: squareKnots(), Cyclic: true}.Sample(0)
	require.NoError(t, err)
	parts, _ := path.PartsFromPoints(pts, false)
	require.Len(t, parts, 4)
	chain := path.BuildChain(parts)
	assert.True(t, chain.Closed(1e-4))
	for _, p := range parts {
		assert.InDelta(t, 2, p.Length, 1e-9)
	}
}

func TestSampleBezierStraightSpans(t *testing.T) {
	// Handles on the chord collapse each span to one point.
	knots := []Knot{
		{Point: v3.Vec{}, HandleRight: v3.Vec{X: 1}},
		{Point: v3.Vec{X: 3}, HandleLeft: v3.Vec{X: 2}, HandleRight: v3.Vec{X: 4}},
		{Point: v3.Vec{X: 6}, HandleLeft: v3.Vec{X: 5}},
	}
	pts, err := Spline{Kind: Bezier, Knots: knots}.Sample(10)
	require.NoError(t, err)
	assert.Equal(t, []v3.Vec{{}, {X: 3}, {X: 6}}, pts)
}

func TestSampleBezierCurved(t *testing.T) {
	knots := []Knot{
		{Point: v3.Vec{}, HandleRight: v3.Vec{Y: 1}},
		{Point: v3.Vec{X: 2}, HandleLeft: v3.Vec{X: 2, Y: 1}},
	}
	pts, err := Spline{Kind: Bezier, Knots: knots}.Sample(4)
	require.NoError(t, err)
	require.Len(t, pts, 5)
	assert.Equal(t, v3.Vec{}, pts[0])
	assert.Equal(t, v3.Vec{X: 2}, pts[4])
	// Midpoint of a symmetric arch.
	assert.InDelta(t, 1, pts[2].X, 1e-12)
	assert.InDelta(t, 0.75, pts[2].Y, 1e-12)
}

func TestSampleBezierCyclic(t *testing.T) {
	knots := []Knot{
		{Point: v3.Vec{}, HandleLeft: v3.Vec{X: -1, Y: -1}, HandleRight: v3.Vec{X: 1, Y: -1}},
		{Point: v3.Vec{X: 2, Y: 2}, HandleLeft: v3.Vec{X: 3, Y: 1}, HandleRight: v3.Vec{X: 1, Y: 3}},
	}
	pts, err := Spline{Kind: Bezier, Knots: knots, Cyclic: true}.Sample(3)
	require.NoError(t, err)
	require.Len(t, pts, 7)
	assert.Equal(t, pts[0], pts[6])
}

func TestSampleResolutionZero(t *testing.T) {
	knots := []Knot{
		{Point: v3.Vec{}, HandleRight: v3.Vec{Y: 1}},
		{Point: v3.Vec{X: 2}, HandleLeft: v3.Vec{X: 2, Y: 1}},
	}
	pts, err := Spline{Kind: Bezier, Knots: knots}.Sample(0)
	require.NoError(t, err)
	assert.Equal(t, []v3.Vec{{}, {X: 2}}, pts)
}

func TestSampleErrors(t *testing.T) {
	tests := []struct {
		name string
		s    Spline
		res  int
		want error
	}{
		{"no knots", Spline{Kind: Poly}, 1, ErrTooFewPoints},
		{"one knot", Spline{Kind: Bezier, Knots: squareKnots()[:1]}, 1, ErrTooFewPoints},
		{"negative resolution", Spline{Kind: Bezier, Knots: squareKnots()}, -1, ErrResolution},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.s.Sample(tt.res)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	_, err := Spline{Kind: Kind(7), Knots: squareKnots()}.Sample(1)
	assert.Error(t, err)
}

func TestSampleTransform(t *testing.T) {
	m := sdf.Translate3d(v3.Vec{X: 10, Y: 0, Z: 1})
	pts, err := Spline{Kind: Poly, Knots: squareKnots(), Transform: &m}.Sample(0)
	require.NoError(t, err)
	assert.InDelta(t, 10, pts[0].X, 1e-12)
	assert.InDelta(t, 1, pts[2].Z, 1e-12)
	assert.InDelta(t, 12, pts[2].X, 1e-12)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "poly", Poly.String())
	assert.Equal(t, "bezier", Bezier.String())
	assert.Equal(t, "Kind(7)", Kind(7).String())
}
