package profile

import (
	"math"
	"testing"

	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"SQUARE", Square, false},
		{"circle", Circle, false},
		{" Complex ", Complex, false},
		{"ogee", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, mustRoundTrip(t, got))
		})
	}
}

func mustRoundTrip(t *testing.T, k Kind) Kind {
	t.Helper()
	b, err := k.MarshalText()
	require.NoError(t, err)
	var out Kind
	require.NoError(t, out.UnmarshalText(b))
	return out
}

func TestSquarePoints(t *testing.T) {
	pts := Spec{Kind: Square, Width: 0.02, Height: 0.1}.Points()
	assert.Equal(t, []v2.Vec{{X: 0, Y: 0.1}, {X: 0, Y: 0}, {X: 0.02, Y: 0}, {X: 0.02, Y: 0.1}}, pts)
}

func TestCirclePoints(t *testing.T) {
	s := Spec{Kind: Circle, Width: 0.04, Height: 0.1, Radius: 0.02}
	pts := s.Points()
	require.Len(t, pts, 3+arcSteps+1)
	// The arc starts below the top-right corner and ends left of it.
	assert.InDelta(t, 0.04, pts[3].X, 1e-12)
	assert.InDelta(t, 0.08, pts[3].Y, 1e-12)
	last := pts[len(pts)-1]
	assert.InDelta(t, 0.02, last.X, 1e-12)
	assert.InDelta(t, 0.1, last.Y, 1e-12)
	for _, p := range pts[3:] {
		d := p.Sub(v2.Vec{X: 0.02, Y: 0.08}).Length()
		assert.InDelta(t, 0.02, d, 1e-12)
	}
	assert.False(t, s.RadiusClamped())
}

func TestCircleRadiusClamped(t *testing.T) {
	s := Spec{Kind: Circle, Width: 0.02, Height: 0.1, Radius: 0.5}
	assert.True(t, s.RadiusClamped())
	assert.Equal(t, 0.02, s.EffectiveRadius())
	for _, p := range s.Points() {
		assert.GreaterOrEqual(t, p.X, -1e-12)
		assert.False(t, math.IsNaN(p.Y))
	}
}

func TestComplexPoints(t *testing.T) {
	s := Spec{Kind: Complex, Width: 2, Height: 1}
	pts := s.Points()
	require.Len(t, pts, 35)
	assert.Equal(t, v2.Vec{X: -1, Y: 0}, pts[14])
	assert.Equal(t, v2.Vec{X: 1, Y: 0}, pts[15])
}

func TestBounds(t *testing.T) {
	tests := []struct {
		name  string
		spec  Spec
		w, h  float64
		minX  float64
	}{
		{"square", Spec{Kind: Square, Width: 0.02, Height: 0.1}, 0.02, 0.1, 0},
		{"circle", Spec{Kind: Circle, Width: 0.05, Height: 0.1, Radius: 0.01}, 0.05, 0.1, 0},
		{"complex", Spec{Kind: Complex, Width: 0.1, Height: 0.1}, 0.1, 0.1915, -0.05},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, _ := tt.spec.Bounds()
			w, h := tt.spec.Size()
			assert.InDelta(t, tt.w, w, 1e-9)
			assert.InDelta(t, tt.h, h, 1e-9)
			assert.InDelta(t, tt.minX, lo.X, 1e-9)
		})
	}
}

func TestDefault(t *testing.T) {
	d := Default()
	assert.Equal(t, Square, d.Kind)
	assert.Equal(t, DefaultWidth, d.Width)
	assert.Equal(t, DefaultHeight, d.Height)
	assert.Equal(t, "SQUARE", d.Kind.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}
