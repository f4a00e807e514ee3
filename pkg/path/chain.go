package path

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// PartSpec is one user-entered path element.
type PartSpec struct {
	Length         float64 `yaml:"length" json:"length"`
	StartAngle     float64 `yaml:"start_angle" json:"startAngle"` // radians, turn relative to the previous heading
	ElevationDelta float64 `yaml:"dz" json:"dz"`                  // rise over the segment
}

// Element is one entry of a chain: the centerline segment, its offset line
// and the elevation it starts at.
type Element struct {
	Segment Segment `json:"-"`
	Line    Segment `json:"-"` // offset line, equal to Segment until ApplyOffset
	Z0      float64 `json:"z0"`
	DZ      float64 `json:"dz"`
}

// Chain is an ordered list of elements; each element starts where the
// previous one ends.
type Chain []Element

// BuildChain converts parts into a chain. The first segment starts at the
// origin with heading StartAngle; every following segment turns by its own
// StartAngle relative to the previous heading. The heading is carried as an
// angle so a zero-length part does not lose it. BuildChain never fails.
func BuildChain(parts []PartSpec) Chain {
	chain := make(Chain, 0, len(parts))
	var p v2.Vec
	var heading, z float64
	for _, part := range parts {
		heading += part.StartAngle
		s, c := math.Sincos(heading)
		seg := NewStraight(p, v2.Vec{X: c * part.Length, Y: s * part.Length})
		chain = append(chain, Element{Segment: seg, Line: seg, Z0: z, DZ: part.ElevationDelta})
		p = seg.End()
		z += part.ElevationDelta
	}
	return chain
}

// Points returns the polyline through the centerline: the first origin
// followed by every segment end.
func (c Chain) Points() []v2.Vec {
	if len(c) == 0 {
		return nil
	}
	pts := make([]v2.Vec, 0, len(c)+1)
	pts = append(pts, c[0].Segment.Origin())
	for _, e := range c {
		pts = append(pts, e.Segment.End())
	}
	return pts
}

// Length returns the summed centerline length.
func (c Chain) Length() float64 {
	var l float64
	for _, e := range c {
		l += e.Segment.Length()
	}
	return l
}

// NonZero returns the number of segments with a positive offset-line length.
func (c Chain) NonZero() int {
	n := 0
	for _, e := range c {
		if e.Line.Length() > 0 {
			n++
		}
	}
	return n
}

// Closed reports whether the last offset line ends within tol of the
// first offset line's origin.
func (c Chain) Closed(tol float64) bool {
	if len(c) == 0 {
		return false
	}
	first := c[0].Line.Origin()
	last := c[len(c)-1].Line.End()
	return first.Sub(last).Length() < tol
}
