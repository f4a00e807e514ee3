package path

import (
	"fmt"
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// SegmentKind tags the segment variants a chain may hold.
type SegmentKind int

const (
	KindStraight SegmentKind = iota // straight line
	KindArc                         // circular arc (reserved, no constructor yet)
)

func (k SegmentKind) String() string {
	switch k {
	case KindStraight:
		return "straight"
	case KindArc:
		return "arc"
	default:
		return fmt.Sprintf("SegmentKind(%d)", int(k))
	}
}

// Segment is a directed path element. Section building and sweeping only
// rely on this interface.
type Segment interface {
	Kind() SegmentKind
	// Origin is the start point.
	Origin() v2.Vec
	// End is the end point.
	End() v2.Vec
	// Length is the path length of the segment.
	Length() float64
	// StartDirection is the unit tangent at the start.
	StartDirection() v2.Vec
	// EndDirection is the unit tangent at the end.
	EndDirection() v2.Vec
	// Offset returns the segment translated laterally by d along its left normal.
	Offset(d float64) Segment
}

// Straight is a straight segment. The length of V is the segment length.
type Straight struct {
	P v2.Vec // origin
	V v2.Vec // direction, not normalized
}

// Compile-time interface check.
var _ Segment = Straight{}

// NewStraight returns a straight segment from p along v.
func NewStraight(p, v v2.Vec) Straight {
	return Straight{P: p, V: v}
}

func (s Straight) Kind() SegmentKind { return KindStraight }
func (s Straight) Origin() v2.Vec    { return s.P }
func (s Straight) End() v2.Vec       { return s.P.Add(s.V) }
func (s Straight) Length() float64   { return s.V.Length() }

// Direction returns the unscaled direction vector.
func (s Straight) Direction() v2.Vec { return s.V }

func (s Straight) StartDirection() v2.Vec { return Unit(s.V) }
func (s Straight) EndDirection() v2.Vec   { return Unit(s.V) }

// Offset translates the segment along its left normal. Degenerate segments
// have no normal and are returned unchanged.
func (s Straight) Offset(d float64) Segment {
	n := LeftNormal(Unit(s.V))
	return Straight{P: s.P.Add(n.MulScalar(d)), V: s.V}
}

// Lerp returns the point at parameter t, 0 at the origin and 1 at the end.
func (s Straight) Lerp(t float64) v2.Vec {
	return s.P.Add(s.V.MulScalar(t))
}

// Intersect returns the parameter t along s where the infinite lines of s
// and o cross. ok is false for parallel or degenerate lines.
func (s Straight) Intersect(o Straight) (t float64, ok bool) {
	if math.Abs(Unit(s.V).Cross(Unit(o.V))) < parallelEpsilon {
		return 0, false
	}
	return o.P.Sub(s.P).Cross(o.V) / s.V.Cross(o.V), true
}

const parallelEpsilon = 1e-4

func (s Straight) String() string {
	return fmt.Sprintf("straight (%g,%g)->(%g,%g)", s.P.X, s.P.Y, s.End().X, s.End().Y)
}
