// Package curve samples poly and bezier splines into world-space points,
// the input PartsFromPoints turns into molding parts.
package curve

import (
	"errors"
	"fmt"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

var (
	// ErrTooFewPoints is returned for splines with fewer than two knots.
	ErrTooFewPoints = errors.New("curve: spline needs at least 2 points")
	// ErrResolution is returned for a negative bezier resolution.
	ErrResolution = errors.New("curve: resolution must not be negative")
)

// alignEpsilon bounds the handle deviation under which a bezier span is
// treated as straight.
const alignEpsilon = 1e-6

// Kind is the spline type.
type Kind int

const (
	Poly Kind = iota
	Bezier
)

func (k Kind) String() string {
	switch k {
	case Poly:
		return "poly"
	case Bezier:
		return "bezier"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Knot is a spline control point. Handles are only used by Bezier splines.
type Knot struct {
	Point       v3.Vec
	HandleLeft  v3.Vec
	HandleRight v3.Vec
}

// PolyKnot returns a knot whose handles sit on the point.
func PolyKnot(p v3.Vec) Knot {
	return Knot{Point: p, HandleLeft: p, HandleRight: p}
}

// Spline is a sequence of knots, optionally cyclic.
type Spline struct {
	Kind   Kind
	Knots  []Knot
	Cyclic bool
	// Transform maps local knots to world space; nil is the identity.
	Transform *sdf.M44
}

// Sample returns world-space points along the spline. Poly knots are
// returned as they are. Each bezier span emits its start point when its
// handles are aligned with the chord, and resolution evenly spaced samples
// otherwise; an open spline then ends with its last knot. Cyclic splines
// repeat their first point at the end.
func (s Spline) Sample(resolution int) ([]v3.Vec, error) {
	if len(s.Knots) < 2 {
		return nil, ErrTooFewPoints
	}
	var pts []v3.Vec
	switch s.Kind {
	case Poly:
		pts = make([]v3.Vec, 0, len(s.Knots)+1)
		for _, k := range s.Knots {
			pts = append(pts, s.world(k.Point))
		}
		if s.Cyclic {
			pts = append(pts, pts[0])
		}
	case Bezier:
		if resolution < 0 {
			return nil, ErrResolution
		}
		for i := 1; i < len(s.Knots); i++ {
			pts = s.span(pts, s.Knots[i-1], s.Knots[i], resolution)
		}
		if s.Cyclic {
			pts = s.span(pts, s.Knots[len(s.Knots)-1], s.Knots[0], resolution)
			pts = append(pts, pts[0])
		} else {
			pts = append(pts, s.world(s.Knots[len(s.Knots)-1].Point))
		}
	default:
		return nil, fmt.Errorf("curve: unknown spline kind %v", s.Kind)
	}
	return pts, nil
}

func (s Spline) world(p v3.Vec) v3.Vec {
	if s.Transform == nil {
		return p
	}
	return s.Transform.MulPosition(p)
}

// span appends the samples of the bezier span k0 -> k1, excluding k1.
func (s Spline) span(pts []v3.Vec, k0, k1 Knot, resolution int) []v3.Vec {
	if resolution == 0 || straight(k0, k1) {
		return append(pts, s.world(k0.Point))
	}
	p0, p1, p2, p3 := k0.Point, k0.HandleRight, k1.HandleLeft, k1.Point
	for i := 0; i < resolution; i++ {
		t := float64(i) / float64(resolution)
		pts = append(pts, s.world(cubic(p0, p1, p2, p3, t)))
	}
	return pts
}

func straight(k0, k1 Knot) bool {
	v := unit(k1.Point.Sub(k0.Point))
	d1 := unit(k0.HandleRight.Sub(k0.Point))
	d2 := unit(k1.Point.Sub(k1.HandleLeft))
	return v.Sub(d1).Length() < alignEpsilon && v.Sub(d2).Length() < alignEpsilon
}

func unit(v v3.Vec) v3.Vec {
	l := v.Length()
	if l == 0 {
		return v3.Vec{}
	}
	return v.MulScalar(1 / l)
}

func cubic(p0, p1, p2, p3 v3.Vec, t float64) v3.Vec {
	u := 1 - t
	a := u * u * u
	b := 3 * u * u * t
	c := 3 * u * t * t
	d := t * t * t
	return p0.MulScalar(a).Add(p1.MulScalar(b)).Add(p2.MulScalar(c)).Add(p3.MulScalar(d))
}
