// Package section derives the cross-section frames a profile is swept
// through: one frame per path vertex, mitred at every joint.
package section

import (
	"math"

	"github.com/chazu/molding/pkg/path"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// DefaultTolerance is the endpoint distance under which a chain counts as
// closed.
const DefaultTolerance = 1e-4

// MaxMitreScale caps the width compensation at very sharp turns.
const MaxMitreScale = 10.0

// Frame is a local frame at one path vertex.
type Frame struct {
	Position   v2.Vec  `json:"position"`
	Direction  v2.Vec  `json:"direction"` // unit tangent bisector
	MitreScale float64 `json:"mitreScale"`
	Elevation  float64 `json:"elevation"`
}

// Normal is the right-hand normal of the tangent bisector. It bisects the
// normals of the two segments meeting at the frame and carries profile x.
func (f Frame) Normal() v2.Vec {
	return path.RightNormal(f.Direction)
}

// At returns the plan position of profile abscissa x in this frame.
func (f Frame) At(x float64) v2.Vec {
	return f.Position.Add(f.Normal().MulScalar(f.MitreScale * x))
}

// Options tune Build.
type Options struct {
	// Tolerance is the closure distance; zero means DefaultTolerance.
	Tolerance float64
}

func (o Options) tolerance() float64 {
	if o.Tolerance <= 0 {
		return DefaultTolerance
	}
	return o.Tolerance
}

// IsClosed reports whether the offset lines of chain form a loop within
// tol. A non-positive tol selects DefaultTolerance.
func IsClosed(chain path.Chain, tol float64) bool {
	return chain.Closed(Options{Tolerance: tol}.tolerance())
}

// MitreScale returns min(10, 1/cos(angle/2)) for the angle between unit
// vectors in and out.
func MitreScale(in, out v2.Vec) float64 {
	d := in.Dot(out)
	d = math.Max(-1, math.Min(1, d))
	c := math.Cos(0.5 * math.Acos(d))
	if c <= 1/MaxMitreScale {
		return MaxMitreScale
	}
	return 1 / c
}

// reversalEpsilon is the bisector length under which a joint counts as a
// full reversal and keeps the incoming direction.
const reversalEpsilon = 1e-9

func joint(in, out v2.Vec) (dir v2.Vec, scale float64) {
	sum := in.Add(out)
	if sum.Length() < reversalEpsilon {
		return in, MitreScale(in, out)
	}
	return path.Unit(sum), MitreScale(in, out)
}

// Build returns the frames of an offset chain. Zero-length lines are
// skipped. An open chain of n contributing segments yields n+1 frames; a
// closed one yields n, the first sitting on the wrap joint.
func Build(chain path.Chain, opts Options) []Frame {
	segs := make([]path.Element, 0, len(chain))
	for _, e := range chain {
		if e.Line.Length() > 0 {
			segs = append(segs, e)
		}
	}
	n := len(segs)
	if n == 0 {
		return nil
	}
	closed := IsClosed(chain, opts.tolerance())

	frames := make([]Frame, 0, n+1)
	first, last := segs[0], segs[n-1]
	if closed {
		dir, scale := joint(last.Line.EndDirection(), first.Line.StartDirection())
		frames = append(frames, Frame{
			Position:   last.Line.End(),
			Direction:  dir,
			MitreScale: scale,
			Elevation:  first.Z0,
		})
	} else {
		frames = append(frames, Frame{
			Position:   first.Line.Origin(),
			Direction:  first.Line.StartDirection(),
			MitreScale: 1,
			Elevation:  first.Z0,
		})
	}

	for i, s := range segs {
		if i == n-1 {
			if closed {
				break
			}
			frames = append(frames, Frame{
				Position:   s.Line.End(),
				Direction:  s.Line.EndDirection(),
				MitreScale: 1,
				Elevation:  s.Z0 + s.DZ,
			})
			break
		}
		dir, scale := joint(s.Line.EndDirection(), segs[i+1].Line.StartDirection())
		frames = append(frames, Frame{
			Position:   s.Line.End(),
			Direction:  dir,
			MitreScale: scale,
			Elevation:  s.Z0 + s.DZ,
		})
	}
	return frames
}

// Closed is IsClosed with the tolerance Build would use for opts.
func Closed(chain path.Chain, opts Options) bool {
	return IsClosed(chain, opts.tolerance())
}
