package path

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// PartsFromPoints converts a sampled world-space polyline into parts. Each
// consecutive pair of points becomes one part: planar distance as length,
// the heading change normalized to (-pi, pi] as start angle and the z delta
// as rise. origin is the first point of the traversal; BuildChain output
// is relative to it. A polyline whose first point repeats at the end stays
// closed. Coincident points yield a zero-length part that keeps the heading.
func PartsFromPoints(pts []v3.Vec, reverse bool) (parts []PartSpec, origin v3.Vec) {
	if len(pts) == 0 {
		return nil, v3.Vec{}
	}
	if reverse {
		r := make([]v3.Vec, len(pts))
		for i, p := range pts {
			r[len(pts)-1-i] = p
		}
		pts = r
	}
	origin = pts[0]
	parts = make([]PartSpec, 0, len(pts)-1)
	var heading float64
	for i := 1; i < len(pts); i++ {
		d := pts[i].Sub(pts[i-1])
		planar := v2.Vec{X: d.X, Y: d.Y}
		length := planar.Length()
		var da float64
		if length > 0 {
			da = NormalizeAngle(Heading(planar) - heading)
			heading += da
		}
		parts = append(parts, PartSpec{Length: length, StartAngle: da, ElevationDelta: d.Z})
	}
	return parts, origin
}

// NormalizeAngle maps a into (-pi, pi].
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a > math.Pi {
		a -= 2 * math.Pi
	} else if a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
