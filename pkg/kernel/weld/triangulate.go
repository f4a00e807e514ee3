package weld

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// triangulate splits a planar polygon into triangles given as corner
// indices in polygon order, so every triangle keeps the face winding.
// Convex polygons are fanned from corner 0; concave ones are ear-clipped
// in the plane of their Newell normal.
func triangulate(pts []v3.Vec) [][3]int {
	n := len(pts)
	if n < 3 {
		return nil
	}
	proj, sign := project(pts)
	if sign == 0 || convex(proj, sign) {
		return fan(n)
	}
	return earClip(proj, sign)
}

func fan(n int) [][3]int {
	tris := make([][3]int, 0, n-2)
	for j := 1; j+1 < n; j++ {
		tris = append(tris, [3]int{0, j, j + 1})
	}
	return tris
}

// project drops the dominant axis of the polygon normal. sign is the
// orientation of the projected polygon: 1 counter-clockwise, -1 clockwise,
// 0 when the polygon has no area.
func project(pts []v3.Vec) ([]v2.Vec, float64) {
	var nx, ny, nz float64
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		nx += (p.Y - q.Y) * (p.Z + q.Z)
		ny += (p.Z - q.Z) * (p.X + q.X)
		nz += (p.X - q.X) * (p.Y + q.Y)
	}
	ax, ay, az := math.Abs(nx), math.Abs(ny), math.Abs(nz)
	proj := make([]v2.Vec, len(pts))
	var s float64
	switch {
	case ax >= ay && ax >= az:
		for i, p := range pts {
			proj[i] = v2.Vec{X: p.Y, Y: p.Z}
		}
		s = nx
	case ay >= az:
		for i, p := range pts {
			proj[i] = v2.Vec{X: p.Z, Y: p.X}
		}
		s = ny
	default:
		for i, p := range pts {
			proj[i] = v2.Vec{X: p.X, Y: p.Y}
		}
		s = nz
	}
	switch {
	case s > 0:
		return proj, 1
	case s < 0:
		return proj, -1
	}
	return proj, 0
}

func turn(a, b, c v2.Vec) float64 {
	return b.Sub(a).Cross(c.Sub(b))
}

func convex(proj []v2.Vec, sign float64) bool {
	n := len(proj)
	for i := range proj {
		if sign*turn(proj[(i+n-1)%n], proj[i], proj[(i+1)%n]) < 0 {
			return false
		}
	}
	return true
}

// earClip triangulates a simple polygon. If no ear can be found, which
// only happens for self-intersecting input, the remainder is fanned.
func earClip(proj []v2.Vec, sign float64) [][3]int {
	n := len(proj)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	lo, hi := proj[0], proj[0]
	for _, p := range proj {
		lo, hi = lo.Min(p), hi.Max(p)
	}
	size := hi.Sub(lo)
	flat := 1e-12 * (size.X*size.X + size.Y*size.Y)

	tris := make([][3]int, 0, n-2)
	for len(idx) > 3 {
		found := false
		for i := range idx {
			m := len(idx)
			a, b, c := idx[(i+m-1)%m], idx[i], idx[(i+1)%m]
			t := sign * turn(proj[a], proj[b], proj[c])
			if math.Abs(t) <= flat {
				// Collinear corner: dropping it loses no area.
				idx = append(idx[:i], idx[i+1:]...)
				found = true
				break
			}
			if t < 0 || blocked(proj, idx, a, b, c, sign) {
				continue
			}
			tris = append(tris, [3]int{a, b, c})
			idx = append(idx[:i], idx[i+1:]...)
			found = true
			break
		}
		if !found {
			for j := 1; j+1 < len(idx); j++ {
				tris = append(tris, [3]int{idx[0], idx[j], idx[j+1]})
			}
			return tris
		}
	}
	if len(idx) == 3 {
		tris = append(tris, [3]int{idx[0], idx[1], idx[2]})
	}
	return tris
}

// blocked reports whether a remaining corner lies inside or on triangle
// abc, which makes b unusable as an ear.
func blocked(proj []v2.Vec, idx []int, a, b, c int, sign float64) bool {
	pa, pb, pc := proj[a], proj[b], proj[c]
	for _, j := range idx {
		if j == a || j == b || j == c {
			continue
		}
		p := proj[j]
		if p == pa || p == pb || p == pc {
			continue
		}
		if sign*turn(pa, pb, p) >= 0 && sign*turn(pb, pc, p) >= 0 && sign*turn(pc, pa, p) >= 0 {
			return true
		}
	}
	return false
}
