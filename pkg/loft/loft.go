// Package loft sweeps a 2D profile through a sequence of section frames
// and appends the resulting quad strip to mesh buffers.
package loft

import (
	"github.com/chazu/molding/pkg/kernel"
	"github.com/chazu/molding/pkg/section"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Options control topology and placement of a sweep.
type Options struct {
	MaterialID    int
	ClosedProfile bool    // connect the last profile point back to the first
	ClosedPath    bool    // connect the last ring back to the first
	XOffset       float64 // added to every profile x before scaling
	ZOffset       float64 // added to every vertex elevation
	// CapEnds closes both end rings with an n-gon. Only honoured for an
	// open path with a closed profile of at least 3 points.
	CapEnds bool
}

// FaceCount is the number of faces Sweep appends for m frames and k
// profile points.
func FaceCount(m, k int, opts Options) int {
	if m < 2 || k < 2 {
		return 0
	}
	rings := m - 1
	if opts.ClosedPath {
		rings = m
	}
	perRing := k - 1
	if opts.ClosedProfile {
		perRing = k
	}
	n := rings * perRing
	if capped(k, opts) {
		n += 2
	}
	return n
}

func capped(k int, opts Options) bool {
	return opts.CapEnds && opts.ClosedProfile && !opts.ClosedPath && k >= 3
}

// Sweep appends the swept surface to buf and returns the number of faces
// added. Vertices are emitted frame by frame, profile point by profile
// point, and indices are offset by the vertices already in buf. Fewer than
// two frames or two profile points append nothing.
func Sweep(buf *kernel.MeshBuffers, frames []section.Frame, prof []v2.Vec, opts Options) int {
	m, k := len(frames), len(prof)
	if m < 2 || k < 2 {
		return 0
	}
	base := buf.VertexCount()
	for _, f := range frames {
		for _, p := range prof {
			xy := f.At(p.X + opts.XOffset)
			buf.Vertices = append(buf.Vertices, v3.Vec{X: xy.X, Y: xy.Y, Z: f.Elevation + p.Y + opts.ZOffset})
		}
	}

	u := pathDistances(frames)
	v := profileDistances(prof)

	rings := m - 1
	if opts.ClosedPath {
		rings = m
	}
	perRing := k - 1
	if opts.ClosedProfile {
		perRing = k
	}
	added := 0
	for r := 0; r < rings; r++ {
		i0 := base + r*k
		i1 := base + ((r+1)%m)*k
		for j := 0; j < perRing; j++ {
			j1 := (j + 1) % k
			buf.AddFace(
				[]int{i0 + j, i0 + j1, i1 + j1, i1 + j},
				opts.MaterialID,
				[]v2.Vec{
					{X: u[r], Y: v[j]},
					{X: u[r], Y: v[j+1]},
					{X: u[r+1], Y: v[j+1]},
					{X: u[r+1], Y: v[j]},
				},
			)
			added++
		}
	}

	if capped(k, opts) {
		first := make([]int, k)
		last := make([]int, k)
		firstUV := make([]v2.Vec, k)
		lastUV := make([]v2.Vec, k)
		lastBase := base + (m-1)*k
		for j, p := range prof {
			uv := v2.Vec{X: p.X + opts.XOffset, Y: p.Y}
			// The start cap faces backwards along the path.
			first[k-1-j] = base + j
			firstUV[k-1-j] = uv
			last[j] = lastBase + j
			lastUV[j] = uv
		}
		buf.AddFace(first, opts.MaterialID, firstUV)
		buf.AddFace(last, opts.MaterialID, lastUV)
		added += 2
	}
	return added
}

// pathDistances returns the cumulative distance at each frame plus a
// final entry that includes the closing span back to the first frame.
func pathDistances(frames []section.Frame) []float64 {
	m := len(frames)
	u := make([]float64, m+1)
	for i := 1; i < m; i++ {
		u[i] = u[i-1] + frames[i].Position.Sub(frames[i-1].Position).Length()
	}
	u[m] = u[m-1] + frames[0].Position.Sub(frames[m-1].Position).Length()
	return u
}

// profileDistances is pathDistances for profile points.
func profileDistances(prof []v2.Vec) []float64 {
	k := len(prof)
	v := make([]float64, k+1)
	for j := 1; j < k; j++ {
		v[j] = v[j-1] + prof[j].Sub(prof[j-1]).Length()
	}
	v[k] = v[k-1] + prof[0].Sub(prof[k-1]).Length()
	return v
}
