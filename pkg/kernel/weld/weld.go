// Package weld implements kernel.Builder: it merges coincident face
// corners, triangulates faces and computes smooth vertex normals.
package weld

import (
	"fmt"
	"math"

	"github.com/chazu/molding/pkg/kernel"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// DefaultEpsilon is the weld grid size used when Builder.Epsilon is unset.
const DefaultEpsilon = 1e-5

// Compile-time interface check.
var _ kernel.Builder = (*Builder)(nil)

// Builder welds corners that agree in position and uv to within Epsilon.
// Corners on a uv seam stay split.
type Builder struct {
	Epsilon float64
}

// New returns a Builder with the given weld epsilon.
func New(epsilon float64) *Builder {
	return &Builder{Epsilon: epsilon}
}

type key [5]int64

type welder struct {
	eps     float64
	index   map[key]uint32
	pos     []v3.Vec
	uv      []v2.Vec
	normals []v3.Vec
}

func (w *welder) quantize(f float64) int64 {
	return int64(math.Round(f / w.eps))
}

func (w *welder) add(p v3.Vec, uv v2.Vec) uint32 {
	k := key{w.quantize(p.X), w.quantize(p.Y), w.quantize(p.Z), w.quantize(uv.X), w.quantize(uv.Y)}
	if i, ok := w.index[k]; ok {
		return i
	}
	i := uint32(len(w.pos))
	w.index[k] = i
	w.pos = append(w.pos, p)
	w.uv = append(w.uv, uv)
	w.normals = append(w.normals, v3.Vec{})
	return i
}

// Build converts buffers into a triangle mesh. Invalid buffers are
// rejected; degenerate triangles are dropped.
func (b *Builder) Build(buf *kernel.MeshBuffers) (*kernel.Mesh, error) {
	if err := buf.Validate(); err != nil {
		return nil, fmt.Errorf("weld: %w", err)
	}
	eps := b.Epsilon
	if eps <= 0 {
		eps = DefaultEpsilon
	}
	w := &welder{eps: eps, index: make(map[key]uint32)}

	var indices []uint32
	var materials []int
	corners := make([]uint32, 0, 8)
	pts := make([]v3.Vec, 0, 8)
	for fi, face := range buf.Faces {
		corners, pts = corners[:0], pts[:0]
		for ci, vi := range face {
			corners = append(corners, w.add(buf.Vertices[vi], buf.UVs[fi][ci]))
			pts = append(pts, buf.Vertices[vi])
		}
		for _, t := range triangulate(pts) {
			a, c, d := corners[t[0]], corners[t[1]], corners[t[2]]
			if a == c || c == d || a == d {
				continue
			}
			n := w.pos[c].Sub(w.pos[a]).Cross(w.pos[d].Sub(w.pos[a]))
			if n.Length() < eps*eps {
				continue
			}
			// Unnormalized cross product weights by area.
			w.normals[a] = w.normals[a].Add(n)
			w.normals[c] = w.normals[c].Add(n)
			w.normals[d] = w.normals[d].Add(n)
			indices = append(indices, a, c, d)
			materials = append(materials, buf.MaterialIDs[fi])
		}
	}

	m := &kernel.Mesh{
		Vertices:    make([]float32, 0, len(w.pos)*3),
		Normals:     make([]float32, 0, len(w.pos)*3),
		UVs:         make([]float32, 0, len(w.uv)*2),
		Indices:     indices,
		MaterialIDs: materials,
	}
	for i, p := range w.pos {
		n := w.normals[i]
		if l := n.Length(); l > 0 {
			n = n.MulScalar(1 / l)
		}
		m.Vertices = append(m.Vertices, float32(p.X), float32(p.Y), float32(p.Z))
		m.Normals = append(m.Normals, float32(n.X), float32(n.Y), float32(n.Z))
		m.UVs = append(m.UVs, float32(w.uv[i].X), float32(w.uv[i].Y))
	}
	return m, nil
}
