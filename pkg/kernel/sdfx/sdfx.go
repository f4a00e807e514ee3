// Package sdfx bridges kernel meshes and the github.com/deadsy/sdfx
// triangle types, which gives molding output access to sdfx's STL writer.
package sdfx

import (
	"fmt"
	"math"

	"github.com/chazu/molding/pkg/kernel"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// ToTriangles expands an indexed mesh into sdfx triangles.
func ToTriangles(m *kernel.Mesh) []*sdf.Triangle3 {
	tris := make([]*sdf.Triangle3, 0, m.TriangleCount())
	for t := 0; t+2 < len(m.Indices); t += 3 {
		var tri sdf.Triangle3
		for j := 0; j < 3; j++ {
			tri[j] = vertex(m, m.Indices[t+j])
		}
		tris = append(tris, &tri)
	}
	return tris
}

func vertex(m *kernel.Mesh, i uint32) v3.Vec {
	o := int(i) * 3
	return v3.Vec{
		X: float64(m.Vertices[o]),
		Y: float64(m.Vertices[o+1]),
		Z: float64(m.Vertices[o+2]),
	}
}

// SaveSTL writes the mesh as a binary STL file.
func SaveSTL(path string, m *kernel.Mesh) error {
	if m == nil || m.TriangleCount() == 0 {
		return fmt.Errorf("sdfx: save %s: mesh has no triangles", path)
	}
	if err := render.SaveSTL(path, ToTriangles(m)); err != nil {
		return fmt.Errorf("sdfx: save %s: %w", path, err)
	}
	return nil
}

// BoundingBox returns the axis-aligned bounds of the mesh vertices. An
// empty mesh yields the zero box.
func BoundingBox(m *kernel.Mesh) sdf.Box3 {
	if m.VertexCount() == 0 {
		return sdf.Box3{}
	}
	lo := v3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	hi := v3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for i := 0; i < m.VertexCount(); i++ {
		v := vertex(m, uint32(i))
		lo = lo.Min(v)
		hi = hi.Max(v)
	}
	return sdf.Box3{Min: lo, Max: hi}
}
