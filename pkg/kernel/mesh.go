package kernel

// Mesh is a triangle mesh suitable for rendering.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z),
// normals has 3 floats per vertex, uvs has 2 floats per vertex,
// indices has 3 uint32s per triangle.
type Mesh struct {
	Vertices    []float32 `json:"vertices"`    // [x0,y0,z0, x1,y1,z1, ...]
	Normals     []float32 `json:"normals"`     // [nx0,ny0,nz0, ...]
	UVs         []float32 `json:"uvs"`         // [u0,v0, u1,v1, ...]
	Indices     []uint32  `json:"indices"`     // [i0,i1,i2, ...] triangles
	MaterialIDs []int     `json:"materialIds"` // one per triangle
	PartName    string    `json:"partName"`    // which molding this came from
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Translate shifts every vertex by (x, y, z).
func (m *Mesh) Translate(x, y, z float32) {
	for i := 0; i+2 < len(m.Vertices); i += 3 {
		m.Vertices[i] += x
		m.Vertices[i+1] += y
		m.Vertices[i+2] += z
	}
}
