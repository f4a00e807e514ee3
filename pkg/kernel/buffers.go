package kernel

import (
	"errors"
	"fmt"

	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

var (
	// ErrMisaligned indicates the per-face arrays do not share the face count.
	ErrMisaligned = errors.New("mesh buffers: per-face arrays are misaligned")
	// ErrIndexOutOfRange indicates a face references a missing vertex.
	ErrIndexOutOfRange = errors.New("mesh buffers: face index out of range")
	// ErrDegenerateFace indicates a face with fewer than 3 corners.
	ErrDegenerateFace = errors.New("mesh buffers: face has fewer than 3 corners")
)

// MeshBuffers holds raw swept geometry. Faces, MaterialIDs and UVs are
// parallel arrays indexed by face; UVs[i] has one entry per corner of
// Faces[i]. Buffers are append-only and owned by the caller.
type MeshBuffers struct {
	Vertices    []v3.Vec
	Faces       [][]int
	MaterialIDs []int
	UVs         [][]v2.Vec
}

// NewMeshBuffers returns empty buffers.
func NewMeshBuffers() *MeshBuffers {
	return &MeshBuffers{}
}

// VertexCount returns the number of vertices.
func (b *MeshBuffers) VertexCount() int {
	return len(b.Vertices)
}

// FaceCount returns the number of faces.
func (b *MeshBuffers) FaceCount() int {
	return len(b.Faces)
}

// AddFace appends one face with its material and corner uvs.
func (b *MeshBuffers) AddFace(face []int, materialID int, uvs []v2.Vec) {
	b.Faces = append(b.Faces, face)
	b.MaterialIDs = append(b.MaterialIDs, materialID)
	b.UVs = append(b.UVs, uvs)
}

// Validate checks index bounds and the parallel array invariant.
func (b *MeshBuffers) Validate() error {
	if len(b.MaterialIDs) != len(b.Faces) || len(b.UVs) != len(b.Faces) {
		return fmt.Errorf("%w: %d faces, %d material ids, %d uv sets",
			ErrMisaligned, len(b.Faces), len(b.MaterialIDs), len(b.UVs))
	}
	n := len(b.Vertices)
	for i, f := range b.Faces {
		if len(f) < 3 {
			return fmt.Errorf("%w: face %d", ErrDegenerateFace, i)
		}
		if len(b.UVs[i]) != len(f) {
			return fmt.Errorf("%w: face %d has %d corners and %d uvs",
				ErrMisaligned, i, len(f), len(b.UVs[i]))
		}
		for _, idx := range f {
			if idx < 0 || idx >= n {
				return fmt.Errorf("%w: face %d references vertex %d of %d",
					ErrIndexOutOfRange, i, idx, n)
			}
		}
	}
	return nil
}
