package kernel

import (
	"errors"
	"testing"

	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// --- Mesh helper method tests ---

func TestMeshVertexCount(t *testing.T) {
	tests := []struct {
		name     string
		vertices []float32
		want     int
	}{
		{"empty", nil, 0},
		{"one vertex", []float32{1, 2, 3}, 1},
		{"four vertices", []float32{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Mesh{Vertices: tt.vertices}
			if got := m.VertexCount(); got != tt.want {
				t.Errorf("VertexCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMeshTriangleCount(t *testing.T) {
	tests := []struct {
		name    string
		indices []uint32
		want    int
	}{
		{"empty", nil, 0},
		{"one triangle", []uint32{0, 1, 2}, 1},
		{"two triangles", []uint32{0, 1, 2, 2, 3, 0}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Mesh{Indices: tt.indices}
			if got := m.TriangleCount(); got != tt.want {
				t.Errorf("TriangleCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMeshIsEmpty(t *testing.T) {
	t.Run("empty mesh", func(t *testing.T) {
		m := &Mesh{}
		if !m.IsEmpty() {
			t.Error("IsEmpty() = false for empty mesh, want true")
		}
	})
	t.Run("non-empty mesh", func(t *testing.T) {
		m := &Mesh{Vertices: []float32{1, 2, 3}}
		if m.IsEmpty() {
			t.Error("IsEmpty() = true for non-empty mesh, want false")
		}
	})
}

func TestMeshTranslate(t *testing.T) {
	m := &Mesh{Vertices: []float32{0, 0, 0, 1, 2, 3}}
	m.Translate(1, -1, 2)
	want := []float32{1, -1, 2, 2, 1, 5}
	for i := range want {
		if m.Vertices[i] != want[i] {
			t.Fatalf("Vertices = %v, want %v", m.Vertices, want)
		}
	}
}

// --- MeshBuffers ---

func quadBuffers() *MeshBuffers {
	b := NewMeshBuffers()
	b.Vertices = []v3.Vec{{X: 0}, {X: 1}, {X: 1, Y: 1}, {Y: 1}}
	b.AddFace([]int{0, 1, 2, 3}, 7, []v2.Vec{{}, {X: 1}, {X: 1, Y: 1}, {Y: 1}})
	return b
}

func TestMeshBuffersValidate(t *testing.T) {
	b := quadBuffers()
	if err := b.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
	if b.FaceCount() != 1 || b.VertexCount() != 4 {
		t.Errorf("counts = %d faces %d vertices, want 1 and 4", b.FaceCount(), b.VertexCount())
	}
}

func TestMeshBuffersValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(b *MeshBuffers)
		want   error
	}{
		{
			name:   "missing material id",
			mutate: func(b *MeshBuffers) { b.MaterialIDs = nil },
			want:   ErrMisaligned,
		},
		{
			name:   "uv arity",
			mutate: func(b *MeshBuffers) { b.UVs[0] = b.UVs[0][:3] },
			want:   ErrMisaligned,
		},
		{
			name:   "index out of range",
			mutate: func(b *MeshBuffers) { b.Faces[0][2] = 9 },
			want:   ErrIndexOutOfRange,
		},
		{
			name: "two corner face",
			mutate: func(b *MeshBuffers) {
				b.Faces[0] = []int{0, 1}
				b.UVs[0] = b.UVs[0][:2]
			},
			want: ErrDegenerateFace,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := quadBuffers()
			tt.mutate(b)
			if err := b.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

// --- Compile-time interface check with a stub builder ---

// stubBuilder is a minimal Builder implementation that proves the interface
// is satisfiable.
type stubBuilder struct{}

func (stubBuilder) Build(_ *MeshBuffers) (*Mesh, error) {
	return &Mesh{}, nil
}

var _ Builder = stubBuilder{}

func TestStubBuilder(t *testing.T) {
	var b Builder = stubBuilder{}
	m, err := b.Build(quadBuffers())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if m == nil {
		t.Fatal("Build() returned nil mesh")
	}
	if !m.IsEmpty() {
		t.Error("stub Build() should return empty mesh")
	}
}
