// Package kernel defines the mesh types exchanged between the molding
// generator and the mesh builders that consume its output. The generator
// appends raw buffers (MeshBuffers); a Builder turns those buffers into a
// render-ready triangle Mesh. The abstraction allows swapping builders
// without changing the rest of the system.
package kernel

// Builder converts raw sweep buffers into a triangle mesh. Implementations
// own welding and cleanup; the generator never deduplicates vertices.
type Builder interface {
	Build(b *MeshBuffers) (*Mesh, error)
}
