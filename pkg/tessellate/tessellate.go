// Package tessellate turns a design into triangle meshes using a mesh
// builder. One mesh is produced per molding that has geometry.
package tessellate

import (
	"fmt"

	"github.com/chazu/molding/pkg/design"
	"github.com/chazu/molding/pkg/kernel"
	"github.com/chazu/molding/pkg/molding"
)

// Tessellate generates every molding of d in declaration order and builds
// it with b. Meshes are moved to their molding's origin and named after it,
// falling back to the short ID for anonymous moldings. Moldings that sweep
// to nothing are skipped. The design is never mutated.
func Tessellate(d *design.Design, b kernel.Builder, opts ...molding.Option) ([]*kernel.Mesh, error) {
	if d == nil {
		return nil, nil
	}

	var meshes []*kernel.Mesh
	for _, n := range d.Nodes() {
		mesh, err := tessellateNode(n, b, opts)
		if err != nil {
			return nil, fmt.Errorf("tessellate: molding %s: %w", label(n), err)
		}
		if mesh != nil {
			meshes = append(meshes, mesh)
		}
	}
	return meshes, nil
}

func tessellateNode(n *design.Node, b kernel.Builder, opts []molding.Option) (*kernel.Mesh, error) {
	switch n.Kind {
	case design.NodeMolding:
	default:
		return nil, fmt.Errorf("unknown node kind: %v", n.Kind)
	}
	md, ok := n.Data.(design.MoldingData)
	if !ok {
		return nil, fmt.Errorf("unsupported data type %T", n.Data)
	}

	buf := molding.New(md.Params, opts...).Generate()
	if buf.FaceCount() == 0 {
		return nil, nil
	}
	mesh, err := b.Build(buf)
	if err != nil {
		return nil, fmt.Errorf("build failed: %w", err)
	}
	if mesh.IsEmpty() {
		return nil, nil
	}
	o := md.Origin
	if o.X != 0 || o.Y != 0 || o.Z != 0 {
		mesh.Translate(float32(o.X), float32(o.Y), float32(o.Z))
	}
	mesh.PartName = label(n)
	return mesh, nil
}

func label(n *design.Node) string {
	if n.Name != "" {
		return n.Name
	}
	return n.ID.Short()
}
