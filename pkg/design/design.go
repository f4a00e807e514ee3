package design

import (
	"fmt"

	"github.com/chazu/molding/pkg/profile"
	"github.com/chazu/molding/pkg/section"
)

// Defaults are the design-wide settings new moldings start from.
type Defaults struct {
	Profile   profile.Spec `json:"profile"`
	Tolerance float64      `json:"tolerance"`
	Units     string       `json:"units"`
}

// Design is produced by one script evaluation and never mutated after.
type Design struct {
	Moldings  map[NodeID]*Node  `json:"moldings"`
	Order     []NodeID          `json:"order"` // declaration order
	NameIndex map[string]NodeID `json:"name_index"`
	Defaults  Defaults          `json:"defaults"`
	Version   uint64            `json:"version"`
}

// New creates an empty design with default settings.
func New() *Design {
	return &Design{
		Moldings:  make(map[NodeID]*Node),
		NameIndex: make(map[string]NodeID),
		Defaults: Defaults{
			Profile:   profile.Default(),
			Tolerance: section.DefaultTolerance,
			Units:     "m",
		},
	}
}

// Add appends a node. Names must be unique.
func (d *Design) Add(n *Node) error {
	if n.Name != "" {
		if _, ok := d.NameIndex[n.Name]; ok {
			return fmt.Errorf("design: molding %q already defined", n.Name)
		}
		d.NameIndex[n.Name] = n.ID
	}
	if _, ok := d.Moldings[n.ID]; !ok {
		d.Order = append(d.Order, n.ID)
	}
	d.Moldings[n.ID] = n
	return nil
}

// Lookup returns the node with the given name, or nil.
func (d *Design) Lookup(name string) *Node {
	id, ok := d.NameIndex[name]
	if !ok {
		return nil
	}
	return d.Moldings[id]
}

// Get returns the node with the given ID, or nil.
func (d *Design) Get(id NodeID) *Node {
	return d.Moldings[id]
}

// Nodes returns the nodes in declaration order.
func (d *Design) Nodes() []*Node {
	nodes := make([]*Node, 0, len(d.Order))
	for _, id := range d.Order {
		if n := d.Moldings[id]; n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// Len returns the number of moldings.
func (d *Design) Len() int {
	return len(d.Moldings)
}
