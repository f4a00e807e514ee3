package design

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/chazu/molding/pkg/molding"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// NodeID is a content-addressed node identifier: the SHA-256 of the path
// the node was declared under.
type NodeID [32]byte

// NewNodeID hashes a declaration path into an ID.
func NewNodeID(path string) NodeID {
	return NodeID(sha256.Sum256([]byte(path)))
}

// IsZero reports whether id is unset.
func (id NodeID) IsZero() bool {
	return id == NodeID{}
}

// String returns the full hex form.
func (id NodeID) String() string {
	return hex.EncodeToString(id[:])
}

// Short returns the first 8 hex digits, enough for messages.
func (id NodeID) Short() string {
	return hex.EncodeToString(id[:4])
}

// MarshalText implements encoding.TextMarshaler.
func (id NodeID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *NodeID) UnmarshalText(b []byte) error {
	if hex.DecodedLen(len(b)) != len(id) {
		return fmt.Errorf("design: node id %q: want %d hex digits", b, 2*len(id))
	}
	_, err := hex.Decode(id[:], b)
	return err
}

// NodeKind enumerates design node types.
type NodeKind int

const (
	NodeMolding NodeKind = iota // swept profile along a path
)

func (k NodeKind) String() string {
	switch k {
	case NodeMolding:
		return "molding"
	default:
		return "unknown"
	}
}

// PathSource records how a molding's parts were given.
type PathSource int

const (
	SourceParts  PathSource = iota // explicit segments
	SourcePoints                   // sampled poly points
	SourceBezier                   // sampled bezier spline
)

func (s PathSource) String() string {
	switch s {
	case SourceParts:
		return "parts"
	case SourcePoints:
		return "points"
	case SourceBezier:
		return "bezier"
	default:
		return "unknown"
	}
}

// SourceRef points back at the script form that created a node.
type SourceRef struct {
	Line int `json:"line,omitempty"`
	Col  int `json:"col,omitempty"`
}

// Node is one named element of a design.
type Node struct {
	ID     NodeID    `json:"id"`
	Kind   NodeKind  `json:"kind"`
	Name   string    `json:"name"`
	Source SourceRef `json:"source"`
	Data   NodeData  `json:"data"`
}

// NodeData is the interface for kind-specific node payloads.
type NodeData interface {
	nodeData() // marker method restricting implementations to this package
}

// MoldingData is the payload of a molding node.
type MoldingData struct {
	Params molding.Params `json:"params"`
	Origin v3.Vec         `json:"origin"` // world position of the path start
	Path   PathSource     `json:"path"`
}

func (MoldingData) nodeData() {}
