package lattice

import (
	"time"

	"github.com/pkg/errors"
)

const (
	// MinDimensions is the smallest supported cube dimension. A zero or
	// negative dimension has no nodes to traverse.
	MinDimensions = 1

	// MaxDimensions bounds cube construction to 2^20 nodes so that a bad
	// dimension parameter cannot exhaust memory.
	MaxDimensions = 20
)

var ErrInvalidDimension = errors.New("invalid dimension")
var ErrInvalidNode = errors.New("invalid node")

// NodeInfo is a read-only snapshot of a single cube node.
type NodeInfo struct {
	// ID is the node's integer identity in [0, 2^d).
	ID uint32

	// BinaryLabel is the fixed-width binary string form of ID, d runes
	// wide.
	BinaryLabel string

	// State reports whether the node was reached by the most recent
	// propagation run.
	State bool

	// NeighborIDs holds the ids at Hamming distance 1 from ID. Always
	// exactly d entries.
	NeighborIDs []uint32
}

// Summary is a read-only snapshot of the cube as a whole.
type Summary struct {
	Dimensions        int
	NodeCount         uint64
	ActiveNodes       uint64
	ActivationDensity float64

	// LastSource is the source node of the most recent propagation run.
	// Only meaningful when Runs > 0.
	LastSource uint32

	// Runs counts the propagation runs applied to this cube instance,
	// including restored history.
	Runs uint64

	Timestamp time.Time
}

// Lattice defines the operations of a d-dimensional binary hypercube.
// Nodes are labeled by d-bit strings; two nodes are adjacent iff their
// labels differ in exactly one bit.
type Lattice interface {
	// Dimensions returns the cube's dimension d.
	Dimensions() int

	// Nodes returns the total node count, always 2^d.
	Nodes() uint64

	// Neighbors returns the ids at Hamming distance 1 from id. The
	// result always has exactly d entries. Returns ErrInvalidNode for an
	// id outside [0, 2^d).
	Neighbors(id uint32) ([]uint32, error)

	// Propagate performs a full traversal from source, activating every
	// reachable node, and returns the set of ids visited. The cube graph
	// is connected, so the result always holds all 2^d ids. Prior
	// activation state is cleared first; back-to-back calls with the
	// same source yield identical results. Returns ErrInvalidNode for an
	// out-of-range source.
	Propagate(source uint32) (*ActivationSet, error)

	// NodeInfo returns a read-only snapshot of a node. Returns
	// ErrInvalidNode for an id outside [0, 2^d).
	NodeInfo(id uint32) (*NodeInfo, error)

	// ActivationDensity returns the activated fraction of the node set
	// in [0, 1]. A cube that has never been propagated reports 0.0.
	ActivationDensity() float64

	// Summary returns a read-only snapshot of the cube's current state.
	Summary() Summary

	// Reset clears all activation state.
	Reset()
}
