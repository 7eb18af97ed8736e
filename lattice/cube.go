package lattice

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/ProCityHub/hypercube/types/lattice"
)

// Cube implements a d-dimensional binary hypercube. Nodes are labeled
// by d-bit binary strings and two nodes are adjacent iff their ids
// differ in exactly one bit (Hamming distance 1). The adjacency
// relation is derived from node ids on demand; it is never stored.
//
// The only mutable state is the activation flags left behind by the
// most recent propagation run, guarded by mu. Each propagation builds
// its visited set from scratch, so concurrent readers always observe a
// complete run, never a partial one.
type Cube struct {
	logger *zap.Logger
	// dimensions is the cube's dimension d, fixed at construction
	dimensions int
	// nodes is the total node count, always 2^d
	nodes uint64

	mu sync.RWMutex
	// state holds the activation flags of the most recent run, nil until
	// the first propagation
	state *lattice.ActivationSet
	// lastSource is the source node of the most recent run
	lastSource uint32
	// runs counts propagation runs applied to this cube
	runs uint64
	// lastRun is the completion time of the most recent run
	lastRun time.Time
}

var _ lattice.Lattice = (*Cube)(nil)

// NewCube creates a hypercube of the given dimension. The dimension
// must lie in [MinDimensions, MaxDimensions]; anything else fails with
// ErrInvalidDimension before any allocation happens.
func NewCube(logger *zap.Logger, dimensions int) (*Cube, error) {
	if dimensions < lattice.MinDimensions ||
		dimensions > lattice.MaxDimensions {
		CreateCubeTotal.WithLabelValues("error").Inc()
		return nil, errors.Wrap(lattice.ErrInvalidDimension, "new cube")
	}

	c := &Cube{
		logger:     logger,
		dimensions: dimensions,
		nodes:      uint64(1) << dimensions,
	}

	CreateCubeTotal.WithLabelValues("success").Inc()
	logger.Info(
		"cube initialized",
		zap.Int("dimensions", dimensions),
		zap.Uint64("nodes", c.nodes),
	)

	return c, nil
}

// Dimensions returns the cube's dimension d.
func (c *Cube) Dimensions() int {
	return c.dimensions
}

// Nodes returns the total node count, always 2^d.
func (c *Cube) Nodes() uint64 {
	return c.nodes
}

// Neighbors returns the ids at Hamming distance 1 from id, one per bit
// position, always exactly d of them.
func (c *Cube) Neighbors(id uint32) ([]uint32, error) {
	if uint64(id) >= c.nodes {
		NeighborsTotal.WithLabelValues("error").Inc()
		return nil, errors.Wrap(lattice.ErrInvalidNode, "neighbors")
	}

	neighbors := make([]uint32, c.dimensions)
	for bit := 0; bit < c.dimensions; bit++ {
		neighbors[bit] = id ^ (uint32(1) << bit)
	}

	NeighborsTotal.WithLabelValues("success").Inc()
	return neighbors, nil
}

// Propagate performs a full traversal from source, activating every
// reachable node. The traversal uses an explicit worklist rather than
// recursion so the depth never exceeds the stack regardless of d, and a
// visited-set guard so no node is expanded twice. Prior activation
// state is cleared first, so back-to-back calls are idempotent.
//
// The returned set is retained as the cube's activation state for
// reporting; treat it as read-only once the call returns.
func (c *Cube) Propagate(source uint32) (*lattice.ActivationSet, error) {
	timer := prometheus.NewTimer(PropagateDuration)
	defer timer.ObserveDuration()

	if uint64(source) >= c.nodes {
		PropagateTotal.WithLabelValues("error").Inc()
		return nil, errors.Wrap(lattice.ErrInvalidNode, "propagate")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	visited := lattice.NewActivationSet(c.nodes)
	worklist := make([]uint32, 0, c.nodes)

	// Nodes are marked visited when pushed, not when popped, so each id
	// enters the worklist at most once.
	visited.Add(source)
	worklist = append(worklist, source)

	for len(worklist) > 0 {
		node := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		for bit := 0; bit < c.dimensions; bit++ {
			neighbor := node ^ (uint32(1) << bit)
			if !visited.Has(neighbor) {
				visited.Add(neighbor)
				worklist = append(worklist, neighbor)
			}
		}
	}

	c.state = visited
	c.lastSource = source
	c.runs++
	c.lastRun = time.Now()

	PropagateTotal.WithLabelValues("success").Inc()
	PropagateNodesVisited.Observe(float64(visited.Len()))
	ActivationDensityGauge.Set(float64(visited.Len()) / float64(c.nodes))

	c.logger.Debug(
		"propagation complete",
		zap.Uint32("source", source),
		zap.Uint64("visited", visited.Len()),
		zap.Uint64("nodes", c.nodes),
	)

	return visited, nil
}

// Reset clears all activation state. The run counter is preserved so a
// restored history stays countable.
func (c *Cube) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = nil
	ActivationDensityGauge.Set(0)
	ResetTotal.Inc()
}

// Restore reapplies a previously persisted activation state, typically
// loaded from the run store. The set's capacity must match this cube's
// node count or ErrInvalidDimension is returned.
func (c *Cube) Restore(
	state *lattice.ActivationSet,
	source uint32,
	runs uint64,
	at time.Time,
) error {
	if state.Capacity() != c.nodes {
		RestoreTotal.WithLabelValues("error").Inc()
		return errors.Wrap(lattice.ErrInvalidDimension, "restore")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = state
	c.lastSource = source
	c.runs = runs
	c.lastRun = at

	RestoreTotal.WithLabelValues("success").Inc()
	ActivationDensityGauge.Set(float64(state.Len()) / float64(c.nodes))

	return nil
}
