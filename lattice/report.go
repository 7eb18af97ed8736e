package lattice

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/ProCityHub/hypercube/types/lattice"
	"github.com/ProCityHub/hypercube/wire"
)

// NodeInfo returns a read-only snapshot of a single node: its id, its
// d-wide binary label, its activation state and its neighbor list.
func (c *Cube) NodeInfo(id uint32) (*lattice.NodeInfo, error) {
	if uint64(id) >= c.nodes {
		NodeInfoTotal.WithLabelValues("error").Inc()
		return nil, errors.Wrap(lattice.ErrInvalidNode, "node info")
	}

	neighbors := make([]uint32, c.dimensions)
	for bit := 0; bit < c.dimensions; bit++ {
		neighbors[bit] = id ^ (uint32(1) << bit)
	}

	c.mu.RLock()
	state := c.state != nil && c.state.Has(id)
	c.mu.RUnlock()

	NodeInfoTotal.WithLabelValues("success").Inc()
	return &lattice.NodeInfo{
		ID:          id,
		BinaryLabel: fmt.Sprintf("%0*b", c.dimensions, id),
		State:       state,
		NeighborIDs: neighbors,
	}, nil
}

// ActivationDensity returns the activated fraction of the node set. A
// cube that has never been propagated (or has been reset) reports 0.0.
func (c *Cube) ActivationDensity() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.state == nil {
		return 0.0
	}

	return float64(c.state.Len()) / float64(c.nodes)
}

// Summary returns a read-only snapshot of the cube's current state.
func (c *Cube) Summary() lattice.Summary {
	c.mu.RLock()
	defer c.mu.RUnlock()

	summary := lattice.Summary{
		Dimensions: c.dimensions,
		NodeCount:  c.nodes,
		LastSource: c.lastSource,
		Runs:       c.runs,
		Timestamp:  c.lastRun,
	}
	if c.state != nil {
		summary.ActiveNodes = c.state.Len()
		summary.ActivationDensity =
			float64(c.state.Len()) / float64(c.nodes)
	}

	return summary
}

// RunRecord builds the persistable record of the most recent
// propagation run. Returns nil when the cube has never been propagated.
func (c *Cube) RunRecord() *wire.PropagationRun {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.state == nil {
		return nil
	}

	return &wire.PropagationRun{
		RunNumber:   c.runs,
		Dimensions:  uint32(c.dimensions),
		Source:      c.lastSource,
		ActiveCount: c.state.Len(),
		Timestamp:   c.lastRun.UnixNano(),
		Activation:  c.state.Bytes(),
	}
}

// SummaryRecord builds the persistable whole-cube summary.
func (c *Cube) SummaryRecord() *wire.LatticeSummary {
	summary := c.Summary()
	return &wire.LatticeSummary{
		Dimensions:  uint32(summary.Dimensions),
		NodeCount:   summary.NodeCount,
		ActiveNodes: summary.ActiveNodes,
		LastSource:  summary.LastSource,
		Runs:        summary.Runs,
		Timestamp:   summary.Timestamp.UnixNano(),
	}
}

// NodeRecord builds the persistable snapshot of a single node.
func (c *Cube) NodeRecord(id uint32) (*wire.NodeSnapshot, error) {
	info, err := c.NodeInfo(id)
	if err != nil {
		return nil, errors.Wrap(err, "node record")
	}

	return &wire.NodeSnapshot{
		Id:          info.ID,
		BinaryLabel: info.BinaryLabel,
		State:       info.State,
		NeighborIds: info.NeighborIDs,
	}, nil
}
