package lattice_test

import (
	"math/bits"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ProCityHub/hypercube/lattice"
	typeslattice "github.com/ProCityHub/hypercube/types/lattice"
	"github.com/ProCityHub/hypercube/wire"
)

func newTestCube(t *testing.T, dimensions int) *lattice.Cube {
	t.Helper()
	cube, err := lattice.NewCube(zap.NewNop(), dimensions)
	require.NoError(t, err)
	return cube
}

func TestNewCube_InvalidDimension(t *testing.T) {
	tests := []struct {
		name       string
		dimensions int
	}{
		{name: "zero", dimensions: 0},
		{name: "negative", dimensions: -3},
		{name: "above maximum", dimensions: typeslattice.MaxDimensions + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cube, err := lattice.NewCube(zap.NewNop(), tt.dimensions)
			assert.Nil(t, cube)
			require.Error(t, err)
			assert.True(t, errors.Is(err, typeslattice.ErrInvalidDimension))
		})
	}
}

func TestNewCube_NodeCount(t *testing.T) {
	for d := 1; d <= 10; d++ {
		cube := newTestCube(t, d)
		assert.Equal(t, d, cube.Dimensions())
		assert.Equal(t, uint64(1)<<d, cube.Nodes())
	}
}

func TestNeighbors_Properties(t *testing.T) {
	for d := 1; d <= 8; d++ {
		cube := newTestCube(t, d)

		for id := uint32(0); uint64(id) < cube.Nodes(); id++ {
			neighbors, err := cube.Neighbors(id)
			require.NoError(t, err)
			require.Len(t, neighbors, d)

			seen := map[uint32]bool{}
			for _, neighbor := range neighbors {
				// Exactly one differing bit
				assert.Equal(t, 1, bits.OnesCount32(id^neighbor))
				assert.False(t, seen[neighbor])
				seen[neighbor] = true

				// Symmetry: the relation holds in both directions
				back, err := cube.Neighbors(neighbor)
				require.NoError(t, err)
				assert.Contains(t, back, id)
			}
		}
	}
}

func TestNeighbors_InvalidNode(t *testing.T) {
	cube := newTestCube(t, 3)

	for _, id := range []uint32{8, 99, 1 << 20} {
		neighbors, err := cube.Neighbors(id)
		assert.Nil(t, neighbors)
		require.Error(t, err)
		assert.True(t, errors.Is(err, typeslattice.ErrInvalidNode))
	}
}

func TestPropagate_FullCoverage(t *testing.T) {
	for d := 1; d <= 10; d++ {
		cube := newTestCube(t, d)
		nodes := cube.Nodes()

		sources := []uint32{0, uint32(nodes - 1), uint32(nodes / 2)}
		for _, source := range sources {
			visited, err := cube.Propagate(source)
			require.NoError(t, err)
			assert.Equal(t, nodes, visited.Len())

			for id := uint32(0); uint64(id) < nodes; id++ {
				assert.True(t, visited.Has(id))
			}
		}
	}
}

func TestPropagate_Idempotent(t *testing.T) {
	cube := newTestCube(t, 6)

	first, err := cube.Propagate(17)
	require.NoError(t, err)
	second, err := cube.Propagate(17)
	require.NoError(t, err)

	assert.Equal(t, first.Len(), second.Len())
	assert.Equal(t, first.Slice(), second.Slice())
	assert.Equal(t, uint64(2), cube.Summary().Runs)
}

func TestPropagate_InvalidSource(t *testing.T) {
	cube := newTestCube(t, 3)

	visited, err := cube.Propagate(8)
	assert.Nil(t, visited)
	require.Error(t, err)
	assert.True(t, errors.Is(err, typeslattice.ErrInvalidNode))

	// A failed propagation leaves no activation behind.
	assert.Equal(t, 0.0, cube.ActivationDensity())
}

func TestPropagate_DimensionOneBoundary(t *testing.T) {
	cube := newTestCube(t, 1)
	assert.Equal(t, uint64(2), cube.Nodes())

	neighbors, err := cube.Neighbors(0)
	require.NoError(t, err)
	assert.Equal(t, []uint32{1}, neighbors)

	neighbors, err = cube.Neighbors(1)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0}, neighbors)

	visited, err := cube.Propagate(0)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1}, visited.Slice())
}

func TestThreeDimensionalCube(t *testing.T) {
	cube := newTestCube(t, 3)
	assert.Equal(t, uint64(8), cube.Nodes())

	neighbors, err := cube.Neighbors(0)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint32{1, 2, 4}, neighbors)

	visited, err := cube.Propagate(0)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1, 2, 3, 4, 5, 6, 7}, visited.Slice())
	assert.Equal(t, 1.0, cube.ActivationDensity())
}

func TestNodeInfo(t *testing.T) {
	cube := newTestCube(t, 5)

	info, err := cube.NodeInfo(21)
	require.NoError(t, err)
	assert.Equal(t, uint32(21), info.ID)
	assert.Equal(t, "10101", info.BinaryLabel)
	assert.False(t, info.State)
	assert.Len(t, info.NeighborIDs, 5)

	_, err = cube.Propagate(0)
	require.NoError(t, err)

	info, err = cube.NodeInfo(21)
	require.NoError(t, err)
	assert.True(t, info.State)

	_, err = cube.NodeInfo(32)
	require.Error(t, err)
	assert.True(t, errors.Is(err, typeslattice.ErrInvalidNode))
}

func TestActivationDensity_Lifecycle(t *testing.T) {
	cube := newTestCube(t, 4)

	// Unpropagated cube reports zero density
	assert.Equal(t, 0.0, cube.ActivationDensity())

	_, err := cube.Propagate(3)
	require.NoError(t, err)
	assert.Equal(t, 1.0, cube.ActivationDensity())

	cube.Reset()
	assert.Equal(t, 0.0, cube.ActivationDensity())

	// Reset preserves the run counter
	assert.Equal(t, uint64(1), cube.Summary().Runs)
}

func TestSummary(t *testing.T) {
	cube := newTestCube(t, 4)

	summary := cube.Summary()
	assert.Equal(t, 4, summary.Dimensions)
	assert.Equal(t, uint64(16), summary.NodeCount)
	assert.Equal(t, uint64(0), summary.ActiveNodes)
	assert.Equal(t, uint64(0), summary.Runs)

	_, err := cube.Propagate(7)
	require.NoError(t, err)

	summary = cube.Summary()
	assert.Equal(t, uint64(16), summary.ActiveNodes)
	assert.Equal(t, 1.0, summary.ActivationDensity)
	assert.Equal(t, uint32(7), summary.LastSource)
	assert.Equal(t, uint64(1), summary.Runs)
	assert.False(t, summary.Timestamp.IsZero())
}

func TestRunRecord(t *testing.T) {
	cube := newTestCube(t, 3)
	assert.Nil(t, cube.RunRecord())

	_, err := cube.Propagate(5)
	require.NoError(t, err)

	record := cube.RunRecord()
	require.NotNil(t, record)
	assert.Equal(t, uint32(3), record.Dimensions)
	assert.Equal(t, uint32(5), record.Source)
	assert.Equal(t, uint64(8), record.ActiveCount)
	assert.Equal(t, []byte{0xff}, record.Activation)
}

func TestRestore(t *testing.T) {
	source := newTestCube(t, 3)
	_, err := source.Propagate(2)
	require.NoError(t, err)
	record := source.RunRecord()

	restored := newTestCube(t, 3)
	state := typeslattice.NewActivationSet(restored.Nodes())
	require.NoError(t, state.SetBytes(record.Activation))
	require.NoError(t, restored.Restore(
		state,
		record.Source,
		record.RunNumber,
		time.Unix(0, record.Timestamp),
	))

	assert.Equal(t, 1.0, restored.ActivationDensity())
	summary := restored.Summary()
	assert.Equal(t, uint32(2), summary.LastSource)
	assert.Equal(t, uint64(1), summary.Runs)
}

func TestSummaryRecord(t *testing.T) {
	cube := newTestCube(t, 3)
	_, err := cube.Propagate(5)
	require.NoError(t, err)

	record := cube.SummaryRecord()
	require.NotNil(t, record)
	assert.Equal(t, uint32(3), record.Dimensions)
	assert.Equal(t, uint64(8), record.NodeCount)
	assert.Equal(t, uint64(8), record.ActiveNodes)
	assert.Equal(t, uint32(5), record.LastSource)
	assert.Equal(t, uint64(1), record.Runs)

	data, err := record.ToCanonicalBytes()
	require.NoError(t, err)
	decoded := &wire.LatticeSummary{}
	require.NoError(t, decoded.FromCanonicalBytes(data))
	assert.Equal(t, record, decoded)
}

func TestNodeRecord(t *testing.T) {
	cube := newTestCube(t, 3)
	_, err := cube.Propagate(0)
	require.NoError(t, err)

	record, err := cube.NodeRecord(5)
	require.NoError(t, err)
	assert.Equal(t, uint32(5), record.Id)
	assert.Equal(t, "101", record.BinaryLabel)
	assert.True(t, record.State)
	assert.ElementsMatch(t, []uint32{4, 7, 1}, record.NeighborIds)

	_, err = cube.NodeRecord(99)
	require.Error(t, err)
	assert.True(t, errors.Is(err, typeslattice.ErrInvalidNode))
}

func TestRestore_RejectsOversizedBitmap(t *testing.T) {
	cube := newTestCube(t, 1)

	// A one-dimensional cube holds two nodes, so a full 0xff byte
	// carries six ids that do not exist. Loading it must fail before
	// any state is restored.
	state := typeslattice.NewActivationSet(cube.Nodes())
	err := state.SetBytes([]byte{0xff})
	require.Error(t, err)
	assert.True(t, errors.Is(err, typeslattice.ErrInvalidDimension))

	assert.Equal(t, 0.0, cube.ActivationDensity())
	summary := cube.Summary()
	assert.LessOrEqual(t, summary.ActiveNodes, summary.NodeCount)
}

func TestRestore_DimensionMismatch(t *testing.T) {
	cube := newTestCube(t, 3)
	state := typeslattice.NewActivationSet(16) // 4-dimensional set

	err := cube.Restore(state, 0, 1, time.Now())
	require.Error(t, err)
	assert.True(t, errors.Is(err, typeslattice.ErrInvalidDimension))
}
