package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropagationRun_Serialization(t *testing.T) {
	tests := []struct {
		name string
		run  *PropagationRun
	}{
		{
			name: "five dimensional run",
			run: &PropagationRun{
				RunNumber:   7,
				Dimensions:  5,
				Source:      21,
				ActiveCount: 32,
				Timestamp:   1700000000000000000,
				Activation:  []byte{0xff, 0xff, 0xff, 0xff},
			},
		},
		{
			name: "one dimensional run",
			run: &PropagationRun{
				RunNumber:   1,
				Dimensions:  1,
				Source:      0,
				ActiveCount: 2,
				Timestamp:   1,
				Activation:  []byte{0x03},
			},
		},
		{
			name: "empty bitmap",
			run: &PropagationRun{
				RunNumber:  3,
				Dimensions: 4,
				Source:     9,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := tt.run.ToCanonicalBytes()
			require.NoError(t, err)
			require.NotNil(t, data)

			run2 := &PropagationRun{}
			err = run2.FromCanonicalBytes(data)
			require.NoError(t, err)

			assert.Equal(t, tt.run, run2)
		})
	}
}

func TestPropagationRun_InvalidInput(t *testing.T) {
	run := &PropagationRun{
		RunNumber:  2,
		Dimensions: 3,
		Activation: []byte{0xff},
	}
	data, err := run.ToCanonicalBytes()
	require.NoError(t, err)

	t.Run("wrong type prefix", func(t *testing.T) {
		snapshot := &NodeSnapshot{Id: 1, BinaryLabel: "001"}
		wrongType, err := snapshot.ToCanonicalBytes()
		require.NoError(t, err)

		err = (&PropagationRun{}).FromCanonicalBytes(wrongType)
		require.Error(t, err)
	})

	t.Run("truncated payload", func(t *testing.T) {
		err := (&PropagationRun{}).FromCanonicalBytes(data[:len(data)-3])
		require.Error(t, err)
	})

	t.Run("empty input", func(t *testing.T) {
		err := (&PropagationRun{}).FromCanonicalBytes(nil)
		require.Error(t, err)
	})
}

func TestNodeSnapshot_Serialization(t *testing.T) {
	snapshot := &NodeSnapshot{
		Id:          21,
		BinaryLabel: "10101",
		State:       true,
		NeighborIds: []uint32{20, 23, 17, 29, 5},
	}

	data, err := snapshot.ToCanonicalBytes()
	require.NoError(t, err)

	snapshot2 := &NodeSnapshot{}
	require.NoError(t, snapshot2.FromCanonicalBytes(data))
	assert.Equal(t, snapshot, snapshot2)
}

func TestNodeSnapshot_TruncatedNeighborList(t *testing.T) {
	snapshot := &NodeSnapshot{
		Id:          0,
		BinaryLabel: "000",
		NeighborIds: []uint32{1, 2, 4},
	}

	data, err := snapshot.ToCanonicalBytes()
	require.NoError(t, err)

	err = (&NodeSnapshot{}).FromCanonicalBytes(data[:len(data)-5])
	require.Error(t, err)
}

func TestLatticeSummary_Serialization(t *testing.T) {
	summary := &LatticeSummary{
		Dimensions:  5,
		NodeCount:   32,
		ActiveNodes: 32,
		LastSource:  0,
		Runs:        12,
		Timestamp:   1700000000000000000,
	}

	data, err := summary.ToCanonicalBytes()
	require.NoError(t, err)

	summary2 := &LatticeSummary{}
	require.NoError(t, summary2.FromCanonicalBytes(data))
	assert.Equal(t, summary, summary2)
}
