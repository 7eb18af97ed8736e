package wire

import (
	"bytes"
	"encoding/binary"

	"github.com/pkg/errors"
)

// NodeSnapshot is the serialized form of a single node's read-only
// report: identity, label, activation state and neighbor list.
type NodeSnapshot struct {
	Id          uint32
	BinaryLabel string
	State       bool
	NeighborIds []uint32
}

// ToCanonicalBytes serializes a NodeSnapshot to canonical bytes
func (n *NodeSnapshot) ToCanonicalBytes() ([]byte, error) {
	buf := new(bytes.Buffer)

	// Write type prefix
	if err := binary.Write(buf, binary.BigEndian, NodeSnapshotType); err != nil {
		return nil, errors.Wrap(err, "to canonical bytes")
	}

	// Write id
	if err := binary.Write(buf, binary.BigEndian, n.Id); err != nil {
		return nil, errors.Wrap(err, "to canonical bytes")
	}

	// Write binary_label
	label := []byte(n.BinaryLabel)
	if err := binary.Write(
		buf,
		binary.BigEndian,
		uint32(len(label)),
	); err != nil {
		return nil, errors.Wrap(err, "to canonical bytes")
	}
	if _, err := buf.Write(label); err != nil {
		return nil, errors.Wrap(err, "to canonical bytes")
	}

	// Write state
	state := uint8(0)
	if n.State {
		state = 1
	}
	if err := binary.Write(buf, binary.BigEndian, state); err != nil {
		return nil, errors.Wrap(err, "to canonical bytes")
	}

	// Write neighbor_ids
	if err := binary.Write(
		buf,
		binary.BigEndian,
		uint32(len(n.NeighborIds)),
	); err != nil {
		return nil, errors.Wrap(err, "to canonical bytes")
	}
	for _, id := range n.NeighborIds {
		if err := binary.Write(buf, binary.BigEndian, id); err != nil {
			return nil, errors.Wrap(err, "to canonical bytes")
		}
	}

	return buf.Bytes(), nil
}

// FromCanonicalBytes deserializes a NodeSnapshot from canonical bytes
func (n *NodeSnapshot) FromCanonicalBytes(data []byte) error {
	buf := bytes.NewBuffer(data)

	// Read and verify type prefix
	var typePrefix uint32
	if err := binary.Read(buf, binary.BigEndian, &typePrefix); err != nil {
		return errors.Wrap(err, "from canonical bytes")
	}
	if typePrefix != NodeSnapshotType {
		return errors.Wrap(
			errors.New("invalid type prefix"),
			"from canonical bytes",
		)
	}

	// Read id
	if err := binary.Read(buf, binary.BigEndian, &n.Id); err != nil {
		return errors.Wrap(err, "from canonical bytes")
	}

	// Read binary_label
	var labelLen uint32
	if err := binary.Read(buf, binary.BigEndian, &labelLen); err != nil {
		return errors.Wrap(err, "from canonical bytes")
	}
	if labelLen > 0 {
		if uint32(buf.Len()) < labelLen {
			return errors.Wrap(
				errors.New("truncated binary label"),
				"from canonical bytes",
			)
		}
		label := make([]byte, labelLen)
		if _, err := buf.Read(label); err != nil {
			return errors.Wrap(err, "from canonical bytes")
		}
		n.BinaryLabel = string(label)
	} else {
		n.BinaryLabel = ""
	}

	// Read state
	var state uint8
	if err := binary.Read(buf, binary.BigEndian, &state); err != nil {
		return errors.Wrap(err, "from canonical bytes")
	}
	n.State = state != 0

	// Read neighbor_ids
	var neighborCount uint32
	if err := binary.Read(buf, binary.BigEndian, &neighborCount); err != nil {
		return errors.Wrap(err, "from canonical bytes")
	}
	if neighborCount > uint32(buf.Len())/4 {
		return errors.Wrap(
			errors.New("truncated neighbor list"),
			"from canonical bytes",
		)
	}
	if neighborCount > 0 {
		neighbors := make([]uint32, neighborCount)
		for i := range neighbors {
			if err := binary.Read(
				buf,
				binary.BigEndian,
				&neighbors[i],
			); err != nil {
				return errors.Wrap(err, "from canonical bytes")
			}
		}
		n.NeighborIds = neighbors
	} else {
		n.NeighborIds = nil
	}

	return nil
}
