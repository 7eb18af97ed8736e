package wire

import (
	"bytes"
	"encoding/binary"

	"github.com/pkg/errors"
)

// PropagationRun is the persisted record of a single propagation over
// the cube: which cube, where it started, what it reached, and when.
type PropagationRun struct {
	RunNumber   uint64
	Dimensions  uint32
	Source      uint32
	ActiveCount uint64
	// Timestamp is unix nanoseconds at run completion.
	Timestamp int64
	// Activation is the packed activation bitmap, one bit per node.
	Activation []byte
}

// ToCanonicalBytes serializes a PropagationRun to canonical bytes
func (p *PropagationRun) ToCanonicalBytes() ([]byte, error) {
	buf := new(bytes.Buffer)

	// Write type prefix
	if err := binary.Write(
		buf,
		binary.BigEndian,
		PropagationRunType,
	); err != nil {
		return nil, errors.Wrap(err, "to canonical bytes")
	}

	// Write run_number
	if err := binary.Write(buf, binary.BigEndian, p.RunNumber); err != nil {
		return nil, errors.Wrap(err, "to canonical bytes")
	}

	// Write dimensions
	if err := binary.Write(buf, binary.BigEndian, p.Dimensions); err != nil {
		return nil, errors.Wrap(err, "to canonical bytes")
	}

	// Write source
	if err := binary.Write(buf, binary.BigEndian, p.Source); err != nil {
		return nil, errors.Wrap(err, "to canonical bytes")
	}

	// Write active_count
	if err := binary.Write(buf, binary.BigEndian, p.ActiveCount); err != nil {
		return nil, errors.Wrap(err, "to canonical bytes")
	}

	// Write timestamp
	if err := binary.Write(buf, binary.BigEndian, p.Timestamp); err != nil {
		return nil, errors.Wrap(err, "to canonical bytes")
	}

	// Write activation
	if err := binary.Write(
		buf,
		binary.BigEndian,
		uint32(len(p.Activation)),
	); err != nil {
		return nil, errors.Wrap(err, "to canonical bytes")
	}
	if _, err := buf.Write(p.Activation); err != nil {
		return nil, errors.Wrap(err, "to canonical bytes")
	}

	return buf.Bytes(), nil
}

// FromCanonicalBytes deserializes a PropagationRun from canonical bytes
func (p *PropagationRun) FromCanonicalBytes(data []byte) error {
	buf := bytes.NewBuffer(data)

	// Read and verify type prefix
	var typePrefix uint32
	if err := binary.Read(buf, binary.BigEndian, &typePrefix); err != nil {
		return errors.Wrap(err, "from canonical bytes")
	}
	if typePrefix != PropagationRunType {
		return errors.Wrap(
			errors.New("invalid type prefix"),
			"from canonical bytes",
		)
	}

	// Read run_number
	if err := binary.Read(buf, binary.BigEndian, &p.RunNumber); err != nil {
		return errors.Wrap(err, "from canonical bytes")
	}

	// Read dimensions
	if err := binary.Read(buf, binary.BigEndian, &p.Dimensions); err != nil {
		return errors.Wrap(err, "from canonical bytes")
	}

	// Read source
	if err := binary.Read(buf, binary.BigEndian, &p.Source); err != nil {
		return errors.Wrap(err, "from canonical bytes")
	}

	// Read active_count
	if err := binary.Read(buf, binary.BigEndian, &p.ActiveCount); err != nil {
		return errors.Wrap(err, "from canonical bytes")
	}

	// Read timestamp
	if err := binary.Read(buf, binary.BigEndian, &p.Timestamp); err != nil {
		return errors.Wrap(err, "from canonical bytes")
	}

	// Read activation
	var activationLen uint32
	if err := binary.Read(buf, binary.BigEndian, &activationLen); err != nil {
		return errors.Wrap(err, "from canonical bytes")
	}
	if activationLen > 0 {
		if uint32(buf.Len()) < activationLen {
			return errors.Wrap(
				errors.New("truncated activation bitmap"),
				"from canonical bytes",
			)
		}
		activation := make([]byte, activationLen)
		if _, err := buf.Read(activation); err != nil {
			return errors.Wrap(err, "from canonical bytes")
		}
		p.Activation = activation
	} else {
		p.Activation = nil
	}

	return nil
}
