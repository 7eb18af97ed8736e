package wire

import (
	"bytes"
	"encoding/binary"

	"github.com/pkg/errors"
)

// LatticeSummary is the serialized whole-cube report. The activation
// density is not stored; it is derived from ActiveNodes and NodeCount
// at read time.
type LatticeSummary struct {
	Dimensions  uint32
	NodeCount   uint64
	ActiveNodes uint64
	LastSource  uint32
	Runs        uint64
	// Timestamp is unix nanoseconds.
	Timestamp int64
}

// ToCanonicalBytes serializes a LatticeSummary to canonical bytes
func (l *LatticeSummary) ToCanonicalBytes() ([]byte, error) {
	buf := new(bytes.Buffer)

	// Write type prefix
	if err := binary.Write(
		buf,
		binary.BigEndian,
		LatticeSummaryType,
	); err != nil {
		return nil, errors.Wrap(err, "to canonical bytes")
	}

	// Write dimensions
	if err := binary.Write(buf, binary.BigEndian, l.Dimensions); err != nil {
		return nil, errors.Wrap(err, "to canonical bytes")
	}

	// Write node_count
	if err := binary.Write(buf, binary.BigEndian, l.NodeCount); err != nil {
		return nil, errors.Wrap(err, "to canonical bytes")
	}

	// Write active_nodes
	if err := binary.Write(buf, binary.BigEndian, l.ActiveNodes); err != nil {
		return nil, errors.Wrap(err, "to canonical bytes")
	}

	// Write last_source
	if err := binary.Write(buf, binary.BigEndian, l.LastSource); err != nil {
		return nil, errors.Wrap(err, "to canonical bytes")
	}

	// Write runs
	if err := binary.Write(buf, binary.BigEndian, l.Runs); err != nil {
		return nil, errors.Wrap(err, "to canonical bytes")
	}

	// Write timestamp
	if err := binary.Write(buf, binary.BigEndian, l.Timestamp); err != nil {
		return nil, errors.Wrap(err, "to canonical bytes")
	}

	return buf.Bytes(), nil
}

// FromCanonicalBytes deserializes a LatticeSummary from canonical bytes
func (l *LatticeSummary) FromCanonicalBytes(data []byte) error {
	buf := bytes.NewBuffer(data)

	// Read and verify type prefix
	var typePrefix uint32
	if err := binary.Read(buf, binary.BigEndian, &typePrefix); err != nil {
		return errors.Wrap(err, "from canonical bytes")
	}
	if typePrefix != LatticeSummaryType {
		return errors.Wrap(
			errors.New("invalid type prefix"),
			"from canonical bytes",
		)
	}

	// Read dimensions
	if err := binary.Read(buf, binary.BigEndian, &l.Dimensions); err != nil {
		return errors.Wrap(err, "from canonical bytes")
	}

	// Read node_count
	if err := binary.Read(buf, binary.BigEndian, &l.NodeCount); err != nil {
		return errors.Wrap(err, "from canonical bytes")
	}

	// Read active_nodes
	if err := binary.Read(buf, binary.BigEndian, &l.ActiveNodes); err != nil {
		return errors.Wrap(err, "from canonical bytes")
	}

	// Read last_source
	if err := binary.Read(buf, binary.BigEndian, &l.LastSource); err != nil {
		return errors.Wrap(err, "from canonical bytes")
	}

	// Read runs
	if err := binary.Read(buf, binary.BigEndian, &l.Runs); err != nil {
		return errors.Wrap(err, "from canonical bytes")
	}

	// Read timestamp
	if err := binary.Read(buf, binary.BigEndian, &l.Timestamp); err != nil {
		return errors.Wrap(err, "from canonical bytes")
	}

	return nil
}
