package wire

// Canonical type constants for all wire messages. These are used as
// prefixes in ToCanonicalBytes() serialization so that a reader can
// reject a record of the wrong kind before decoding any field.
const (
	// Lattice types (0x0100 - 0x01FF)
	PropagationRunType uint32 = 0x0100
	NodeSnapshotType   uint32 = 0x0101
	LatticeSummaryType uint32 = 0x0102
)
