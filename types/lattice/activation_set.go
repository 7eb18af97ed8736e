package lattice

import (
	"math/bits"

	"github.com/pkg/errors"
)

const wordBits = 64

// ActivationSet is the set of node ids reached during a single
// propagation run. It is word-packed: node id i maps to bit i%64 of
// word i/64. A set is created fresh for each run and only ever grows
// while the run is in flight.
//
// ActivationSet is not safe for concurrent mutation; each propagation
// owns its set exclusively until the run completes.
type ActivationSet struct {
	words    []uint64
	capacity uint64
	count    uint64
}

// NewActivationSet creates an empty set able to hold ids in
// [0, capacity).
func NewActivationSet(capacity uint64) *ActivationSet {
	return &ActivationSet{
		words:    make([]uint64, (capacity+wordBits-1)/wordBits),
		capacity: capacity,
	}
}

// Add inserts id into the set. Adding an id twice is a no-op. Ids at or
// beyond the set's capacity are ignored.
func (s *ActivationSet) Add(id uint32) {
	if uint64(id) >= s.capacity {
		return
	}

	word, bit := id/wordBits, uint64(1)<<(id%wordBits)
	if s.words[word]&bit == 0 {
		s.words[word] |= bit
		s.count++
	}
}

// Has reports whether id is in the set.
func (s *ActivationSet) Has(id uint32) bool {
	if uint64(id) >= s.capacity {
		return false
	}

	return s.words[id/wordBits]&(uint64(1)<<(id%wordBits)) != 0
}

// Len returns the number of ids in the set.
func (s *ActivationSet) Len() uint64 {
	return s.count
}

// Capacity returns the number of ids the set can hold.
func (s *ActivationSet) Capacity() uint64 {
	return s.capacity
}

// Slice returns the member ids in ascending order.
func (s *ActivationSet) Slice() []uint32 {
	ids := make([]uint32, 0, s.count)
	for w, word := range s.words {
		for word != 0 {
			ids = append(ids, uint32(w*wordBits+bits.TrailingZeros64(word)))
			word &= word - 1
		}
	}

	return ids
}

// Bytes returns the little-endian packed bitmap, one byte per eight
// ids, for persistence.
func (s *ActivationSet) Bytes() []byte {
	out := make([]byte, (s.capacity+7)/8)
	for i := range out {
		out[i] = byte(s.words[i/8] >> (8 * (uint(i) % 8)))
	}

	return out
}

// SetBytes replaces the set's contents from a packed bitmap previously
// produced by Bytes. The bitmap length must match this set's capacity,
// and no bit at or beyond the capacity may be set; either condition
// failing means the bitmap belongs to a cube of another dimension. On
// failure the set is left unchanged.
func (s *ActivationSet) SetBytes(data []byte) error {
	if uint64(len(data)) != (s.capacity+7)/8 {
		return errors.Wrap(ErrInvalidDimension, "set bytes")
	}

	words := make([]uint64, len(s.words))
	for i, b := range data {
		words[i/8] |= uint64(b) << (8 * (uint(i) % 8))
	}

	if rem := s.capacity % wordBits; rem != 0 {
		if words[len(words)-1]&^(uint64(1)<<rem-1) != 0 {
			return errors.Wrap(ErrInvalidDimension, "set bytes")
		}
	}

	s.words = words
	s.count = 0
	for _, word := range words {
		s.count += uint64(bits.OnesCount64(word))
	}

	return nil
}
