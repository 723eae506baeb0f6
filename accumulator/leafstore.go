package accumulator

import "fmt"

// LeafStore is the ordered, append only, sequence of leaf values.
//
// Positions are assigned by Append, starting at zero, and never change.
// Implementations need not be safe for concurrent use; the Accumulator
// serializes all access.
type LeafStore interface {
	Append(value Hash) (uint64, error)
	Get(i uint64) (Hash, error)
	Count() uint64

	// Leaves returns the full ordered sequence. The returned slice must not
	// be modified by the caller.
	Leaves() []Hash
}

// MemLeafStore keeps the leaves in a slice
type MemLeafStore struct {
	leaves []Hash
}

func NewMemLeafStore() *MemLeafStore {
	return &MemLeafStore{}
}

// Append adds value at the next position and returns that position
func (s *MemLeafStore) Append(value Hash) (uint64, error) {
	s.leaves = append(s.leaves, value)
	return uint64(len(s.leaves) - 1), nil
}

func (s *MemLeafStore) Get(i uint64) (Hash, error) {
	if i >= uint64(len(s.leaves)) {
		return Hash{}, fmt.Errorf("%w: %d >= %d", ErrPositionOutOfBounds, i, len(s.leaves))
	}
	return s.leaves[i], nil
}

func (s *MemLeafStore) Count() uint64 {
	return uint64(len(s.leaves))
}

// Leaves returns the leaf slice limited to its length. Later appends never
// write inside the returned range, so it remains valid as a snapshot.
func (s *MemLeafStore) Leaves() []Hash {
	return s.leaves[:len(s.leaves):len(s.leaves)]
}
