package accumulator

import (
	"hash"

	"github.com/google/uuid"
)

// Snapshot is an immutable copy of an accumulator at a fixed leaf count.
// All methods are safe for concurrent use without locking.
type Snapshot struct {
	view      treeView
	newHasher func() hash.Hash
	logID     uuid.UUID
}

func (s *Snapshot) LogID() uuid.UUID            { return s.logID }
func (s *Snapshot) LeafCount() uint64           { return s.view.leafCount() }
func (s *Snapshot) MerkleRoot() Hash            { return s.view.root }
func (s *Snapshot) Leaf(i uint64) (Hash, error) { return s.view.leaf(i) }
func (s *Snapshot) NewHasher() hash.Hash        { return s.newHasher() }

// Leaves returns the leaves covered by the snapshot. The slice must not be
// modified.
func (s *Snapshot) Leaves() []Hash {
	return s.view.leaves
}

// Roots returns the root history at the time of the snapshot, in the order the
// roots were produced.
func (s *Snapshot) Roots() []Hash {
	return s.view.history.Roots()
}

func (s *Snapshot) IsValidRoot(root Hash) bool {
	return s.view.history.Contains(root)
}

func (s *Snapshot) GenerateMerkleProof(i uint64) ([]Hash, error) {
	return s.view.generateProof(i)
}

// ValidateProof behaves as Accumulator.ValidateProof for the snapshot state
func (s *Snapshot) ValidateProof(i uint64, proof []Hash, root Hash) (bool, error) {
	return s.view.validateProof(s.newHasher(), i, proof, root)
}

func (s *Snapshot) ValidateProofAgainstCurrentRoot(i uint64, proof []Hash) (bool, error) {
	return s.view.validateProofAgainstCurrentRoot(s.newHasher(), i, proof)
}
