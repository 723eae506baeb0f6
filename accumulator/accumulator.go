package accumulator

import (
	"fmt"
	"hash"
	"sync"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/google/uuid"
)

// Accumulator is an append only merkle tree which remembers every root it has
// held.
//
// It is safe for concurrent use. Appends are serialized, reads share a lock
// and may run concurrently with each other. For long running reads, take a
// Snapshot and work against that.
type Accumulator struct {
	mu sync.RWMutex

	newHasher func() hash.Hash
	// hasher is only used by the writer, readers use their own
	hasher hash.Hash

	store LeafStore
	view  treeView

	log   logger.Logger
	logID uuid.UUID
}

// New creates an accumulator. If the configured leaf store already holds
// leaves, the tree and its root history are rebuilt by replaying them in
// order.
func New(opts ...Option) (*Accumulator, error) {
	o := newOptions(opts...)

	hasher := o.newHasher()
	if err := checkHasher(hasher); err != nil {
		return nil, err
	}

	a := &Accumulator{
		newHasher: o.newHasher,
		hasher:    hasher,
		store:     o.store,
		view: treeView{
			root:    ZeroHash,
			history: NewRootHistory(),
		},
		log:   o.log,
		logID: o.logID,
	}

	if err := a.replay(); err != nil {
		return nil, err
	}
	return a, nil
}

// replay rebuilds the interior nodes and root history from the leaf store
func (a *Accumulator) replay() error {
	all := a.store.Leaves()
	for n := 1; n <= len(all); n++ {
		a.view.leaves = all[:n:n]
		a.view.nodes, a.view.root = appendLeaf(a.hasher, a.view.nodes, a.view.leaves)
		a.view.history.Add(a.view.root)
	}
	a.view.leaves = all[:len(all):len(all)]
	if a.log != nil && len(all) > 0 {
		a.log.Debugf("replayed %d leaves, root %s", len(all), a.view.root)
	}
	return nil
}

// LogID identifies the log this accumulator commits to
func (a *Accumulator) LogID() uuid.UUID {
	return a.logID
}

// NewHasher returns a fresh instance of the hash function fixed at
// construction.
func (a *Accumulator) NewHasher() hash.Hash {
	return a.newHasher()
}

// AddLeaf appends value at the next position, recomputes the root and records
// it in the root history. Returns the position of the new leaf.
func (a *Accumulator) AddLeaf(value Hash) (uint64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	i, err := a.store.Append(value)
	if err != nil {
		return 0, err
	}
	if i != a.view.leafCount() {
		return 0, fmt.Errorf(
			"%w: got %d, expected %d", ErrLeafStoreInconsistent, i, a.view.leafCount())
	}

	a.view.leaves = a.store.Leaves()
	a.view.nodes, a.view.root = appendLeaf(a.hasher, a.view.nodes, a.view.leaves)
	added := a.view.history.Add(a.view.root)

	if a.log != nil {
		a.log.Debugf("AddLeaf: i=%d, root=%s, new=%v", i, a.view.root, added)
	}
	return i, nil
}

func (a *Accumulator) LeafCount() uint64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.view.leafCount()
}

// Leaves returns the full ordered leaf sequence, suitable for recomputing the
// root independently with ComputeRoot.
func (a *Accumulator) Leaves() []Hash {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]Hash(nil), a.view.leaves...)
}

func (a *Accumulator) Leaf(i uint64) (Hash, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.view.leaf(i)
}

// MerkleRoot returns the current root
func (a *Accumulator) MerkleRoot() Hash {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.view.root
}

// IsValidRoot reports whether root is any root this accumulator has held,
// including the empty tree root.
func (a *Accumulator) IsValidRoot(root Hash) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.view.history.Contains(root)
}

// Roots returns the root history in the order the roots were first produced
func (a *Accumulator) Roots() []Hash {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]Hash(nil), a.view.history.Roots()...)
}

// GenerateMerkleProof returns the inclusion proof for leaf i against the
// current root.
func (a *Accumulator) GenerateMerkleProof(i uint64) ([]Hash, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.view.generateProof(i)
}

// ValidateProof checks proof for leaf i against root, which may be the current
// root or any earlier one.
//
// The position, the proof length (for the current leaf count) and the
// membership of root in the history are contract checks and fail with
// ErrPositionOutOfBounds, ErrInvalidProofLength and ErrRootDoesNotExist
// respectively. A well formed proof that does not reproduce root returns
// false and no error.
func (a *Accumulator) ValidateProof(i uint64, proof []Hash, root Hash) (bool, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.view.validateProof(a.newHasher(), i, proof, root)
}

// ValidateProofAgainstCurrentRoot is the variant for callers that only ever
// verify against the live root. The history is not consulted.
func (a *Accumulator) ValidateProofAgainstCurrentRoot(i uint64, proof []Hash) (bool, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.view.validateProofAgainstCurrentRoot(a.newHasher(), i, proof)
}

// Snapshot captures the current state. The snapshot is immutable and is not
// affected by later appends.
func (a *Accumulator) Snapshot() *Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return &Snapshot{
		view:      a.view.clone(),
		newHasher: a.newHasher,
		logID:     a.logID,
	}
}
