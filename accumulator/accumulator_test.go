package accumulator

import (
	"crypto/sha256"
	"crypto/sha512"
	"sync"
	"testing"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccumulator_emptyTree(t *testing.T) {
	a := newTestAccumulator(t, nil)

	assert.Equal(t, ZeroHash, a.MerkleRoot())
	assert.Equal(t, uint64(0), a.LeafCount())
	assert.Empty(t, a.Leaves())
	assert.True(t, a.IsValidRoot(ZeroHash))
	assert.Equal(t, []Hash{ZeroHash}, a.Roots())

	_, err := a.Leaf(0)
	assert.ErrorIs(t, err, ErrPositionOutOfBounds)
	_, err = a.GenerateMerkleProof(0)
	assert.ErrorIs(t, err, ErrPositionOutOfBounds)
	_, err = a.ValidateProof(0, nil, ZeroHash)
	assert.ErrorIs(t, err, ErrPositionOutOfBounds)
}

func TestAccumulator_singleLeaf(t *testing.T) {
	leaf := keccak([]byte("test"))
	a := newTestAccumulator(t, []Hash{leaf})

	assert.Equal(t, leaf, a.MerkleRoot())

	proof, err := a.GenerateMerkleProof(0)
	require.NoError(t, err)
	assert.Empty(t, proof)

	ok, err := a.ValidateProof(0, proof, leaf)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAccumulator_fourLeaves(t *testing.T) {
	h := numberedLeaves(4)
	a := newTestAccumulator(t, h)

	want := keccakPair(keccakPair(h[0], h[1]), keccakPair(h[2], h[3]))
	assert.Equal(t, want, a.MerkleRoot())
	assert.Equal(t, uint64(4), a.LeafCount())
	assert.Equal(t, h, a.Leaves())

	for i := range h {
		got, err := a.Leaf(uint64(i))
		require.NoError(t, err)
		assert.Equal(t, h[i], got)
	}
}

func TestAccumulator_fiveLeavesDuplicatesLast(t *testing.T) {
	h := numberedLeaves(5)
	a := newTestAccumulator(t, h)

	padded := append(append([]Hash(nil), h...), h[4])
	level1 := []Hash{
		keccakPair(padded[0], padded[1]),
		keccakPair(padded[2], padded[3]),
		keccakPair(padded[4], padded[5]),
	}
	level2 := []Hash{
		keccakPair(level1[0], level1[1]),
		keccakPair(level1[2], level1[2]),
	}
	assert.Equal(t, keccakPair(level2[0], level2[1]), a.MerkleRoot())
	assert.Equal(t, ComputeRoot(DefaultHasher(), a.Leaves()), a.MerkleRoot())
}

func TestAccumulator_proofRoundTripAndTamper(t *testing.T) {
	a := newTestAccumulator(t, numberedLeaves(4))
	root := a.MerkleRoot()

	proof, err := a.GenerateMerkleProof(0)
	require.NoError(t, err)
	require.Len(t, proof, 2)

	ok, err := a.ValidateProof(0, proof, root)
	require.NoError(t, err)
	assert.True(t, ok)

	// a well formed but wrong proof is a plain false
	tampered := append([]Hash(nil), proof...)
	tampered[1][0] ^= 0xff
	ok, err = a.ValidateProof(0, tampered, root)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = a.ValidateProof(0, []Hash{ZeroHash, ZeroHash}, root)
	require.NoError(t, err)
	assert.False(t, ok)

	// a proof for a different leaf
	other, err := a.GenerateMerkleProof(1)
	require.NoError(t, err)
	ok, err = a.ValidateProof(0, other, root)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAccumulator_validateProofContract(t *testing.T) {
	a := newTestAccumulator(t, numberedLeaves(4))
	root := a.MerkleRoot()

	tests := []struct {
		name    string
		i       uint64
		proof   []Hash
		root    Hash
		wantErr error
	}{
		{"position past the end", 4, []Hash{ZeroHash, ZeroHash}, root, ErrPositionOutOfBounds},
		{"proof too short", 0, []Hash{ZeroHash}, root, ErrInvalidProofLength},
		{"proof too long", 0, []Hash{ZeroHash, ZeroHash, ZeroHash}, root, ErrInvalidProofLength},
		{"empty proof", 0, nil, root, ErrInvalidProofLength},
		{"root never produced", 0, []Hash{ZeroHash, ZeroHash}, hashNum(99), ErrRootDoesNotExist},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := a.ValidateProof(tt.i, tt.proof, tt.root)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.False(t, ok)
		})
	}
	assert.False(t, a.IsValidRoot(hashNum(99)))
}

func TestAccumulator_roundTripAllSizes(t *testing.T) {
	a := newTestAccumulator(t, nil)

	for n := uint64(1); n <= 40; n++ {
		_, err := a.AddLeaf(hashNum(n))
		require.NoError(t, err)
		root := a.MerkleRoot()
		require.Equal(t, ComputeRoot(DefaultHasher(), a.Leaves()), root, "n=%d", n)

		for i := uint64(0); i < n; i++ {
			proof, err := a.GenerateMerkleProof(i)
			require.NoError(t, err)
			require.Len(t, proof, ProofLength(n))

			ok, err := a.ValidateProof(i, proof, root)
			require.NoError(t, err)
			require.True(t, ok, "n=%d, i=%d", n, i)

			ok, err = a.ValidateProofAgainstCurrentRoot(i, proof)
			require.NoError(t, err)
			require.True(t, ok, "n=%d, i=%d", n, i)
		}
	}
}

func TestAccumulator_historicalRoots(t *testing.T) {
	h := numberedLeaves(6)
	a := newTestAccumulator(t, h[:3])
	old := a.MerkleRoot()

	for _, leaf := range h[3:] {
		_, err := a.AddLeaf(leaf)
		require.NoError(t, err)
	}
	require.NotEqual(t, old, a.MerkleRoot())
	assert.True(t, a.IsValidRoot(old))

	// every prefix root is in the history, in order
	want := []Hash{ZeroHash}
	for n := 1; n <= len(h); n++ {
		want = append(want, ComputeRoot(DefaultHasher(), h[:n]))
	}
	assert.Equal(t, want, a.Roots())

	// proofs are always generated against the current leaves. Checking one
	// against an old root is permitted, it just doesn't verify.
	proof, err := a.GenerateMerkleProof(0)
	require.NoError(t, err)
	ok, err := a.ValidateProof(0, proof, old)
	require.NoError(t, err)
	assert.False(t, ok)

	// the current root variant does not consult the history
	ok, err = a.ValidateProofAgainstCurrentRoot(0, proof)
	require.NoError(t, err)
	assert.True(t, ok)
	_, err = a.ValidateProofAgainstCurrentRoot(0, proof[:1])
	assert.ErrorIs(t, err, ErrInvalidProofLength)
}

func TestAccumulator_duplicateRootsAreRecordedOnce(t *testing.T) {
	x := hashNum(1)

	// three and four copies of x produce the same root
	a := newTestAccumulator(t, []Hash{x, x, x, x})
	assert.Len(t, a.Roots(), 4)

	// a zero leaf reproduces the empty tree root
	b := newTestAccumulator(t, []Hash{ZeroHash})
	assert.Equal(t, []Hash{ZeroHash}, b.Roots())
}

func TestAccumulator_hasherOptions(t *testing.T) {
	h := numberedLeaves(3)

	a := newTestAccumulator(t, h, WithHasher(sha256.New))
	assert.Equal(t, ComputeRoot(sha256.New(), h), a.MerkleRoot())
	assert.NotEqual(t, ComputeRoot(DefaultHasher(), h), a.MerkleRoot())

	_, err := New(WithHasher(sha512.New))
	assert.ErrorIs(t, err, ErrHasherSize)
}

func TestAccumulator_logIDAndLogger(t *testing.T) {
	logger.New("NOOP")
	defer logger.OnExit()

	id := uuid.MustParse("01947000-3456-780f-bfa9-29881e3bac88")
	a := newTestAccumulator(t, numberedLeaves(2), WithLogID(id), WithLogger(logger.Sugar.WithServiceName("accumulator")))
	assert.Equal(t, id, a.LogID())

	b := newTestAccumulator(t, nil)
	assert.NotEqual(t, uuid.Nil, b.LogID())
}

func TestAccumulator_replaysExistingStore(t *testing.T) {
	h := numberedLeaves(7)
	store := NewMemLeafStore()
	for _, leaf := range h {
		_, err := store.Append(leaf)
		require.NoError(t, err)
	}

	a, err := New(WithLeafStore(store))
	require.NoError(t, err)

	want := newTestAccumulator(t, h)
	assert.Equal(t, want.MerkleRoot(), a.MerkleRoot())
	assert.Equal(t, want.Roots(), a.Roots())

	// and continues to append where the store left off
	i, err := a.AddLeaf(hashNum(100))
	require.NoError(t, err)
	assert.Equal(t, uint64(7), i)
}

func TestAccumulator_snapshotIsImmutable(t *testing.T) {
	a := newTestAccumulator(t, numberedLeaves(5))
	s := a.Snapshot()
	root := s.MerkleRoot()

	for i := uint64(5); i < 12; i++ {
		_, err := a.AddLeaf(hashNum(i))
		require.NoError(t, err)
	}

	assert.Equal(t, uint64(5), s.LeafCount())
	assert.Equal(t, root, s.MerkleRoot())
	assert.Len(t, s.Roots(), 6)
	assert.False(t, s.IsValidRoot(a.MerkleRoot()))
	assert.Equal(t, a.LogID(), s.LogID())

	for i := uint64(0); i < 5; i++ {
		proof, err := s.GenerateMerkleProof(i)
		require.NoError(t, err)
		ok, err := s.ValidateProof(i, proof, root)
		require.NoError(t, err)
		assert.True(t, ok)
		ok, err = s.ValidateProofAgainstCurrentRoot(i, proof)
		require.NoError(t, err)
		assert.True(t, ok)

		leaf, err := s.Leaf(i)
		require.NoError(t, err)
		assert.Equal(t, hashNum(i), leaf)
	}
	_, err := s.GenerateMerkleProof(5)
	assert.ErrorIs(t, err, ErrPositionOutOfBounds)
	assert.Equal(t, numberedLeaves(5), s.Leaves())
}

func TestAccumulator_concurrentAppendsAndReads(t *testing.T) {
	a := newTestAccumulator(t, nil)

	const writers = 8
	const perWriter = 64

	positions := make(chan uint64, writers*perWriter)

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				i, err := a.AddLeaf(hashNum(uint64(w*perWriter + j)))
				if err != nil {
					t.Errorf("AddLeaf: %v", err)
					return
				}
				positions <- i
			}
		}(w)
	}
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				s := a.Snapshot()
				n := s.LeafCount()
				if n == 0 {
					continue
				}
				i := uint64(j) % n
				proof, err := s.GenerateMerkleProof(i)
				if err != nil {
					t.Errorf("GenerateMerkleProof: %v", err)
					return
				}
				ok, err := s.ValidateProof(i, proof, s.MerkleRoot())
				if err != nil || !ok {
					t.Errorf("ValidateProof: ok=%v, err=%v", ok, err)
					return
				}
			}
		}()
	}
	wg.Wait()
	close(positions)

	seen := make(map[uint64]bool)
	for i := range positions {
		require.False(t, seen[i], "position %d assigned twice", i)
		seen[i] = true
	}
	require.Len(t, seen, writers*perWriter)
	for i := uint64(0); i < writers*perWriter; i++ {
		require.True(t, seen[i])
	}
	assert.Equal(t, ComputeRoot(DefaultHasher(), a.Leaves()), a.MerkleRoot())
	assert.Len(t, a.Roots(), writers*perWriter+1)
}
