package accumulator

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/sha3"
)

func keccak(data []byte) Hash {
	var h Hash
	hasher := sha3.NewLegacyKeccak256()
	hasher.Write(data)
	hasher.Sum(h[:0])
	return h
}

// keccakPair is written out long hand so that tests don't depend on HashPair
func keccakPair(left, right Hash) Hash {
	b := make([]byte, 0, 2*ValueBytes)
	b = append(b, left[:]...)
	b = append(b, right[:]...)
	return keccak(b)
}

// hashNum returns the hash of the big endian encoding of num
func hashNum(num uint64) Hash {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, num)
	return keccak(b)
}

func numberedLeaves(n uint64) []Hash {
	leaves := make([]Hash, n)
	for i := uint64(0); i < n; i++ {
		leaves[i] = hashNum(i)
	}
	return leaves
}

func newTestAccumulator(t *testing.T, leaves []Hash, opts ...Option) *Accumulator {
	a, err := New(opts...)
	require.NoError(t, err)
	for i, leaf := range leaves {
		got, err := a.AddLeaf(leaf)
		require.NoError(t, err)
		require.Equal(t, uint64(i), got)
	}
	return a
}
