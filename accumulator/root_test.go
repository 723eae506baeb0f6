package accumulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeRoot(t *testing.T) {
	h := numberedLeaves(5)

	tests := []struct {
		name   string
		leaves []Hash
		want   Hash
	}{
		{"empty tree has the zero root", nil, ZeroHash},
		{"single leaf is its own root", []Hash{keccak([]byte("test"))}, keccak([]byte("test"))},
		{"two leaves", h[:2], keccakPair(h[0], h[1])},
		{
			"three leaves, the third is paired with itself",
			h[:3],
			keccakPair(keccakPair(h[0], h[1]), keccakPair(h[2], h[2])),
		},
		{
			"four leaves",
			h[:4],
			keccakPair(keccakPair(h[0], h[1]), keccakPair(h[2], h[3])),
		},
		{
			"five leaves, duplication applies at levels 0 and 1",
			h[:5],
			keccakPair(
				keccakPair(keccakPair(h[0], h[1]), keccakPair(h[2], h[3])),
				keccakPair(keccakPair(h[4], h[4]), keccakPair(h[4], h[4])),
			),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeRoot(DefaultHasher(), tt.leaves)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeRootDeterministic(t *testing.T) {
	for n := uint64(1); n <= 33; n++ {
		leaves := numberedLeaves(n)
		first := ComputeRoot(DefaultHasher(), leaves)
		second := ComputeRoot(DefaultHasher(), leaves)
		require.Equal(t, first, second, "n=%d", n)
	}
}

func TestProofLength(t *testing.T) {
	tests := []struct {
		leafCount uint64
		want      int
	}{
		{0, 0},
		{1, 0},
		{2, 1},
		{3, 2},
		{4, 2},
		{5, 3},
		{8, 3},
		{9, 4},
		{16, 4},
		{17, 5},
		{1 << 20, 20},
		{1<<20 + 1, 21},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ProofLength(tt.leafCount), "leafCount=%d", tt.leafCount)
	}
}

func TestLevels(t *testing.T) {
	hasher := DefaultHasher()
	h := numberedLeaves(5)

	levels := Levels(hasher, h)
	require.Len(t, levels, 4)

	assert.Equal(t, h, levels[0])
	assert.Len(t, levels[1], 3)
	assert.Len(t, levels[2], 2)
	assert.Len(t, levels[3], 1)
	assert.Equal(t, ComputeRoot(hasher, h), levels[3][0])

	assert.Nil(t, Levels(hasher, nil))
}

func TestHashFromBytes(t *testing.T) {
	want := hashNum(7)

	got, err := HashFromBytes(want.Bytes())
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = HashFromBytes([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrValueSize)

	_, err = HashesFromBytes([][]byte{want.Bytes(), {1}})
	assert.ErrorIs(t, err, ErrValueSize)

	hashes, err := HashesFromBytes(HashesToBytes(numberedLeaves(3)))
	require.NoError(t, err)
	assert.Equal(t, numberedLeaves(3), hashes)
}
