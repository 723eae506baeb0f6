package accumulator

import (
	"fmt"
	"hash"
)

// InclusionProof collects the siblings on the path from leaf i to the root.
//
// For the five leaf tree below, the proof for h5 (i=4) is [h5, c, p]:
//
//	3                  r
//	                /     \
//	2          p              q
//	          /  \          /   \
//	1       a      b      c      c
//	       / \    / \    / \
//	0     h1  h2 h3  h4 h5  h5
func InclusionProof(hasher hash.Hash, leaves []Hash, i uint64) ([]Hash, error) {

	if i >= uint64(len(leaves)) {
		return nil, fmt.Errorf("%w: %d >= %d", ErrPositionOutOfBounds, i, len(leaves))
	}

	levels := Levels(hasher, leaves)

	// the last level is the root, it has no sibling
	proof := make([]Hash, 0, len(levels)-1)
	for _, level := range levels[:len(levels)-1] {
		proof = append(proof, level[siblingIndex(uint64(len(level)), i)])
		i /= 2
	}
	return proof, nil
}

// InclusionProofPath returns, for each level, the index within that level of
// the sibling of the path node for leaf i. It allows tooling to audit the
// individual proof elements. An index equal to the path node index means the
// node was paired with itself.
func InclusionProofPath(leafCount uint64, i uint64) ([]uint64, error) {

	if i >= leafCount {
		return nil, fmt.Errorf("%w: %d >= %d", ErrPositionOutOfBounds, i, leafCount)
	}

	var path []uint64
	for n := leafCount; n > 1; n = (n + 1) / 2 {
		path = append(path, siblingIndex(n, i))
		i /= 2
	}
	return path, nil
}

// siblingIndex returns the index of the sibling of i in a level of n nodes
func siblingIndex(n uint64, i uint64) uint64 {
	if i&1 == 1 {
		return i - 1
	}
	// the last node of an odd level is its own sibling
	if i+1 == n {
		return i
	}
	return i + 1
}
