package accumulator

import "hash"

// ComputeRoot returns the merkle root of leaves.
//
// The empty sequence has the zero root, a single leaf is its own root. For
// every level with an odd number of nodes the last node is paired with itself.
func ComputeRoot(hasher hash.Hash, leaves []Hash) Hash {
	if len(leaves) == 0 {
		return ZeroHash
	}

	level := leaves
	for len(level) > 1 {
		level = nextLevel(hasher, level)
	}
	return level[0]
}

// Levels returns every level of the tree, leaves first and the root level
// last. The leaf level is the provided slice, it is not copied. Odd levels are
// not padded, the duplicate is implied.
func Levels(hasher hash.Hash, leaves []Hash) [][]Hash {
	if len(leaves) == 0 {
		return nil
	}
	levels := [][]Hash{leaves}
	level := leaves
	for len(level) > 1 {
		level = nextLevel(hasher, level)
		levels = append(levels, level)
	}
	return levels
}

// nextLevel pairs the nodes of level. len(level) must be > 1
func nextLevel(hasher hash.Hash, level []Hash) []Hash {
	next := make([]Hash, (len(level)+1)/2)
	for i := 0; i < len(level); i += 2 {
		left := level[i]
		right := left
		if i+1 < len(level) {
			right = level[i+1]
		}
		next[i/2] = HashPair(hasher, left, right)
	}
	return next
}

// ProofLength returns the number of siblings in a proof for any leaf of a tree
// with leafCount leaves. This is the height of the tree: ceil(log2(leafCount))
// for leafCount > 1, and 0 otherwise.
func ProofLength(leafCount uint64) int {
	height := 0
	for n := leafCount; n > 1; n = (n + 1) / 2 {
		height++
	}
	return height
}
