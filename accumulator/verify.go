package accumulator

import "hash"

// IncludedRoot folds proof into leaf and returns the root it commits to.
//
// At each level, when the index is even the path node is the left operand,
// otherwise it is the right. No bounds or length checks are made here.
func IncludedRoot(hasher hash.Hash, i uint64, leaf Hash, proof []Hash) Hash {
	root := leaf
	for _, sibling := range proof {
		if i&1 == 0 {
			root = HashPair(hasher, root, sibling)
		} else {
			root = HashPair(hasher, sibling, root)
		}
		i /= 2
	}
	return root
}

// VerifyInclusionPath returns true if leaf, at position i, combined with proof
// reproduces root.
//
// This is the off-structure check for auditors that hold only the leaf, the
// proof and a root obtained from elsewhere. It does not know the tree size and
// so can't check the proof length; see Accumulator.ValidateProof for that.
func VerifyInclusionPath(hasher hash.Hash, leaf Hash, i uint64, proof []Hash, root Hash) bool {
	return IncludedRoot(hasher, i, leaf, proof) == root
}
