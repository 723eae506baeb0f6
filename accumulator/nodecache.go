package accumulator

import (
	"fmt"
	"hash"
)

// treeView is a read only view of the tree at a fixed leaf count.
//
// nodes holds the interior levels, nodes[0] being the parents of the leaves
// and the last entry the root level. Levels with an odd number of nodes are
// not padded, the duplicate of the last node is implied.
type treeView struct {
	leaves  []Hash
	nodes   [][]Hash
	root    Hash
	history *RootHistory
}

// appendLeaf updates the interior levels after leaves has grown by one, and
// returns the new root. Only the nodes on the path from the new leaf to the
// root change, so the cost is proportional to the height of the tree.
func appendLeaf(hasher hash.Hash, nodes [][]Hash, leaves []Hash) ([][]Hash, Hash) {

	level := leaves
	i := uint64(len(leaves) - 1)

	for d := 0; len(level) > 1; d++ {
		p := i / 2

		left := level[2*p]
		right := left
		if 2*p+1 < uint64(len(level)) {
			right = level[2*p+1]
		}
		parent := HashPair(hasher, left, right)

		if d == len(nodes) {
			nodes = append(nodes, nil)
		}
		if p < uint64(len(nodes[d])) {
			nodes[d][p] = parent
		} else {
			nodes[d] = append(nodes[d], parent)
		}

		level = nodes[d]
		i = p
	}
	return nodes, level[0]
}

// level returns level d of the tree, 0 being the leaves
func (v *treeView) level(d int) []Hash {
	if d == 0 {
		return v.leaves
	}
	return v.nodes[d-1]
}

func (v *treeView) leafCount() uint64 {
	return uint64(len(v.leaves))
}

func (v *treeView) leaf(i uint64) (Hash, error) {
	if i >= v.leafCount() {
		return Hash{}, fmt.Errorf("%w: %d >= %d", ErrPositionOutOfBounds, i, v.leafCount())
	}
	return v.leaves[i], nil
}

func (v *treeView) generateProof(i uint64) ([]Hash, error) {
	if i >= v.leafCount() {
		return nil, fmt.Errorf("%w: %d >= %d", ErrPositionOutOfBounds, i, v.leafCount())
	}
	height := ProofLength(v.leafCount())
	proof := make([]Hash, 0, height)
	for d := 0; d < height; d++ {
		level := v.level(d)
		proof = append(proof, level[siblingIndex(uint64(len(level)), i)])
		i /= 2
	}
	return proof, nil
}

// checkProofShape applies the contract checks shared by both verification
// variants and returns the leaf value at i
func (v *treeView) checkProofShape(i uint64, proof []Hash) (Hash, error) {
	leaf, err := v.leaf(i)
	if err != nil {
		return Hash{}, err
	}
	if want := ProofLength(v.leafCount()); len(proof) != want {
		return Hash{}, fmt.Errorf(
			"%w: got %d, want %d for %d leaves", ErrInvalidProofLength, len(proof), want, v.leafCount())
	}
	return leaf, nil
}

func (v *treeView) validateProof(hasher hash.Hash, i uint64, proof []Hash, root Hash) (bool, error) {
	leaf, err := v.checkProofShape(i, proof)
	if err != nil {
		return false, err
	}
	if !v.history.Contains(root) {
		return false, fmt.Errorf("%w: %s", ErrRootDoesNotExist, root)
	}
	return VerifyInclusionPath(hasher, leaf, i, proof, root), nil
}

func (v *treeView) validateProofAgainstCurrentRoot(hasher hash.Hash, i uint64, proof []Hash) (bool, error) {
	leaf, err := v.checkProofShape(i, proof)
	if err != nil {
		return false, err
	}
	return VerifyInclusionPath(hasher, leaf, i, proof, v.root), nil
}

// clone copies the interior levels so that later appends can't be observed.
// The leaves are shared, appends never write inside the captured range.
func (v *treeView) clone() treeView {
	c := treeView{
		leaves:  v.leaves[:len(v.leaves):len(v.leaves)],
		nodes:   make([][]Hash, len(v.nodes)),
		root:    v.root,
		history: v.history.Clone(),
	}
	for d, level := range v.nodes {
		c.nodes[d] = append([]Hash(nil), level...)
	}
	return c
}
