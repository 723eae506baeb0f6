package accumulator

/*

# Append-only binary merkle accumulator

Leaves are 32 byte values appended one at a time. Each append produces a new
root, and every root the accumulator has ever held is remembered so that
inclusion proofs can be checked against an earlier, published, root as well as
the current one.

## Tree shape

Level 0 is the ordered leaf sequence. Each level is paired left to right to
produce the next:

	parent = H(left || right)

When a level has an odd number of nodes (and more than one), the last node is
paired with itself. This applies at every level, so the duplicated node may be
a leaf or an interior node. Given five leaves:

	3                  r
	                /     \
	2          p              q
	          /  \          /   \
	1       a      b      c      c
	       / \    / \    / \
	0     h1  h2 h3  h4 h5  h5

The empty tree has the all zero root, and the root of a single leaf tree is the
leaf itself.

## Proofs

A proof is the list of siblings met when walking from a leaf to the root, leaf
level first. Its length is the height of the tree, ceil(log2(n)), for n > 1 and
zero otherwise. Because the last node of an odd level is duplicated, every node
below the root has exactly one sibling, possibly itself.

## Functional primitives vs the Accumulator

As with the rest of this module, the low level functions (ComputeRoot,
InclusionProof, IncludedRoot, VerifyInclusionPath) work on plain values and
place a burden of knowledge on the caller. The Accumulator type layers the
safety rails on top: bounds checks, proof length checks and root history
membership.
*/
