package accumulator

import (
	"encoding/hex"
	"fmt"
	"hash"

	"golang.org/x/crypto/sha3"
)

// ValueBytes is the fixed width of leaves, roots and proof elements
const ValueBytes = 32

// Hash is a 256 bit leaf, node or root value
type Hash [ValueBytes]byte

// ZeroHash is the root of the empty tree
var ZeroHash Hash

// DefaultHasher returns the Keccak-256 hasher used when no other is configured.
func DefaultHasher() hash.Hash {
	return sha3.NewLegacyKeccak256()
}

// HashFromBytes copies b into a Hash. b must be exactly ValueBytes long.
func HashFromBytes(b []byte) (Hash, error) {
	var h Hash
	if len(b) != ValueBytes {
		return h, fmt.Errorf("%w: got %d", ErrValueSize, len(b))
	}
	copy(h[:], b)
	return h, nil
}

// HashesFromBytes converts a list of byte slices, as found in encoded
// snapshots, into Hashes.
func HashesFromBytes(values [][]byte) ([]Hash, error) {
	hashes := make([]Hash, len(values))
	for i, v := range values {
		h, err := HashFromBytes(v)
		if err != nil {
			return nil, fmt.Errorf("%w: value %d", err, i)
		}
		hashes[i] = h
	}
	return hashes, nil
}

// HashesToBytes is the inverse of HashesFromBytes
func HashesToBytes(hashes []Hash) [][]byte {
	values := make([][]byte, len(hashes))
	for i := range hashes {
		values[i] = hashes[i].Bytes()
	}
	return values
}

// Bytes returns a copy of the hash as a slice
func (h Hash) Bytes() []byte {
	b := make([]byte, ValueBytes)
	copy(b, h[:])
	return b
}

func (h Hash) IsZero() bool {
	return h == ZeroHash
}

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// HashPair returns H(left || right). The order of the operands is part of the
// proof format, left is always written first.
func HashPair(hasher hash.Hash, left, right Hash) Hash {
	var parent Hash
	hasher.Reset()
	hasher.Write(left[:])
	hasher.Write(right[:])
	hasher.Sum(parent[:0])
	return parent
}

// checkHasher confirms the hasher produces digests that fit a Hash
func checkHasher(hasher hash.Hash) error {
	if hasher.Size() != ValueBytes {
		return fmt.Errorf("%w: got %d", ErrHasherSize, hasher.Size())
	}
	return nil
}
