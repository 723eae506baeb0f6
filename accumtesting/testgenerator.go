package accumtesting

import (
	"encoding/binary"
	"math/rand"

	"github.com/forestrie/go-merkleaccumulator/accumulator"
	"golang.org/x/crypto/sha3"
)

// TestGenerator produces a deterministic sequence of leaf values
type TestGenerator struct {
	rand *rand.Rand
	seq  uint64
}

func NewTestGenerator(cfg TestConfig) *TestGenerator {
	return &TestGenerator{rand: rand.New(rand.NewSource(cfg.StartTimeMS))}
}

// NextLeaf returns the keccak hash of the sequence number and 32 random
// bytes.
func (g *TestGenerator) NextLeaf() accumulator.Hash {
	var buf [8 + accumulator.ValueBytes]byte
	binary.BigEndian.PutUint64(buf[:8], g.seq)
	g.rand.Read(buf[8:])
	g.seq++

	var leaf accumulator.Hash
	h := sha3.NewLegacyKeccak256()
	h.Write(buf[:])
	h.Sum(leaf[:0])
	return leaf
}

func (g *TestGenerator) GenerateLeaves(n int) []accumulator.Hash {
	leaves := make([]accumulator.Hash, n)
	for i := range leaves {
		leaves[i] = g.NextLeaf()
	}
	return leaves
}
