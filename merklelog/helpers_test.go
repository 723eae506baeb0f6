package merklelog

import (
	"testing"

	"github.com/forestrie/go-merkleaccumulator/accumulator"
	"github.com/stretchr/testify/require"
)

func accumulatorHash(t *testing.T, b []byte) accumulator.Hash {
	h, err := accumulator.HashFromBytes(b)
	require.NoError(t, err)
	return h
}
