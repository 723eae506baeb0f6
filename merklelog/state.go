package merklelog

import (
	"github.com/forestrie/go-merkleaccumulator/accumulator"
	"github.com/google/uuid"
)

// AccumulatorState is the signed commitment to a log state.
type AccumulatorState struct {
	// The number of leaves the root was computed over. Every later state of the
	// same log still holds this root in its history, so old receipts remain
	// verifiable.
	LeafCount uint64 `cbor:"1,keyasint"`
	Root      []byte `cbor:"2,keyasint"`
	// Timestamp is the unix time (milliseconds) read at the time the root was
	// signed. Including it allows the same root to be re-signed.
	Timestamp int64  `cbor:"3,keyasint"`
	LogID     []byte `cbor:"4,keyasint"`
}

func NewAccumulatorState(snap *accumulator.Snapshot, timestamp int64) AccumulatorState {
	logID := snap.LogID()
	return AccumulatorState{
		LeafCount: snap.LeafCount(),
		Root:      snap.MerkleRoot().Bytes(),
		Timestamp: timestamp,
		LogID:     logID[:],
	}
}

func (s AccumulatorState) UUID() (uuid.UUID, error) {
	return uuid.FromBytes(s.LogID)
}
