package merklelog

import (
	"bytes"
	"crypto"
	"fmt"

	dtcbor "github.com/datatrails/go-datatrails-common/cbor"
	"github.com/forestrie/go-merkleaccumulator/accumulator"
)

// Checkpoint is a decoded, not yet verified, signed root
type Checkpoint struct {
	Sign1Message *Sign1Message
	State        AccumulatorState
}

func DecodeCheckpoint(data []byte) (*Checkpoint, error) {
	signed, state, err := DecodeSignedRoot(data)
	if err != nil {
		return nil, err
	}
	return &Checkpoint{Sign1Message: signed, State: state}, nil
}

// VerifyCheckpoint recovers the root the checkpoint attests to from the leaves
// of snap, and verifies the signature over the completed state. The recovered
// root must be one the accumulator has produced. On success the returned state
// has its root set.
func VerifyCheckpoint(
	codec dtcbor.CBORCodec, publicKey crypto.PublicKey, snap *accumulator.Snapshot, cp *Checkpoint, external []byte,
) (AccumulatorState, error) {

	state := cp.State
	logID := snap.LogID()
	if !bytes.Equal(state.LogID, logID[:]) {
		return AccumulatorState{}, fmt.Errorf("%w: checkpoint for %x, log is %s", ErrLogIDMismatch, state.LogID, logID)
	}
	if state.LeafCount > snap.LeafCount() {
		return AccumulatorState{}, fmt.Errorf(
			"%w: %d > %d", ErrCheckpointAhead, state.LeafCount, snap.LeafCount())
	}

	root := accumulator.ComputeRoot(snap.NewHasher(), snap.Leaves()[:state.LeafCount])
	if !snap.IsValidRoot(root) {
		return AccumulatorState{}, fmt.Errorf("%w: %s", accumulator.ErrRootDoesNotExist, root)
	}
	state.Root = root.Bytes()

	if err := VerifySignedRoot(codec, publicKey, cp.Sign1Message, state, external); err != nil {
		return AccumulatorState{}, err
	}
	return state, nil
}
