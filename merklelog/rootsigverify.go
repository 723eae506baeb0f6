package merklelog

import (
	"crypto"

	dtcbor "github.com/datatrails/go-datatrails-common/cbor"
)

// DecodeSignedRoot decodes the AccumulatorState from the signed message.
// See VerifySignedRoot for how to complete the verification.
func DecodeSignedRoot(msg []byte) (*Sign1Message, AccumulatorState, error) {
	signed, err := NewSign1MessageFromCBOR(msg)
	if err != nil {
		return nil, AccumulatorState{}, err
	}

	var unverifiedState AccumulatorState
	if err = signed.UnmarshalPayload(&unverifiedState); err != nil {
		return nil, AccumulatorState{}, err
	}
	return signed, unverifiedState, nil
}

// VerifySignedRoot applies the provided state to the signed message and
// verifies the result.
//
// Verification of a signed root is a 3 step process:
//  1. Use DecodeSignedRoot to obtain the AccumulatorState from the signed
//     message. This state will not verify as the root has been removed.
//  2. Use AccumulatorState.LeafCount to recompute the root from the log.
//  3. Set the recomputed root on the state and call this function.
//
// VerifyCheckpoint does all three against an accumulator snapshot.
func VerifySignedRoot(
	codec dtcbor.CBORCodec, publicKey crypto.PublicKey, signed *Sign1Message, unverifiedState AccumulatorState, external []byte) error {

	var err error
	signed.Payload, err = codec.MarshalCBOR(unverifiedState)
	if err != nil {
		return err
	}
	return signed.VerifyWithPublicKey(publicKey, external)
}
