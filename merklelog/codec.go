package merklelog

import (
	dtcbor "github.com/datatrails/go-datatrails-common/cbor"
	"github.com/fxamacker/cbor/v2"
)

// NewCodec returns the deterministic codec used for snapshots and signed
// states. Signatures are made over the encoded state, so signer and verifier
// must use the same encoding.
func NewCodec() (dtcbor.CBORCodec, error) {
	codec, err := dtcbor.NewCBORCodec(
		dtcbor.NewDeterministicEncOpts(),
		newDecOptions(), // unsigned int decodes to uint64
	)
	if err != nil {
		return dtcbor.CBORCodec{}, err
	}
	return codec, nil
}

func newDecOptions() cbor.DecOptions {
	return dtcbor.NewDeterministicDecOpts()
}

// newHeaderDecOptions converts integer map keys to int64 so that header and
// claim labels can be looked up with signed keys.
func newHeaderDecOptions() cbor.DecOptions {
	opts := dtcbor.NewDeterministicDecOpts()
	opts.IntDec = cbor.IntDecConvertSigned
	return opts
}
