package merklelog

import (
	"fmt"

	dtcbor "github.com/datatrails/go-datatrails-common/cbor"
	"github.com/forestrie/go-merkleaccumulator/accumulator"
	"github.com/google/uuid"
)

const SnapshotVersion1 = 1

// SnapshotRecord is the persisted form of an accumulator. Leaves and roots are
// restored together, roots in the order they were produced.
type SnapshotRecord struct {
	Version uint16   `cbor:"1,keyasint"`
	LogID   []byte   `cbor:"2,keyasint"`
	Leaves  [][]byte `cbor:"3,keyasint"`
	Roots   [][]byte `cbor:"4,keyasint"`
}

func EncodeSnapshot(codec dtcbor.CBORCodec, snap *accumulator.Snapshot) ([]byte, error) {
	logID := snap.LogID()
	rec := SnapshotRecord{
		Version: SnapshotVersion1,
		LogID:   logID[:],
		Leaves:  accumulator.HashesToBytes(snap.Leaves()),
		Roots:   accumulator.HashesToBytes(snap.Roots()),
	}
	return codec.MarshalCBOR(rec)
}

// DecodeSnapshot restores the accumulator held in data. The log id recorded in
// the snapshot is applied after opts.
func DecodeSnapshot(codec dtcbor.CBORCodec, data []byte, opts ...accumulator.Option) (*accumulator.Accumulator, error) {
	var rec SnapshotRecord
	if err := codec.UnmarshalInto(data, &rec); err != nil {
		return nil, err
	}
	if rec.Version != SnapshotVersion1 {
		return nil, fmt.Errorf("%w: %d", ErrSnapshotVersion, rec.Version)
	}
	logID, err := uuid.FromBytes(rec.LogID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLogIDMismatch, err)
	}
	leaves, err := accumulator.HashesFromBytes(rec.Leaves)
	if err != nil {
		return nil, err
	}
	roots, err := accumulator.HashesFromBytes(rec.Roots)
	if err != nil {
		return nil, err
	}
	opts = append(opts[:len(opts):len(opts)], accumulator.WithLogID(logID))
	return accumulator.Restore(leaves, roots, opts...)
}
