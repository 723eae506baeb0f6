package bloom

import (
	"crypto/sha256"
	"encoding/binary"
)

const bloomDomainV1 = 0xB1

// InitV1 initializes a region with a HeaderV1 sized for capacity elements.
//
// The caller must allocate region with at least RegionBytesV1(mBits), where:
//
//	mBits = uint32(bitsPerElement * capacity)
func InitV1(region []byte, capacity uint64, bitsPerElement uint64, k uint8) error {
	if capacity == 0 || bitsPerElement == 0 {
		return ErrBadMBits
	}
	if err := CheckBPE(bitsPerElement); err != nil {
		return err
	}
	mBits := MBitsSafeCast(MBitsV1(capacity, bitsPerElement))
	if mBits == 0 {
		return ErrMBitsOverflow
	}
	need := RegionBytesV1(mBits)
	if uint64(len(region)) < need {
		return ErrBadRegionSize
	}

	// Ensure clean initialization even if region is reused.
	clear(region[:need])

	return EncodeHeaderV1(region, HeaderV1{
		BitOrder:  BitOrderLSB0,
		K:         k,
		MBits:     mBits,
		NInserted: 0,
	})
}

// InsertV1 inserts elem and increments NInserted in the header.
func InsertV1(region []byte, elem []byte) error {
	if len(elem) != ValueBytes {
		return ErrBadElemSize
	}
	h, bitset, err := decodeRegionV1(region)
	if err != nil {
		return err
	}

	h1, h2 := hashPairV1(elem)
	setBitsLSB0(bitset, uint64(h.MBits), h.K, h1, h2)

	h.NInserted++
	return EncodeHeaderV1(region, h)
}

// MaybeContainsV1 checks membership for elem.
//
// Returns (false,nil) if the filter says "definitely not present".
// Returns (true,nil) if the filter says "maybe present".
func MaybeContainsV1(region []byte, elem []byte) (bool, error) {
	if len(elem) != ValueBytes {
		return false, ErrBadElemSize
	}
	h, bitset, err := decodeRegionV1(region)
	if err != nil {
		return false, err
	}

	h1, h2 := hashPairV1(elem)
	return testBitsLSB0(bitset, uint64(h.MBits), h.K, h1, h2), nil
}

func decodeRegionV1(region []byte) (HeaderV1, []byte, error) {
	h, ok, err := DecodeHeaderV1(region)
	if err != nil {
		return HeaderV1{}, nil, err
	}
	if !ok {
		return HeaderV1{}, nil, ErrNotInitialized
	}
	end := RegionBytesV1(h.MBits)
	if uint64(len(region)) < end {
		return HeaderV1{}, nil, ErrBadRegionSize
	}
	return h, region[HeaderBytesV1:end], nil
}

func hashPairV1(elem32 []byte) (h1 uint64, h2 uint64) {
	// SHA-256( 0xB1 || elem32 )
	var buf [1 + ValueBytes]byte
	buf[0] = bloomDomainV1
	copy(buf[1:], elem32)
	sum := sha256.Sum256(buf[:])
	h1 = readU64BE(sum[0:8])
	h2 = readU64BE(sum[8:16])
	if h2 == 0 {
		h2 = 1
	}
	return h1, h2
}

func setBitsLSB0(bitset []byte, mBits uint64, k uint8, h1, h2 uint64) {
	for i := uint64(0); i < uint64(k); i++ {
		j := (h1 + i*h2) % mBits
		byteIdx := j >> 3
		bit := uint8(j & 7)
		bitset[byteIdx] |= (1 << bit)
	}
}

func testBitsLSB0(bitset []byte, mBits uint64, k uint8, h1, h2 uint64) bool {
	for i := uint64(0); i < uint64(k); i++ {
		j := (h1 + i*h2) % mBits
		byteIdx := j >> 3
		bit := uint8(j & 7)
		if (bitset[byteIdx] & (1 << bit)) == 0 {
			return false
		}
	}
	return true
}

// Filter owns a region sized for a fixed capacity
type Filter struct {
	region   []byte
	capacity uint64
}

// NewFilter allocates and initializes a filter for capacity elements
func NewFilter(capacity uint64, bitsPerElement uint64, k uint8) (*Filter, error) {
	if err := CheckBPE(bitsPerElement); err != nil {
		return nil, err
	}
	mBits := MBitsSafeCast(MBitsV1(capacity, bitsPerElement))
	if mBits == 0 {
		return nil, ErrMBitsOverflow
	}
	f := &Filter{
		region:   make([]byte, RegionBytesV1(mBits)),
		capacity: capacity,
	}
	if err := InitV1(f.region, capacity, bitsPerElement, k); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Filter) Insert(elem []byte) error {
	return InsertV1(f.region, elem)
}

func (f *Filter) MaybeContains(elem []byte) (bool, error) {
	return MaybeContainsV1(f.region, elem)
}

func (f *Filter) Capacity() uint64 { return f.capacity }

// Full is true once the number of inserts reaches the sized capacity. The
// filter continues to work beyond that point, but its false positive rate
// degrades.
func (f *Filter) Full() bool {
	h, _, err := DecodeHeaderV1(f.region)
	if err != nil {
		return true
	}
	return uint64(h.NInserted) >= f.capacity
}

func readU32BE(b []byte) uint32     { return binary.BigEndian.Uint32(b) }
func readU64BE(b []byte) uint64     { return binary.BigEndian.Uint64(b) }
func writeU32BE(b []byte, v uint32) { binary.BigEndian.PutUint32(b, v) }
