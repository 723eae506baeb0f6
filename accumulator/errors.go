package accumulator

import "errors"

var (
	ErrPositionOutOfBounds = errors.New("leaf position out of bounds")
	ErrInvalidProofLength  = errors.New("proof length does not match the height of the tree")
	ErrRootDoesNotExist    = errors.New("root was never produced by this accumulator")
)

var (
	ErrValueSize             = errors.New("value must be exactly 32 bytes")
	ErrHasherSize            = errors.New("the hasher must produce 32 byte digests")
	ErrHistoryInconsistent   = errors.New("the root history does not match the roots produced by the leaves")
	ErrRootsMissing          = errors.New("the root history must contain at least the empty tree root")
	ErrLeafStoreInconsistent = errors.New("the leaf store assigned an unexpected position")
)
