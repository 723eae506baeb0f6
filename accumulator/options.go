package accumulator

import (
	"hash"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/google/uuid"
)

type Options struct {
	newHasher func() hash.Hash
	store     LeafStore
	log       logger.Logger
	logID     uuid.UUID
}

type Option func(*Options)

// WithHasher fixes the hash function for the lifetime of the accumulator. The
// hasher must produce 32 byte digests. Keccak-256 is used by default.
func WithHasher(newHasher func() hash.Hash) Option {
	return func(o *Options) {
		o.newHasher = newHasher
	}
}

// WithLeafStore provides the backing leaf store. The store must be empty
// unless the accumulator is being restored.
func WithLeafStore(store LeafStore) Option {
	return func(o *Options) {
		o.store = store
	}
}

// WithLogger enables debug logging of appends
func WithLogger(log logger.Logger) Option {
	return func(o *Options) {
		o.log = log
	}
}

// WithLogID sets the identity of the log. A random (v4) id is generated
// otherwise.
func WithLogID(logID uuid.UUID) Option {
	return func(o *Options) {
		o.logID = logID
	}
}

func newOptions(opts ...Option) Options {
	o := Options{
		newHasher: DefaultHasher,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.store == nil {
		o.store = NewMemLeafStore()
	}
	if o.logID == uuid.Nil {
		o.logID = uuid.New()
	}
	return o
}
