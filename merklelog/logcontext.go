package merklelog

import (
	"github.com/forestrie/go-merkleaccumulator/accumulator"
	"github.com/forestrie/go-merkleaccumulator/storage"
)

// LogContext is the working state of a single log between reading its
// snapshot and committing it back.
type LogContext struct {
	LogID       storage.LogID
	StoragePath string

	// ETag is the etag of the snapshot as last read or written. It is empty
	// only when the log is being created.
	ETag     string
	Creating bool

	// CommittedLeafCount is the number of leaves in the stored snapshot
	CommittedLeafCount uint64

	Accumulator *accumulator.Accumulator
}

// Uncommitted returns true if leaves have been added since the context was
// read or last committed.
func (lc *LogContext) Uncommitted() bool {
	return lc.Accumulator.LeafCount() != lc.CommittedLeafCount
}
