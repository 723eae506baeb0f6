package storage

import (
	"fmt"
	"strconv"
	"strings"
)

type ObjectType uint8

const (
	ObjectUndefined ObjectType = iota
	ObjectSnapshot
	ObjectCheckpoint
	ObjectPathCheckpoints
)

const (
	V1AccumulatorsPrefix = "v1/accumulators/"

	SnapshotName        = "snapshot"
	SnapshotExt         = "cbor"
	CheckpointsDir      = "checkpoints/"
	CheckpointExt       = "sth"
	ExtSep              = "."
	CheckpointNameFmt   = "%016d"
	CheckpointNameWidth = 16
)

// LogPath returns the path prefix under which every object for the log is
// stored, including the trailing slash.
//
//	v1/accumulators/{uuid}/
func LogPath(logID LogID) string {
	return fmt.Sprintf("%s%s/", V1AccumulatorsPrefix, logID)
}

// ObjectPath returns the storage path for an object of the log. index is the
// leaf count for checkpoints, and is ignored for the other types.
//
//	v1/accumulators/{uuid}/snapshot.cbor
//	v1/accumulators/{uuid}/checkpoints/{leafcount:016d}.sth
//	v1/accumulators/{uuid}/checkpoints/
func ObjectPath(logID LogID, index uint64, otype ObjectType) (string, error) {
	base := LogPath(logID)
	switch otype {
	case ObjectSnapshot:
		return base + SnapshotName + ExtSep + SnapshotExt, nil
	case ObjectCheckpoint:
		return base + CheckpointsDir + fmt.Sprintf(CheckpointNameFmt, index) + ExtSep + CheckpointExt, nil
	case ObjectPathCheckpoints:
		return base + CheckpointsDir, nil
	default:
		return "", fmt.Errorf("%w: object type %d", ErrUnknownObject, otype)
	}
}

// ObjectIndexFromPath returns the type of the object at storagePath and, for
// checkpoints, the leaf count it attests to.
func ObjectIndexFromPath(storagePath string) (ObjectType, uint64, error) {
	// ensure it doesn't end with a slash
	storagePath = strings.TrimSuffix(storagePath, "/")
	i := strings.LastIndex(storagePath, "/")
	baseName := storagePath[i+1:]

	if baseName == SnapshotName+ExtSep+SnapshotExt {
		return ObjectSnapshot, 0, nil
	}

	suffix := ExtSep + CheckpointExt
	if strings.HasSuffix(baseName, suffix) {
		index, err := strconv.ParseUint(baseName[:len(baseName)-len(suffix)], 10, 64)
		if err != nil {
			return ObjectUndefined, 0, fmt.Errorf("%w: %s: %v", ErrUnknownObject, storagePath, err)
		}
		return ObjectCheckpoint, index, nil
	}
	return ObjectUndefined, 0, fmt.Errorf("%w: %s", ErrUnknownObject, storagePath)
}
