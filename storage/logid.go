package storage

import (
	"strings"

	"github.com/google/uuid"
)

const (
	// LenUUIDString is the length of the UUID string representation, per
	// https://www.rfc-editor.org/rfc/rfc9562.html#name-uuid-format
	LenUUIDString = 36
)

// LogID is the 16 byte identity of a log, the raw bytes of a uuid
type LogID []byte

func LogIDFromUUID(id uuid.UUID) LogID {
	return LogID(id[:])
}

// UUID returns the uuid form of the id, or uuid.Nil if the id is malformed
func (id LogID) UUID() uuid.UUID {
	u, err := uuid.FromBytes(id)
	if err != nil {
		return uuid.Nil
	}
	return u
}

func (id LogID) String() string {
	return id.UUID().String()
}

// The log id is encoded in the storage path as a uuid following a well known
// prefix path component, V1AccumulatorsPrefix for the store layout.

// ParsePrefixedLogID finds the uuid that follows prefix in storagePath. Returns
// nil if the prefix is absent or is not followed by a valid uuid.
func ParsePrefixedLogID(prefix string, storagePath string) LogID {

	lenprefix := len(prefix)

	var i, j int
	i = strings.Index(storagePath, prefix)
	if i == -1 {
		return nil
	}

	// Allow the uuid to be followed by a slash or end of string.
	j = strings.Index(storagePath[i+lenprefix:], "/")
	if j == -1 {
		j = len(storagePath) - (i + lenprefix)
	}
	if j != LenUUIDString {
		return nil
	}
	uuidStr := storagePath[i+lenprefix : i+lenprefix+j]
	logID, err := uuid.Parse(uuidStr)
	if err != nil {
		return nil
	}
	return LogID(logID[:])
}
