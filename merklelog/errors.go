package merklelog

import (
	"errors"
	"fmt"
)

var (
	ErrSnapshotVersion   = errors.New("unsupported snapshot version")
	ErrLogIDMismatch     = errors.New("the log id does not match the expected log")
	ErrCheckpointAhead   = errors.New("the checkpoint attests to more leaves than the log holds")
	ErrETagRequired      = errors.New("etag is required when updating an existing log")
	ErrNotCommitted      = errors.New("the log has not been committed")
	ErrUncommittedLeaves = errors.New("the log has leaves that are not committed")
	ErrNoCheckpoint      = errors.New("no checkpoint has been sealed for the log")
)

var (
	ErrCWTClaimsNoIssuer         = errors.New("cwt claims are missing the issuer")
	ErrCWTClaimsIssuerNotString  = errors.New("cwt claims issuer is not a string")
	ErrCWTClaimsNoSubject        = errors.New("cwt claims are missing the subject")
	ErrCWTClaimsSubjectNotString = errors.New("cwt claims subject is not a string")
)

// ErrNoProtectedHeaderValue is returned when the protected header has no value
// for the label
type ErrNoProtectedHeaderValue struct {
	Label int64
}

func (e *ErrNoProtectedHeaderValue) Error() string {
	return fmt.Sprintf("no value in the protected header for label %d", e.Label)
}

type ErrUnexpectedProtectedHeaderType struct {
	Label        int64
	ExpectedType string
	ActualType   string
}

func (e *ErrUnexpectedProtectedHeaderType) Error() string {
	return fmt.Sprintf(
		"protected header label %d has type %s, expected %s", e.Label, e.ActualType, e.ExpectedType)
}
