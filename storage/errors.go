package storage

import "errors"

var (
	ErrNotFound      = errors.New("object not found")
	ErrExistsOC      = errors.New("optimistic concurrency failure, subject already exists")
	ErrContentOC     = errors.New("optimistic concurrency failure, content to replace does not match expected content")
	ErrPathEscapes   = errors.New("storage path is not relative to the store root")
	ErrUnknownObject = errors.New("path has no recognizable object suffix")
)
