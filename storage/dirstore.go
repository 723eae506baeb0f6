package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/datatrails/go-datatrails-common/logger"
)

const (
	defaultDirMode  = 0o755
	defaultFileMode = 0o644
)

type DirStoreOptions struct {
	dirMode  fs.FileMode
	fileMode fs.FileMode
}

type DirStoreOption func(*DirStoreOptions)

func WithDirMode(mode fs.FileMode) DirStoreOption {
	return func(o *DirStoreOptions) {
		o.dirMode = mode
	}
}

func WithFileMode(mode fs.FileMode) DirStoreOption {
	return func(o *DirStoreOptions) {
		o.fileMode = mode
	}
}

// DirStore is an ObjectStore backed by a local directory. Storage paths are
// slash separated and relative to the root directory.
//
// The etag of an object is the hex sha256 of its content. Conditional writes
// are serialized by a single mutex, so the optimistic concurrency guarantees
// hold between users of the same DirStore instance.
type DirStore struct {
	mu   sync.Mutex
	log  logger.Logger
	root string
	opts DirStoreOptions
}

func NewDirStore(log logger.Logger, root string, opts ...DirStoreOption) (*DirStore, error) {
	o := DirStoreOptions{dirMode: defaultDirMode, fileMode: defaultFileMode}
	for _, opt := range opts {
		opt(&o)
	}
	if err := os.MkdirAll(root, o.dirMode); err != nil {
		return nil, err
	}
	return &DirStore{log: log, root: root, opts: o}, nil
}

func ContentETag(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func (d *DirStore) Root() string {
	return d.root
}

func (d *DirStore) localPath(storagePath string) (string, error) {
	if storagePath == "" || strings.HasPrefix(storagePath, "/") {
		return "", fmt.Errorf("%w: %q", ErrPathEscapes, storagePath)
	}
	local := filepath.FromSlash(storagePath)
	if !filepath.IsLocal(local) {
		return "", fmt.Errorf("%w: %q", ErrPathEscapes, storagePath)
	}
	return filepath.Join(d.root, local), nil
}

func (d *DirStore) Get(ctx context.Context, storagePath string) ([]byte, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	local, err := d.localPath(storagePath)
	if err != nil {
		return nil, "", err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	data, err := d.read(local)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %s", err, storagePath)
	}
	return data, ContentETag(data), nil
}

func (d *DirStore) read(local string) ([]byte, error) {
	data, err := os.ReadFile(local)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	return data, err
}

// Put writes data to storagePath, replacing the whole object. The write is
// atomic with respect to readers of the directory.
func (d *DirStore) Put(ctx context.Context, storagePath string, data []byte, opts ...WriteOption) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	local, err := d.localPath(storagePath)
	if err != nil {
		return "", err
	}
	o := NewWriteOptions(opts...)

	d.mu.Lock()
	defer d.mu.Unlock()

	if o.createOnly || o.etagMatch != "" {
		current, err := d.read(local)
		exists := err == nil
		if err != nil && !errors.Is(err, ErrNotFound) {
			return "", err
		}
		if o.createOnly && exists {
			return "", fmt.Errorf("%w: %s", ErrExistsOC, storagePath)
		}
		if o.etagMatch != "" && (!exists || ContentETag(current) != o.etagMatch) {
			return "", fmt.Errorf("%w: %s", ErrContentOC, storagePath)
		}
	}

	if err := os.MkdirAll(filepath.Dir(local), d.opts.dirMode); err != nil {
		return "", err
	}
	tmp, err := os.CreateTemp(filepath.Dir(local), "."+filepath.Base(local)+".*")
	if err != nil {
		return "", err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return "", err
	}
	if err = tmp.Chmod(d.opts.fileMode); err != nil {
		tmp.Close()
		return "", err
	}
	if err = tmp.Close(); err != nil {
		return "", err
	}
	if err = os.Rename(tmpName, local); err != nil {
		return "", err
	}

	etag := ContentETag(data)
	if d.log != nil {
		d.log.Debugf("put %s (%d bytes) etag %s", storagePath, len(data), etag)
	}
	return etag, nil
}

// List returns the storage paths of the regular files directly under prefix.
// A prefix that does not exist lists as empty.
func (d *DirStore) List(ctx context.Context, prefix string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	local, err := d.localPath(strings.TrimSuffix(prefix, "/"))
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	entries, err := os.ReadDir(local)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	base := strings.TrimSuffix(prefix, "/") + "/"
	var paths []string
	for _, e := range entries {
		if !e.Type().IsRegular() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		paths = append(paths, base+e.Name())
	}
	sort.Strings(paths)
	return paths, nil
}
