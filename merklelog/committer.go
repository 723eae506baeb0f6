package merklelog

import (
	"context"
	"errors"
	"fmt"
	"time"

	dtcbor "github.com/datatrails/go-datatrails-common/cbor"
	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-merkleaccumulator/accumulator"
	"github.com/forestrie/go-merkleaccumulator/storage"
	"github.com/google/uuid"
	"github.com/veraison/go-cose"
)

type CommitterConfig struct {
	// Issuer is the iss claim of every checkpoint the committer seals
	Issuer string

	// AccumulatorOptions are applied to every accumulator the committer
	// creates or restores. The log id is always taken from the log.
	AccumulatorOptions []accumulator.Option
}

// Committer reads, extends and commits accumulator logs held in an object
// store, and seals signed checkpoints over their roots.
type Committer struct {
	Cfg    CommitterConfig
	Log    logger.Logger
	Store  storage.ObjectStore
	codec  dtcbor.CBORCodec
	signer RootSigner
	now    func() time.Time
}

func NewCommitter(cfg CommitterConfig, log logger.Logger, store storage.ObjectStore) (*Committer, error) {
	codec, err := NewCodec()
	if err != nil {
		return nil, err
	}
	c := &Committer{
		Cfg:    cfg,
		Log:    log,
		Store:  store,
		codec:  codec,
		signer: NewRootSigner(cfg.Issuer, codec),
		now:    time.Now,
	}
	return c, nil
}

func (c *Committer) Codec() dtcbor.CBORCodec {
	return c.codec
}

func (c *Committer) accumulatorOptions(logID uuid.UUID) []accumulator.Option {
	opts := append([]accumulator.Option{}, c.Cfg.AccumulatorOptions...)
	return append(opts, accumulator.WithLogger(c.Log), accumulator.WithLogID(logID))
}

// GetCurrentContext reads the snapshot of the log. If the log does not exist
// the context is set up to create it.
//
// The returned context is ready to accept new leaves.
func (c *Committer) GetCurrentContext(ctx context.Context, logID uuid.UUID) (LogContext, error) {

	id := storage.LogIDFromUUID(logID)
	storagePath, err := storage.ObjectPath(id, 0, storage.ObjectSnapshot)
	if err != nil {
		return LogContext{}, err
	}

	lc := LogContext{
		LogID:       id,
		StoragePath: storagePath,
	}

	data, etag, err := c.Store.Get(ctx, storagePath)
	if errors.Is(err, storage.ErrNotFound) {
		lc.Creating = true
		lc.Accumulator, err = accumulator.New(c.accumulatorOptions(logID)...)
		if err != nil {
			return LogContext{}, err
		}
		c.Log.Debugf("creating log %s", logID)
		return lc, nil
	}
	if err != nil {
		return LogContext{}, err
	}

	lc.ETag = etag
	lc.Accumulator, err = DecodeSnapshot(c.codec, data, c.accumulatorOptions(logID)...)
	if err != nil {
		return LogContext{}, err
	}
	if lc.Accumulator.LogID() != logID {
		return LogContext{}, fmt.Errorf("%w: %s holds %s", ErrLogIDMismatch, storagePath, lc.Accumulator.LogID())
	}
	lc.CommittedLeafCount = lc.Accumulator.LeafCount()
	return lc, nil
}

// AddLeaves appends the values to the log in order and returns the position
// of the first.
func (c *Committer) AddLeaves(lc *LogContext, values ...accumulator.Hash) (uint64, error) {
	first := lc.Accumulator.LeafCount()
	for _, v := range values {
		if _, err := lc.Accumulator.AddLeaf(v); err != nil {
			return first, err
		}
	}
	c.Log.Debugf("log %s: added %d leaves at %d", lc.LogID, len(values), first)
	return first, nil
}

// CommitContext writes the snapshot of the log back to the store. The write
// is guarded by the etag read with the context, and a new log is only created
// if no other writer has created it first.
func (c *Committer) CommitContext(ctx context.Context, lc *LogContext) error {

	var opts []storage.WriteOption
	// The etag guards against racy updates. It is absent only when creating
	// the log.
	if lc.ETag != "" {
		opts = append(opts, storage.WithETagMatch(lc.ETag))
	} else if !lc.Creating {
		return ErrETagRequired
	}
	if lc.Creating {
		opts = append(opts, storage.WithCreateOnly())
	}

	snap := lc.Accumulator.Snapshot()
	data, err := EncodeSnapshot(c.codec, snap)
	if err != nil {
		return err
	}

	etag, err := c.Store.Put(ctx, lc.StoragePath, data, opts...)
	if err != nil {
		return err
	}
	lc.ETag = etag
	lc.Creating = false
	lc.CommittedLeafCount = snap.LeafCount()
	c.Log.Infof("committed log %s: %d leaves, root %s", lc.LogID, snap.LeafCount(), snap.MerkleRoot())
	return nil
}

// Seal signs the committed state of the log and stores the checkpoint. Only
// committed states can be sealed, and each leaf count is sealed at most once.
func (c *Committer) Seal(
	ctx context.Context, lc *LogContext, coseSigner cose.Signer, keyIdentifier string, external []byte,
) (string, error) {

	if lc.Creating {
		return "", ErrNotCommitted
	}
	if lc.Uncommitted() {
		return "", fmt.Errorf("%w: %d committed, %d present",
			ErrUncommittedLeaves, lc.CommittedLeafCount, lc.Accumulator.LeafCount())
	}

	snap := lc.Accumulator.Snapshot()
	state := NewAccumulatorState(snap, c.now().UnixMilli())
	msg, err := c.signer.Sign1(coseSigner, keyIdentifier, lc.LogID.String(), state, external)
	if err != nil {
		return "", err
	}

	storagePath, err := storage.ObjectPath(lc.LogID, state.LeafCount, storage.ObjectCheckpoint)
	if err != nil {
		return "", err
	}
	if _, err = c.Store.Put(ctx, storagePath, msg, storage.WithCreateOnly()); err != nil {
		return "", err
	}
	c.Log.Infof("sealed log %s at %d leaves", lc.LogID, state.LeafCount)
	return storagePath, nil
}

// ReadCheckpoint reads the checkpoint sealed at leafCount. The checkpoint is
// not verified, see VerifyCheckpoint.
func (c *Committer) ReadCheckpoint(ctx context.Context, logID uuid.UUID, leafCount uint64) (*Checkpoint, error) {
	storagePath, err := storage.ObjectPath(storage.LogIDFromUUID(logID), leafCount, storage.ObjectCheckpoint)
	if err != nil {
		return nil, err
	}
	data, _, err := c.Store.Get(ctx, storagePath)
	if err != nil {
		return nil, err
	}
	return DecodeCheckpoint(data)
}

// LastCheckpoint reads the checkpoint with the greatest leaf count
func (c *Committer) LastCheckpoint(ctx context.Context, logID uuid.UUID) (*Checkpoint, error) {
	id := storage.LogIDFromUUID(logID)
	prefix, err := storage.ObjectPath(id, 0, storage.ObjectPathCheckpoints)
	if err != nil {
		return nil, err
	}
	paths, err := c.Store.List(ctx, prefix)
	if err != nil {
		return nil, err
	}

	var found bool
	var last uint64
	for _, p := range paths {
		otype, leafCount, err := storage.ObjectIndexFromPath(p)
		if err != nil || otype != storage.ObjectCheckpoint {
			continue
		}
		if !found || leafCount > last {
			last = leafCount
			found = true
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrNoCheckpoint, logID)
	}
	return c.ReadCheckpoint(ctx, logID, last)
}
