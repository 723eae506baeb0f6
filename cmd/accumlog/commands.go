package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/forestrie/go-merkleaccumulator/accumulator"
	"github.com/forestrie/go-merkleaccumulator/merklelog"
	"github.com/google/uuid"
	"github.com/veraison/go-cose"
)

type command struct {
	cfg       config
	logID     uuid.UUID
	committer *merklelog.Committer
	out       io.Writer
}

func parseHash(s string) (accumulator.Hash, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return accumulator.Hash{}, err
	}
	return accumulator.HashFromBytes(b)
}

func parseHashes(args []string) ([]accumulator.Hash, error) {
	hashes := make([]accumulator.Hash, len(args))
	for i, a := range args {
		h, err := parseHash(a)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", a, err)
		}
		hashes[i] = h
	}
	return hashes, nil
}

func parsePosition(s string) (uint64, error) {
	i, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: position %q: %v", errUsage, s, err)
	}
	return i, nil
}

func (c command) add(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: add needs at least one leaf", errUsage)
	}
	leaves, err := parseHashes(args)
	if err != nil {
		return err
	}
	lc, err := c.committer.GetCurrentContext(ctx, c.logID)
	if err != nil {
		return err
	}
	first, err := c.committer.AddLeaves(&lc, leaves...)
	if err != nil {
		return err
	}
	if err = c.committer.CommitContext(ctx, &lc); err != nil {
		return err
	}
	for i := range leaves {
		fmt.Fprintf(c.out, "%d\n", first+uint64(i))
	}
	fmt.Fprintf(c.out, "root %s\n", lc.Accumulator.MerkleRoot())
	return nil
}

func (c command) root(ctx context.Context) error {
	lc, err := c.committer.GetCurrentContext(ctx, c.logID)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%d %s\n", lc.Accumulator.LeafCount(), lc.Accumulator.MerkleRoot())
	return nil
}

func (c command) proof(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: proof <position>", errUsage)
	}
	i, err := parsePosition(args[0])
	if err != nil {
		return err
	}
	lc, err := c.committer.GetCurrentContext(ctx, c.logID)
	if err != nil {
		return err
	}
	proof, err := lc.Accumulator.GenerateMerkleProof(i)
	if err != nil {
		return err
	}
	for _, p := range proof {
		fmt.Fprintln(c.out, p)
	}
	return nil
}

// verify checks the proof against any root the log has held
func (c command) verify(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: verify <position> <root> [<proof element>...]", errUsage)
	}
	i, err := parsePosition(args[0])
	if err != nil {
		return err
	}
	root, err := parseHash(args[1])
	if err != nil {
		return err
	}
	proof, err := parseHashes(args[2:])
	if err != nil {
		return err
	}
	lc, err := c.committer.GetCurrentContext(ctx, c.logID)
	if err != nil {
		return err
	}
	ok, err := lc.Accumulator.ValidateProof(i, proof, root)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("proof for %d does not verify against %s", i, root)
	}
	fmt.Fprintln(c.out, "ok")
	return nil
}

func (c command) seal(ctx context.Context) error {
	key, err := readKey(c.cfg.keyPath)
	if err != nil {
		return err
	}
	signer, err := cose.NewSigner(cose.AlgorithmES256, key)
	if err != nil {
		return err
	}
	lc, err := c.committer.GetCurrentContext(ctx, c.logID)
	if err != nil {
		return err
	}
	storagePath, err := c.committer.Seal(ctx, &lc, signer, c.cfg.keyID, nil)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, storagePath)
	return nil
}

// checkpoint verifies the checkpoint sealed at the given leaf count, or the
// most recent one, against the current log.
func (c command) checkpoint(ctx context.Context, args []string) error {
	key, err := readKey(c.cfg.keyPath)
	if err != nil {
		return err
	}
	var cp *merklelog.Checkpoint
	switch len(args) {
	case 0:
		cp, err = c.committer.LastCheckpoint(ctx, c.logID)
	case 1:
		var leafCount uint64
		if leafCount, err = parsePosition(args[0]); err != nil {
			return err
		}
		cp, err = c.committer.ReadCheckpoint(ctx, c.logID, leafCount)
	default:
		return fmt.Errorf("%w: checkpoint [<leaf count>]", errUsage)
	}
	if err != nil {
		return err
	}

	lc, err := c.committer.GetCurrentContext(ctx, c.logID)
	if err != nil {
		return err
	}
	state, err := merklelog.VerifyCheckpoint(
		c.committer.Codec(), key.Public(), lc.Accumulator.Snapshot(), cp, nil)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%d %x %d\n", state.LeafCount, state.Root, state.Timestamp)
	return nil
}
