package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/forestrie/go-merkleaccumulator/accumtesting"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cli struct {
	t    *testing.T
	base []string
}

func newCLI(t *testing.T) cli {
	dir := t.TempDir()
	return cli{t: t, base: []string{
		"--dir", filepath.Join(dir, "store"),
		"--log", uuid.NewString(),
		"--key", filepath.Join(dir, "key.pem"),
	}}
}

func (c cli) run(args ...string) ([]string, error) {
	var out bytes.Buffer
	err := run(context.Background(), append(append([]string{}, c.base...), args...), &out)
	return strings.Fields(out.String()), err
}

func (c cli) mustRun(args ...string) []string {
	out, err := c.run(args...)
	require.NoError(c.t, err, args)
	return out
}

func TestAddProveVerify(t *testing.T) {
	c := newCLI(t)
	gen := accumtesting.NewTestGenerator(accumtesting.TestConfig{StartTimeMS: 1698342521000})
	leaves := gen.GenerateLeaves(5)

	out := c.mustRun("add", leaves[0].String(), leaves[1].String(), leaves[2].String())
	assert.Equal(t, []string{"0", "1", "2", "root"}, out[:4])
	rootAt3 := out[4]

	out = c.mustRun("add", "0x"+leaves[3].String(), leaves[4].String())
	assert.Equal(t, []string{"3", "4", "root"}, out[:3])
	rootAt5 := out[3]

	out = c.mustRun("root")
	assert.Equal(t, []string{"5", rootAt5}, out)

	proof := c.mustRun("proof", "2")
	assert.Len(t, proof, 3)

	out = c.mustRun(append([]string{"verify", "2", rootAt5}, proof...)...)
	assert.Equal(t, []string{"ok"}, out)

	// a historical root is known, but the proof is for the current tree
	_, err := c.run(append([]string{"verify", "2", rootAt3}, proof...)...)
	assert.Error(t, err)

	_, err = c.run("proof", "5")
	assert.Error(t, err)
}

func TestSealAndCheckpoint(t *testing.T) {
	c := newCLI(t)
	gen := accumtesting.NewTestGenerator(accumtesting.TestConfig{StartTimeMS: 1})

	_, err := c.run("seal")
	assert.Error(t, err, "seal requires a key")

	c.mustRun("keygen")
	_, err = c.run("keygen")
	assert.Error(t, err, "keygen must not replace a key")

	c.mustRun("add", gen.NextLeaf().String(), gen.NextLeaf().String())
	out := c.mustRun("seal")
	require.Len(t, out, 1)
	assert.True(t, strings.HasSuffix(out[0], "checkpoints/0000000000000002.sth"))

	c.mustRun("add", gen.NextLeaf().String())
	c.mustRun("seal")

	out = c.mustRun("checkpoint")
	require.Len(t, out, 3)
	assert.Equal(t, "3", out[0])

	out = c.mustRun("checkpoint", "2")
	require.Len(t, out, 3)
	assert.Equal(t, "2", out[0])

	_, err = c.run("checkpoint", "1")
	assert.Error(t, err)
}

func TestUsageErrors(t *testing.T) {
	c := newCLI(t)
	tests := [][]string{
		{},
		{"bogus"},
		{"add"},
		{"add", "zz"},
		{"proof"},
		{"proof", "x"},
		{"verify", "0"},
	}
	for _, args := range tests {
		_, err := c.run(args...)
		assert.Error(t, err, args)
	}

	var out bytes.Buffer
	err := run(context.Background(), []string{"--log", "not-a-uuid", "root"}, &out)
	assert.ErrorIs(t, err, errUsage)
}
