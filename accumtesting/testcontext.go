// Package accumtesting provides shared fixtures for tests of the accumulator
// log packages
package accumtesting

import (
	"context"
	"testing"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-merkleaccumulator/storage"
	"github.com/stretchr/testify/require"
)

type TestContext struct {
	Log   logger.Logger
	Store *storage.DirStore
	T     *testing.T
}

type TestConfig struct {
	// We seed the RNG of the provided StartTimeMS. It is normal to force it to
	// some fixed value so that the generated data is the same from run to run.
	StartTimeMS     int64
	TestLabelPrefix string
}

// NewTestContext creates a context with an object store rooted in a
// directory that is removed when the test completes.
func NewTestContext(t *testing.T, cfg TestConfig) TestContext {
	c := TestContext{
		T: t,
	}
	logger.New("INFO")
	t.Cleanup(func() { logger.OnExit() })
	c.Log = logger.Sugar.WithServiceName(cfg.TestLabelPrefix)

	var err error
	c.Store, err = storage.NewDirStore(c.Log, t.TempDir())
	require.NoError(t, err)
	return c
}

func (c *TestContext) GetLog() logger.Logger { return c.Log }

func (c *TestContext) GetStore() *storage.DirStore {
	return c.Store
}

// ReadObject returns the stored content at storagePath, failing the test if
// it is absent.
func (c *TestContext) ReadObject(storagePath string) []byte {
	data, _, err := c.Store.Get(context.Background(), storagePath)
	require.NoError(c.T, err)
	return data
}
