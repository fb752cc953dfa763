// Package tlogtesting provides deterministic log construction helpers for
// tests in the storage and tiles packages.
package tlogtesting

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/forestrie/go-tlogtiles/storage"
)

type TestConfig struct {
	// Seed fixes the RNG so generated records are the same from run to run.
	Seed            int64
	TestLabelPrefix string
	LogIdentity     string // can be ""
	TileHeight      int    // 0 defaults to 2, small enough to exercise many tiles
}

type TestContext struct {
	T    *testing.T
	Log  logger.Logger
	Rand *rand.Rand
	Cfg  TestConfig
}

func NewTestContext(t *testing.T, cfg TestConfig) TestContext {
	if cfg.TileHeight == 0 {
		cfg.TileHeight = 2
	}
	logger.New("NOOP")

	c := TestContext{
		T:    t,
		Log:  logger.Sugar.WithServiceName(cfg.TestLabelPrefix),
		Rand: rand.New(rand.NewSource(cfg.Seed)),
		Cfg:  cfg,
	}
	if c.Cfg.LogIdentity == "" {
		id, err := uuid.NewRandomFromReader(c.Rand)
		require.NoError(t, err)
		c.Cfg.LogIdentity = storage.LogIdentityForUUID(id)
	}
	return c
}

func (c *TestContext) GetLog() logger.Logger { return c.Log }

// GenerateRecords returns n deterministic record payloads.
func (c *TestContext) GenerateRecords(n int) [][]byte {
	records := make([][]byte, 0, n)
	for i := 0; i < n; i++ {
		id, err := uuid.NewRandomFromReader(c.Rand)
		require.NoError(c.T, err)
		records = append(records, fmt.Appendf(nil, "assets/%s:%d", id.String(), i))
	}
	return records
}

// PopulateStore appends n generated records to the store and returns them.
func (c *TestContext) PopulateStore(store *storage.MemoryTileStore, n int) [][]byte {
	records := c.GenerateRecords(n)
	for _, r := range records {
		_, err := store.AppendRecord(context.Background(), r)
		require.NoError(c.T, err)
	}
	return records
}
