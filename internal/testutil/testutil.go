package testutil

import (
	"math/rand"
	"testing"
	"time"

	"healthbot/internal/catalog"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// FixedNow is the clock used across tests
var FixedNow = time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestCatalog returns the bundled catalog
func NewTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	return c
}

// NewTestRand returns a seeded randomness source
func NewTestRand() *rand.Rand {
	return rand.New(rand.NewSource(7))
}

// Clock returns a time source frozen at FixedNow
func Clock() func() time.Time {
	return func() time.Time { return FixedNow }
}
