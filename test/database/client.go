// Package database provides test helpers for spinning up a metrics store
// backed by a real PostgreSQL instance (testcontainers locally, or an
// external service in CI via CI_DATABASE_URL).
package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/opsmith/llm-gateway/pkg/metricsstore"
	"github.com/opsmith/llm-gateway/test/util"
)

// NewTestStore creates a metrics store against a fresh schema on the shared
// test database. Both the schema and the store's pool are cleaned up via
// t.Cleanup.
func NewTestStore(t *testing.T) *metricsstore.Store {
	t.Helper()
	ctx := context.Background()

	connStr := util.CreateTestSchema(t)

	store, err := metricsstore.NewStore(ctx, metricsstore.Config{
		DSN:             connStr,
		MaxConns:        10,
		MinConns:        1,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: 15 * time.Minute,
	})
	require.NoError(t, err)

	t.Cleanup(store.Close)

	return store
}
