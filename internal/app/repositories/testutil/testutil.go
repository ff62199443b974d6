package testutil

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/athena/internal/app/migrations"
	"github.com/yigit/athena/internal/pkg/logger"
)

var errMissingDSN = errors.New("missing TEST_POSTGRES_DSN")

var (
	poolOnce sync.Once
	pool     *pgxpool.Pool
	poolErr  error
)

// DB returns a migrated pool shared by every test in the package. Tests are
// skipped when TEST_POSTGRES_DSN is unset.
func DB(tb testing.TB) *pgxpool.Pool {
	tb.Helper()

	poolOnce.Do(func() {
		dsn := os.Getenv("TEST_POSTGRES_DSN")
		if dsn == "" {
			poolErr = errMissingDSN
			return
		}

		logger.Configure(logger.Config{Level: logger.WarnLevel, Output: os.Stderr})

		ctx := context.Background()
		pool, poolErr = pgxpool.New(ctx, dsn)
		if poolErr != nil {
			return
		}
		if poolErr = pool.Ping(ctx); poolErr != nil {
			return
		}
		poolErr = migrations.NewMigrator(pool, migrations.Schema()).Migrate(ctx)
	})

	if errors.Is(poolErr, errMissingDSN) {
		tb.Skip("set TEST_POSTGRES_DSN to run repository integration tests")
	}
	if poolErr != nil {
		tb.Fatalf("failed to init test db: %v", poolErr)
	}
	return pool
}

// Tx opens a transaction that is rolled back when the test ends
func Tx(tb testing.TB, pool *pgxpool.Pool) pgx.Tx {
	tb.Helper()

	tx, err := pool.Begin(context.Background())
	if err != nil {
		tb.Fatalf("begin tx: %v", err)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})
	return tx
}
