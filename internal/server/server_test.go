package server

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/athena/internal/config"
)

// lazyPool never dials because nothing acquires a connection
func lazyPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	pool, err := pgxpool.New(context.Background(), "postgres://athena@127.0.0.1:1/athena?sslmode=disable")
	require.NoError(t, err)
	return pool
}

func TestShutdown_ReportsPoolClose(t *testing.T) {
	var logs bytes.Buffer
	s := &Server{
		dbPool: lazyPool(t),
		logger: zerolog.New(&logs),
		http:   newHTTPServer("0", http.NotFoundHandler()),
	}

	require.NoError(t, s.Shutdown(context.Background()))
	assert.Nil(t, s.dbPool)
	assert.Contains(t, logs.String(), "HTTP server stopped")
	assert.Contains(t, logs.String(), `"total_conns":0`)
	assert.Contains(t, logs.String(), "Database connection pool closed")

	logs.Reset()
	require.NoError(t, s.Shutdown(context.Background()))
	assert.NotContains(t, logs.String(), "Database connection pool closed")
}

func TestClosePool(t *testing.T) {
	s := &Server{dbPool: lazyPool(t), logger: zerolog.Nop()}
	assert.True(t, s.closePool())
	assert.False(t, s.closePool())
}

func TestRun_ListenFailureClosesPool(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	cfg.Server.Port = "-1"
	s := &Server{config: cfg, router: gin.New(), dbPool: lazyPool(t), logger: zerolog.Nop()}

	err := s.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen on :-1")
	assert.Nil(t, s.dbPool)
}

func TestNewHTTPServer(t *testing.T) {
	srv := newHTTPServer("8080", http.NotFoundHandler())
	assert.Equal(t, ":8080", srv.Addr)
	assert.NotZero(t, srv.ReadTimeout)
	assert.NotZero(t, srv.WriteTimeout)
}
