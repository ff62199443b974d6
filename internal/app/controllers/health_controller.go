package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/athena/internal/app/models/dto"
	"github.com/yigit/athena/internal/pkg/logger"
)

// Pinger is satisfied by *pgxpool.Pool
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthController reports whether the service can reach its store
type HealthController struct {
	db Pinger
}

func NewHealthController(db Pinger) *HealthController {
	return &HealthController{db: db}
}

// Health answers 200 when the database responds and 503 otherwise
func (c *HealthController) Health(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	if err := c.db.Ping(pingCtx); err != nil {
		logger.Warn().Err(err).Msg("Health check failed to reach the database")
		resp := dto.NewAPIResponse(dto.HealthResponse{Status: "degraded", Database: "unreachable"})
		resp.Success = false
		ctx.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	respond(ctx, http.StatusOK, dto.HealthResponse{Status: "ok", Database: "reachable"})
}
