package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const (
	healthOK       = "ok"
	healthDegraded = "degraded"
	healthError    = "error"
	healthDisabled = "disabled"
)

type HealthHandler struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewHealthHandler accepts a nil redis client when Redis is not configured.
func NewHealthHandler(db *gorm.DB, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: rdb}
}

func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": healthOK})
}

// Ready pings Postgres and Redis. Redis down is degraded, Postgres down is
// an error.
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	dbStatus := healthOK
	if err := h.pingDB(ctx); err != nil {
		dbStatus = healthError
	}

	redisStatus := healthDisabled
	if h.redis != nil {
		redisStatus = healthOK
		if err := h.redis.Ping(ctx).Err(); err != nil {
			redisStatus = healthError
		}
	}

	status, code := healthOK, http.StatusOK
	switch {
	case dbStatus == healthError:
		status, code = healthError, http.StatusServiceUnavailable
	case redisStatus == healthError:
		status = healthDegraded
	}

	c.JSON(code, gin.H{
		"status": status,
		"checks": gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		},
	})
}

func (h *HealthHandler) pingDB(ctx context.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
