package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health reports liveness of the API and its backing stores. Public and
// unauthenticated, so the payload stays coarse.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		checks := gin.H{"postgres": "up", "redis": "up"}
		healthy := true

		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			checks["postgres"] = "down"
			healthy = false
		}
		if rdb.Ping(ctx).Err() != nil {
			checks["redis"] = "down"
			healthy = false
		}

		code := http.StatusOK
		if !healthy {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"healthy": healthy, "checks": checks})
	}
}
