package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/DoniniDjessa/cercleof-sub000/internal/infra"
	"github.com/DoniniDjessa/cercleof-sub000/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health returns a JSON health check response.
// Checks DB and Redis connectivity, reports the mailer circuit breaker state
// and the dead-letter backlog per job queue; never exposes credentials or
// internals.
func Health(db *gorm.DB, rdb *redis.Client, cb *infra.CircuitBreaker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "connected"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "error"
		}

		redisStatus := "connected"
		if rdb.Ping(ctx).Err() != nil {
			redisStatus = "error"
		}

		status := http.StatusOK
		if dbStatus != "connected" || redisStatus != "connected" {
			status = http.StatusServiceUnavailable
		}

		// Dead-letter backlog per job queue. Best effort: a Redis error
		// already flips redisStatus above.
		dlq := gin.H{}
		for _, q := range []string{worker.QueueReceipt, worker.QueueNotification} {
			if n, err := worker.DLQLength(ctx, rdb, q); err == nil {
				dlq[q] = n
			}
		}

		c.JSON(status, gin.H{
			"ok":     status == http.StatusOK,
			"db":     dbStatus,
			"redis":  redisStatus,
			"mailer": cb.State().String(),
			"dlq":    dlq,
		})
	}
}
