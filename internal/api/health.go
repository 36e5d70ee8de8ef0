package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Prober reports whether a dependency is reachable.
type Prober interface {
	Healthy(ctx context.Context) bool
}

// Health reports dependency status. Postgres is required, so losing it
// returns 503. Redis only backs the activity cache and reads fall through
// to the store without it, so it is reported but does not fail the check.
func Health(db, cache Prober) gin.HandlerFunc {
	return func(c *gin.Context) {
		dbHealthy := db.Healthy(c.Request.Context())
		cacheHealthy := cache.Healthy(c.Request.Context())
		status := http.StatusOK
		if !dbHealthy {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"status": "ok", "db": dbHealthy, "redis": cacheHealthy})
	}
}
