// Package api exposes the planner over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/alexanderramin/studyplanner/internal/service"
)

// NewRouter registers the schedule endpoints on a fresh gin engine.
func NewRouter(planner service.PlannerService, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &handlers{planner: planner, logger: logger.Named("api")}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(h.logger))

	r.GET("/healthz", healthHandler)

	group := r.Group("/api")
	{
		group.POST("/schedule/generate", h.generate)
		group.POST("/schedule/adapt", h.adapt)

		group.GET("/schedules/:id", h.getSchedule)
		group.GET("/schedules/:id/versions", h.listVersions)
		group.GET("/schedules/:id/versions/:version", h.getVersion)
	}
	return r
}

// NewServer wraps the router in an http.Server with conservative timeouts.
// Write timeout stays off since generation waits on three model calls.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
		}
		if status >= http.StatusInternalServerError {
			logger.Warn("request failed", fields...)
			return
		}
		logger.Debug("request", fields...)
	}
}

// GET /healthz
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
