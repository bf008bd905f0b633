package handler

import (
	"context"
	"net/http"
	"time"

	"lifelog/src/store"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Pinger checks a backing service
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler answers liveness checks
type HealthHandler struct {
	db      Pinger
	store   *store.Store
	started time.Time
	logger  *logrus.Logger
}

// NewHealthHandler creates a health handler. db may be nil for the memory backend.
func NewHealthHandler(db Pinger, st *store.Store, logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{db: db, store: st, started: time.Now(), logger: logger}
}

// Health reports the database state and the snapshot generation
func (h *HealthHandler) Health(c *gin.Context) {
	body := gin.H{
		"status":    "OK",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(h.started).Round(time.Second).String(),
		"database":  "memory",
	}
	if snap := h.store.Current(); snap != nil {
		body["generation"] = snap.Generation
	}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			h.logger.WithError(err).Error("ヘルスチェック: データベースに接続できません")
			body["status"] = "DEGRADED"
			body["database"] = "unreachable"
			c.JSON(http.StatusServiceUnavailable, body)
			return
		}
		body["database"] = "postgres"
	}
	c.JSON(http.StatusOK, body)
}
