package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"btrscout/internal/dataset"
	"btrscout/internal/db"
)

type HealthHandler struct {
	DB        *db.DB
	Snapshots *dataset.Store
}

func (h *HealthHandler) Register(r *gin.Engine) {
	r.GET("/healthz", h.health)
	r.GET("/readyz", h.ready)
}

func (h *HealthHandler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ready reports whether the service can answer data-backed requests.
// A reachable database is required; a loaded snapshot is reported but
// not required, since every scorer degrades to estimation defaults.
func (h *HealthHandler) ready(c *gin.Context) {
	if h.DB == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db_missing"})
		return
	}
	if err := h.DB.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db_unreachable"})
		return
	}
	snapshotLoaded := h.Snapshots != nil && h.Snapshots.Current() != nil
	c.JSON(http.StatusOK, gin.H{
		"status":          "ready",
		"snapshot_loaded": snapshotLoaded,
	})
}
