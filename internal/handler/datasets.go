package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"btrscout/internal/dataset"
	"btrscout/internal/models"
	"btrscout/internal/repository"
)

// DatasetHandler exposes dataset freshness and the collector ingest
// endpoints. Each ingest replaces a whole dataset inside one transaction
// and then refreshes the in-memory snapshot, so readers flip from the old
// dataset to the new one atomically.
type DatasetHandler struct {
	Repo      repository.Repository
	Snapshots *dataset.Store
}

func (h *DatasetHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/datasets")
	group.GET("", h.listDatasets)
	group.POST("/refresh", h.refresh)
	group.POST("/:name", h.ingest)
}

func (h *DatasetHandler) listDatasets(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	states, err := h.Repo.ListDatasetStates(c.Request.Context())
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	meta := map[string]any{}
	if h.Snapshots != nil {
		snap := h.Snapshots.Current()
		meta["snapshot_loaded_at"] = snap.LoadedAt
	}
	Ok(c, states, meta)
}

func (h *DatasetHandler) refresh(c *gin.Context) {
	if h.Snapshots == nil {
		Error(c, http.StatusInternalServerError, "snapshot store unavailable", nil)
		return
	}
	if err := h.Snapshots.Refresh(c.Request.Context()); err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	snap := h.Snapshots.Current()
	counts := map[string]any{}
	for _, name := range models.DatasetNames() {
		counts[name] = snap.RowCount(name)
	}
	Ok(c, counts, map[string]any{"loaded_at": snap.LoadedAt})
}

func (h *DatasetHandler) ingest(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	name := strings.TrimSpace(c.Param("name"))

	var rows int
	var err error
	switch name {
	case models.DatasetTransactions:
		rows, err = ingestRows(c, h, h.Repo.ReplaceTransactionsTx)
	case models.DatasetRentals:
		rows, err = ingestRows(c, h, h.Repo.ReplaceRentalsTx)
	case models.DatasetAmenities:
		rows, err = ingestRows(c, h, h.Repo.ReplaceAmenitiesTx)
	case models.DatasetEnergy:
		rows, err = ingestRows(c, h, h.Repo.ReplaceEnergyRecordsTx)
	case models.DatasetPlanning:
		rows, err = ingestRows(c, h, h.Repo.ReplacePlanningApplicationsTx)
	default:
		Error(c, http.StatusNotFound, "unknown dataset", map[string]any{
			"known": models.DatasetNames(),
		})
		return
	}
	if err != nil {
		if c.Writer.Written() {
			return
		}
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}

	if h.Snapshots != nil {
		if err := h.Snapshots.Refresh(c.Request.Context()); err != nil {
			Error(c, http.StatusBadGateway, "stored but refresh failed: "+err.Error(), nil)
			return
		}
	}
	Ok(c, map[string]any{"dataset": name, "rows": rows}, nil)
}

// ingestRows binds the request body to a typed row slice and bulk-replaces
// the dataset in one transaction. Binding failures answer the request
// directly and return a sentinel error so the caller stops.
func ingestRows[T any](c *gin.Context, h *DatasetHandler, replace func(ctx context.Context, tx *gorm.DB, items []T) error) (int, error) {
	var items []T
	if err := c.ShouldBindJSON(&items); err != nil {
		Error(c, http.StatusBadRequest, "invalid body: "+err.Error(), nil)
		return 0, err
	}
	err := h.Repo.InTx(c.Request.Context(), func(tx *gorm.DB) error {
		return replace(c.Request.Context(), tx, items)
	})
	if err != nil {
		return 0, err
	}
	return len(items), nil
}
