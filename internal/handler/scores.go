package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"btrscout/internal/dataset"
	"btrscout/internal/scoring"
)

type ScoreHandler struct {
	Snapshots *dataset.Store
}

func (h *ScoreHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/scores")
	group.GET("/locations/:location", h.locationScore)
}

func (h *ScoreHandler) locationScore(c *gin.Context) {
	if h.Snapshots == nil {
		Error(c, http.StatusInternalServerError, "snapshot store unavailable", nil)
		return
	}
	location := strings.TrimSpace(c.Param("location"))
	if location == "" {
		Error(c, http.StatusBadRequest, "location required", nil)
		return
	}
	snap := h.Snapshots.Current()
	result := scoring.ScoreLocation(location, scoring.LocationInputs{
		Amenities:    snap.Amenities,
		Rentals:      snap.Rentals,
		Energy:       snap.Energy,
		Transactions: snap.Transactions,
		Planning:     snap.Planning,
	})
	Ok(c, result, map[string]any{
		"location": location,
		"has_data": result.HasData,
	})
}
