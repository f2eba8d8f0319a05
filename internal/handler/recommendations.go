package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"btrscout/internal/recommend"
	"btrscout/internal/strategy"
)

type RecommendationHandler struct {
	Engine *recommend.Engine
	// MaxTopN caps the requested result size; 0 means no cap.
	MaxTopN int
}

func (h *RecommendationHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/recommendations")
	group.GET("/locations", h.locations)
	group.GET("/properties", h.properties)
	r.GET("/api/v1/hotspots", h.hotspots)
}

func (h *RecommendationHandler) locations(c *gin.Context) {
	if h.Engine == nil {
		Error(c, http.StatusInternalServerError, "engine unavailable", nil)
		return
	}
	strategyName, topN, ok := h.rankingParams(c)
	if !ok {
		return
	}
	items, err := h.Engine.RecommendLocations(strategyName, topN)
	if err != nil {
		if errors.Is(err, strategy.ErrUnknownStrategy) {
			Error(c, http.StatusBadRequest, err.Error(), nil)
			return
		}
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, items, map[string]any{
		"strategy": strategyName,
		"count":    len(items),
	})
}

func (h *RecommendationHandler) properties(c *gin.Context) {
	if h.Engine == nil {
		Error(c, http.StatusInternalServerError, "engine unavailable", nil)
		return
	}
	strategyName, topN, ok := h.rankingParams(c)
	if !ok {
		return
	}
	budgetRaw := strings.TrimSpace(c.Query("budget"))
	if budgetRaw == "" {
		Error(c, http.StatusBadRequest, "budget required", nil)
		return
	}
	budget, err := decimal.NewFromString(budgetRaw)
	if err != nil || budget.LessThanOrEqual(decimal.Zero) {
		Error(c, http.StatusBadRequest, "invalid budget", nil)
		return
	}
	items, err := h.Engine.RecommendProperties(budget, strategyName, topN)
	if err != nil {
		if errors.Is(err, strategy.ErrUnknownStrategy) {
			Error(c, http.StatusBadRequest, err.Error(), nil)
			return
		}
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, items, map[string]any{
		"strategy": strategyName,
		"budget":   budget.String(),
		"count":    len(items),
	})
}

func (h *RecommendationHandler) hotspots(c *gin.Context) {
	if h.Engine == nil {
		Error(c, http.StatusInternalServerError, "engine unavailable", nil)
		return
	}
	items := h.Engine.Hotspots()
	Ok(c, items, map[string]any{"count": len(items)})
}

func (h *RecommendationHandler) rankingParams(c *gin.Context) (string, int, bool) {
	strategyName := strings.TrimSpace(c.Query("strategy"))
	if strategyName == "" {
		strategyName = strategy.Balanced
	}
	topN := 10
	if raw := strings.TrimSpace(c.Query("top_n")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			Error(c, http.StatusBadRequest, "invalid top_n", nil)
			return "", 0, false
		}
		topN = parsed
	}
	if h.MaxTopN > 0 && topN > h.MaxTopN {
		topN = h.MaxTopN
	}
	return strategyName, topN, true
}
