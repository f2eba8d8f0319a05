package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"btrscout/internal/repository"
	"btrscout/internal/service"
)

type AnalysisHandler struct {
	Service *service.AnalysisService
}

func (h *AnalysisHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/analyses")
	group.POST("", h.createAnalysis)
	group.GET("", h.listAnalyses)
	group.GET("/:id", h.getAnalysis)
}

func (h *AnalysisHandler) createAnalysis(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "analysis service unavailable", nil)
		return
	}
	var req service.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body: "+err.Error(), nil)
		return
	}
	report, err := h.Service.Analyze(c.Request.Context(), req)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, report, nil)
}

func (h *AnalysisHandler) getAnalysis(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "analysis service unavailable", nil)
		return
	}
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	report, err := h.Service.GetReport(c.Request.Context(), id)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if report == nil {
		Error(c, http.StatusNotFound, "report not found", nil)
		return
	}
	Ok(c, report, nil)
}

func (h *AnalysisHandler) listAnalyses(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "analysis service unavailable", nil)
		return
	}
	params := repository.ListReportsParams{Limit: 50}
	if raw := strings.TrimSpace(c.Query("postcode")); raw != "" {
		postcode := strings.ToUpper(raw)
		params.Postcode = &postcode
	}
	if raw := strings.TrimSpace(c.Query("min_score")); raw != "" {
		minScore, err := strconv.Atoi(raw)
		if err != nil {
			Error(c, http.StatusBadRequest, "invalid min_score", nil)
			return
		}
		params.MinScore = &minScore
	}
	if raw := strings.TrimSpace(c.Query("since")); raw != "" {
		since, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			Error(c, http.StatusBadRequest, "invalid since, want RFC3339", nil)
			return
		}
		params.Since = &since
	}
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 || limit > 500 {
			Error(c, http.StatusBadRequest, "invalid limit", nil)
			return
		}
		params.Limit = limit
	}
	if raw := strings.TrimSpace(c.Query("offset")); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			Error(c, http.StatusBadRequest, "invalid offset", nil)
			return
		}
		params.Offset = offset
	}

	rows, total, err := h.Service.ListReports(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, rows, map[string]any{
		"total":  total,
		"limit":  params.Limit,
		"offset": params.Offset,
	})
}
