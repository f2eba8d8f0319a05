package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"btrscout/internal/strategy"
)

type StrategyHandler struct{}

func (h *StrategyHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/strategies")
	group.GET("", h.listStrategies)
	group.GET("/:name", h.getStrategy)
}

func (h *StrategyHandler) listStrategies(c *gin.Context) {
	Ok(c, strategy.All(), nil)
}

func (h *StrategyHandler) getStrategy(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		Error(c, http.StatusBadRequest, "name required", nil)
		return
	}
	profile, err := strategy.Get(name)
	if err != nil {
		if errors.Is(err, strategy.ErrUnknownStrategy) {
			Error(c, http.StatusNotFound, err.Error(), nil)
			return
		}
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, profile, nil)
}
