package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"btrscout/internal/dataset"
	"btrscout/internal/recommend"
	"btrscout/internal/strategy"
)

const streamWriteTimeout = 10 * time.Second

// StreamHandler pushes a fresh location ranking to websocket clients every
// time the dataset snapshot is refreshed. Clients that cannot keep up miss
// updates rather than stalling the refresh path.
type StreamHandler struct {
	Snapshots *dataset.Store
	Engine    *recommend.Engine
	Logger    *zap.Logger

	// Strategy and TopN shape the pushed ranking. An empty or unknown
	// strategy falls back to balanced instead of failing every client.
	Strategy string
	TopN     int
}

func (h *StreamHandler) strategyName() string {
	if _, err := strategy.Get(h.Strategy); err != nil {
		return strategy.Balanced
	}
	return h.Strategy
}

type streamUpdate struct {
	Strategy    string                             `json:"strategy"`
	RefreshedAt time.Time                          `json:"refreshed_at"`
	Locations   []recommend.LocationRecommendation `json:"locations"`
}

func (h *StreamHandler) Register(r *gin.Engine) {
	r.GET("/ws/recommendations", h.stream)
}

func (h *StreamHandler) stream(c *gin.Context) {
	if h.Snapshots == nil || h.Engine == nil {
		Error(c, http.StatusInternalServerError, "stream unavailable", nil)
		return
	}

	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("websocket accept failed", zap.Error(err))
		}
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "done")

	ctx := c.Request.Context()
	updates := h.Snapshots.Subscribe(1)
	defer h.Snapshots.Unsubscribe(updates)

	// Initial push so a new client sees the current ranking immediately.
	if err := h.push(ctx, conn, h.Snapshots.Current().LoadedAt); err != nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-updates:
			if !ok {
				return
			}
			if err := h.push(ctx, conn, snap.LoadedAt); err != nil {
				return
			}
		}
	}
}

func (h *StreamHandler) push(ctx context.Context, conn *websocket.Conn, refreshedAt time.Time) error {
	name := h.strategyName()
	locations, err := h.Engine.RecommendLocations(name, h.TopN)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("stream ranking failed", zap.Error(err))
		}
		return err
	}
	writeCtx, cancel := context.WithTimeout(ctx, streamWriteTimeout)
	defer cancel()
	return wsjson.Write(writeCtx, conn, streamUpdate{
		Strategy:    name,
		RefreshedAt: refreshedAt,
		Locations:   locations,
	})
}
