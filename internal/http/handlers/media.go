package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/tw2gem/gateway/internal/core/gateway"
)

// MediaHandler upgrades incoming Twilio media-stream connections and hands
// them to the gateway.
type MediaHandler struct {
	Gateway  *gateway.Gateway
	Upgrader websocket.Upgrader
}

func NewMediaHandler(g *gateway.Gateway) *MediaHandler {
	return &MediaHandler{
		Gateway: g,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *MediaHandler) WS(c *gin.Context) {
	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	h.Gateway.Accept(conn)
}
