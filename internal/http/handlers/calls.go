package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tw2gem/gateway/internal/repo/memory"
	"github.com/tw2gem/gateway/pkg/types"
	"github.com/tw2gem/gateway/pkg/ws"
)

// CallsHandler exposes the in-memory call registry: list active calls and
// hang one up. Hangup closes the telephony leg; the cascade ends the
// Gemini leg.
type CallsHandler struct {
	Repo *memory.CallRepo
	Hub  *ws.Hub
}

func NewCallsHandler(repo *memory.CallRepo, hub *ws.Hub) *CallsHandler {
	return &CallsHandler{Repo: repo, Hub: hub}
}

func (h *CallsHandler) List(c *gin.Context) {
	calls := h.Repo.List()
	resp := types.CallsResp{Calls: make([]types.CallInfo, 0, len(calls))}
	for _, call := range calls {
		resp.Calls = append(resp.Calls, types.CallInfo{
			CallID:     call.ID,
			StreamSid:  call.StreamSid,
			CallSid:    call.CallSid,
			AccountSid: call.AccountSid,
			StartedAt:  call.StartedAt.UnixMilli(),
			MediaIn:    call.MediaIn,
			MediaOut:   call.MediaOut,
		})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CallsHandler) Hangup(c *gin.Context) {
	sid := c.Param("sid")
	conn, ok := h.Hub.Get(sid)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
		return
	}
	conn.Close()
	c.Status(http.StatusNoContent)
}

func (h *CallsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, types.HealthResp{
		Status: "ok",
		Calls:  len(h.Repo.List()),
	})
}
