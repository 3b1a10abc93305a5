// Package gateway bridges Twilio media streams to Gemini Live sessions.
// Each accepted telephony socket owns at most one Gemini client; the two
// legs relay audio through the transcoder and tear each other down.
package gateway

import (
	"log"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/tw2gem/gateway/internal/core/gemini"
	"github.com/tw2gem/gateway/internal/core/twilio"
	"github.com/tw2gem/gateway/internal/repo/memory"
	"github.com/tw2gem/gateway/pkg/ws"
)

// Hooks are the gateway's observable lifecycle points. All optional; the
// gateway itself takes no action on stop/dtmf/mark beyond bookkeeping.
type Hooks struct {
	OnNewCall    func(*Session)
	OnCallReady  func(*Session)
	OnCallClosed func(*Session)
	OnStop       func(*Session, *twilio.StopEvent)
	OnDtmf       func(*Session, *twilio.DtmfEvent)
	OnMark       func(*Session, *twilio.MarkEvent)
}

// Gateway accepts telephony sockets and runs one relay session per call.
// The Gemini setup is shared read-only across all sessions.
type Gateway struct {
	setup *gemini.Setup
	repo  *memory.CallRepo
	hub   *ws.Hub
	hooks Hooks
}

func New(setup *gemini.Setup, repo *memory.CallRepo, hub *ws.Hub, hooks Hooks) *Gateway {
	return &Gateway{setup: setup, repo: repo, hub: hub, hooks: hooks}
}

// Accept runs one call session over an upgraded WebSocket. It blocks until
// the telephony leg dies and the session is torn down.
func (g *Gateway) Accept(wsConn *websocket.Conn) {
	s := &Session{
		ID: "call_" + uuid.NewString(),
		g:  g,
	}
	s.tw = twilio.NewConn(wsConn, twilio.Handlers{
		OnConnected: s.onConnected,
		OnStart:     s.onStart,
		OnMedia:     s.onMedia,
		OnStop:      s.onStop,
		OnDtmf:      s.onDtmf,
		OnMark:      s.onMark,
		OnError:     s.onError,
		OnClose:     func(*twilio.Conn) { s.teardown() },
	})
	log.Println("gateway: new telephony connection", s.ID)
	s.tw.Serve()
}
