// Package gemini is a WebSocket client for the Gemini Live
// (BidiGenerateContent) bidirectional streaming protocol.
package gemini

import (
	"log"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
)

// DefaultBidiServer is the production Gemini Live endpoint.
const DefaultBidiServer = "wss://generativelanguage.googleapis.com/ws/google.ai.generativelanguage.v1beta.GenerativeService.BidiGenerateContent"

// Handlers receive the client's observable events. All callbacks run on the
// client's read goroutine; OnClose and OnError fire at most once each.
type Handlers struct {
	OnReady         func()
	OnServerContent func(*ServerContent)
	OnError         func(error)
	OnClose         func()
}

// LiveClient holds one live connection. The session moves through
// connecting -> awaiting setupComplete -> ready -> closed; audio and text
// sends are silently dropped until the server acknowledges the setup
// handshake. Sends are never queued: before readiness the contract is
// at-most-once, best-effort, because stale buffered audio is worse than
// dropped audio on a live call.
type LiveClient struct {
	conn     *websocket.Conn
	handlers Handlers

	mu     sync.Mutex
	ready  bool
	closed atomic.Bool
}

// Dial connects, transmits the setup handshake as the first frame and
// starts the read loop. The setup's Server sub-config is a transport
// concern only: it shapes the connection URL and never reaches the wire.
func Dial(setup *Setup, handlers Handlers) (*LiveClient, error) {
	url := setup.endpoint()

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}

	c := &LiveClient{conn: conn, handlers: handlers}
	if err := c.writeJSON(&request{Setup: setup}); err != nil {
		_ = conn.Close()
		return nil, err
	}

	go c.readLoop()
	return c, nil
}

func (c *LiveClient) readLoop() {
	defer c.shutdown(nil)

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.shutdown(err)
			}
			return
		}

		msg, err := parseServerMessage(data)
		if err != nil {
			log.Println("gemini: dropping unparseable frame:", err)
			continue
		}

		switch {
		case msg.SetupComplete != nil:
			c.mu.Lock()
			c.ready = true
			c.mu.Unlock()
			if c.handlers.OnReady != nil {
				c.handlers.OnReady()
			}
		case msg.ServerContent != nil:
			if c.handlers.OnServerContent != nil {
				c.handlers.OnServerContent(msg.ServerContent)
			}
		}
	}
}

// Ready reports whether the setup handshake has been acknowledged.
func (c *LiveClient) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ready
}

// SendRealtime forwards inline audio or text to the model. A send before
// the session is ready is a silent no-op.
func (c *LiveClient) SendRealtime(input *RealtimeInput) {
	c.mu.Lock()
	ready := c.ready
	c.mu.Unlock()
	if !ready {
		return
	}
	if err := c.writeJSON(&request{RealtimeInput: input}); err != nil {
		log.Println("gemini: realtime write failed:", err)
	}
}

// SendText is a convenience wrapper over SendRealtime.
func (c *LiveClient) SendText(text string) {
	c.SendRealtime(&RealtimeInput{Text: text})
}

func (c *LiveClient) writeJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// Close tears down the connection. Idempotent.
func (c *LiveClient) Close() {
	c.shutdown(nil)
}

// shutdown tolerates the cascade re-entering it from its own OnClose
// handler (session teardown closes this client again), hence the atomic
// flag instead of sync.Once.
func (c *LiveClient) shutdown(cause error) {
	if !c.closed.CompareAndSwap(false, true) {
		return
	}
	c.mu.Lock()
	c.ready = false
	c.mu.Unlock()
	if cause != nil && c.handlers.OnError != nil {
		c.handlers.OnError(cause)
	}
	_ = c.conn.Close()
	if c.handlers.OnClose != nil {
		c.handlers.OnClose()
	}
}
