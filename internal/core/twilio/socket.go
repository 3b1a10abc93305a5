// Package twilio terminates one Twilio Media Streams WebSocket per call and
// dispatches its JSON event protocol to a typed handler table.
package twilio

import (
	"encoding/json"
	"log"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
)

// Handlers is the per-event callback table for one stream. Every field is
// optional; a nil handler means the event type is ignored. OnClose and
// OnError fire at most once each, regardless of call state.
type Handlers struct {
	OnConnected func(*Conn, *ConnectedEvent)
	OnStart     func(*Conn, *StartEvent)
	OnMedia     func(*Conn, *MediaEvent)
	OnStop      func(*Conn, *StopEvent)
	OnDtmf      func(*Conn, *DtmfEvent)
	OnMark      func(*Conn, *MarkEvent)
	OnError     func(*Conn, error)
	OnClose     func(*Conn)
}

// Conn wraps one accepted media-stream socket. Handlers run sequentially on
// the Serve goroutine; writes may come from any goroutine.
type Conn struct {
	ws       *websocket.Conn
	handlers Handlers

	writeMu sync.Mutex
	closed  atomic.Bool
}

// NewConn wires an upgraded WebSocket to a handler table.
func NewConn(ws *websocket.Conn, handlers Handlers) *Conn {
	return &Conn{ws: ws, handlers: handlers}
}

// Serve reads frames until the socket dies, dispatching each one. It blocks
// the calling goroutine and always ends by firing OnClose exactly once.
// Unparseable or unknown frames are dropped; the stream continues.
func (c *Conn) Serve() {
	defer c.shutdown(nil)

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.shutdown(err)
			}
			return
		}

		var msg envelope
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Println("twilio: dropping unparseable frame:", err)
			continue
		}
		c.dispatch(&msg)
	}
}

func (c *Conn) dispatch(msg *envelope) {
	switch msg.Event {
	case EventConnected:
		if c.handlers.OnConnected != nil {
			c.handlers.OnConnected(c, &ConnectedEvent{Protocol: msg.Protocol, Version: msg.Version})
		}
	case EventStart:
		if msg.Start == nil {
			log.Println("twilio: start frame without start payload, dropped")
			return
		}
		if c.handlers.OnStart != nil {
			c.handlers.OnStart(c, &StartEvent{
				SequenceNumber: msg.SequenceNumber,
				StreamSid:      msg.StreamSid,
				Start:          *msg.Start,
			})
		}
	case EventMedia:
		if msg.Media == nil {
			return
		}
		if c.handlers.OnMedia != nil {
			c.handlers.OnMedia(c, &MediaEvent{
				SequenceNumber: msg.SequenceNumber,
				StreamSid:      msg.StreamSid,
				Media:          *msg.Media,
			})
		}
	case EventStop:
		if msg.Stop == nil {
			return
		}
		if c.handlers.OnStop != nil {
			c.handlers.OnStop(c, &StopEvent{
				SequenceNumber: msg.SequenceNumber,
				StreamSid:      msg.StreamSid,
				Stop:           *msg.Stop,
			})
		}
	case EventDtmf:
		if msg.Dtmf == nil {
			return
		}
		if c.handlers.OnDtmf != nil {
			c.handlers.OnDtmf(c, &DtmfEvent{
				SequenceNumber: msg.SequenceNumber,
				StreamSid:      msg.StreamSid,
				Dtmf:           *msg.Dtmf,
			})
		}
	case EventMark:
		if msg.Mark == nil {
			return
		}
		if c.handlers.OnMark != nil {
			c.handlers.OnMark(c, &MarkEvent{
				SequenceNumber: msg.SequenceNumber,
				StreamSid:      msg.StreamSid,
				Mark:           *msg.Mark,
			})
		}
	default:
		log.Println("twilio: unknown event dropped:", msg.Event)
	}
}

// SendMedia emits one outbound media frame. Fire-and-forget: a write
// failure surfaces through the socket's own close path, not here.
func (c *Conn) SendMedia(streamSid, base64Payload string) {
	msg := outboundMedia{
		Event:     EventMedia,
		StreamSid: streamSid,
		Media:     outboundMediaInner{Payload: base64Payload},
	}
	c.writeMu.Lock()
	err := c.ws.WriteJSON(msg)
	c.writeMu.Unlock()
	if err != nil {
		log.Println("twilio: media write failed:", err)
	}
}

// Close tears down the socket. Idempotent; OnClose still fires exactly once
// via the Serve loop's shutdown path or directly if Serve never ran.
func (c *Conn) Close() {
	c.shutdown(nil)
}

// shutdown is safe against the close cascade re-entering it from its own
// OnClose handler, which is why it is gated on an atomic flag rather than
// sync.Once.
func (c *Conn) shutdown(cause error) {
	if !c.closed.CompareAndSwap(false, true) {
		return
	}
	if cause != nil && c.handlers.OnError != nil {
		c.handlers.OnError(c, cause)
	}
	_ = c.ws.Close()
	if c.handlers.OnClose != nil {
		c.handlers.OnClose(c)
	}
}
