package gateway

import (
	"encoding/base64"
	"log"
	"sync"
	"time"

	"github.com/tw2gem/gateway/internal/core/audio"
	"github.com/tw2gem/gateway/internal/core/gemini"
	"github.com/tw2gem/gateway/internal/core/twilio"
	"github.com/tw2gem/gateway/internal/repo/memory"
)

// MIME types negotiated with the live endpoint. Anything else is filtered,
// never mis-transcoded.
const (
	mimePCM16k = "audio/pcm;rate=16000"
	mimePCM24k = "audio/pcm;rate=24000"
)

// Session is one call: the telephony socket it exclusively owns plus at
// most one Gemini client whose lifetime it bounds. The mutex serializes
// the Twilio-side and Gemini-side handlers, so per-call state is never
// touched from two goroutines at once.
type Session struct {
	ID string
	g  *Gateway

	mu        sync.Mutex
	tw        *twilio.Conn
	streamSid string
	ai        *gemini.LiveClient
	aiReady   bool

	tearOnce sync.Once
}

// StreamSid returns the Twilio stream identifier, empty before start.
func (s *Session) StreamSid() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.streamSid
}

func (s *Session) onConnected(_ *twilio.Conn, ev *twilio.ConnectedEvent) {
	log.Printf("gateway: %s connected protocol=%s version=%s", s.ID, ev.Protocol, ev.Version)
}

func (s *Session) onStart(conn *twilio.Conn, ev *twilio.StartEvent) {
	s.mu.Lock()
	if s.ai != nil {
		s.mu.Unlock()
		log.Printf("gateway: %s duplicate start dropped", s.ID)
		return
	}
	s.streamSid = ev.StreamSid
	s.mu.Unlock()

	s.g.repo.Save(&memory.Call{
		ID:         s.ID,
		StreamSid:  ev.StreamSid,
		CallSid:    ev.Start.CallSid,
		AccountSid: ev.Start.AccountSid,
		StartedAt:  time.Now(),
	})
	s.g.hub.Add(ev.StreamSid, conn)
	if s.g.hooks.OnNewCall != nil {
		s.g.hooks.OnNewCall(s)
	}

	client, err := gemini.Dial(s.g.setup, gemini.Handlers{
		OnReady:         s.onAIReady,
		OnServerContent: s.onServerContent,
		OnError: func(err error) {
			log.Printf("gateway: %s gemini error: %v", s.ID, err)
		},
		// Either leg dying ends the call; an AI-side termination
		// force-closes the telephony socket and vice versa.
		OnClose: func() { conn.Close() },
	})
	if err != nil {
		log.Printf("gateway: %s gemini dial failed: %v", s.ID, err)
		conn.Close()
		return
	}

	s.mu.Lock()
	s.ai = client
	s.mu.Unlock()
}

func (s *Session) onAIReady() {
	s.mu.Lock()
	s.aiReady = true
	s.mu.Unlock()
	log.Printf("gateway: %s gemini live ready", s.ID)
	if s.g.hooks.OnCallReady != nil {
		s.g.hooks.OnCallReady(s)
	}
}

// onMedia forwards one inbound telephony frame to the model. Frames that
// arrive before the AI leg is ready are dropped, not queued; outbound-track
// echoes and empty payloads are never forwarded.
func (s *Session) onMedia(_ *twilio.Conn, ev *twilio.MediaEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ai == nil || !s.aiReady {
		return
	}
	if ev.Media.Track != twilio.TrackInbound || ev.Media.Payload == "" {
		return
	}

	mulaw, err := base64.StdEncoding.DecodeString(ev.Media.Payload)
	if err != nil {
		log.Printf("gateway: %s bad media payload: %v", s.ID, err)
		return
	}
	pcm := audio.MuLawToPCM16k(mulaw)
	s.ai.SendRealtime(&gemini.RealtimeInput{
		Audio: &gemini.Blob{
			MimeType: mimePCM16k,
			Data:     base64.StdEncoding.EncodeToString(pcm),
		},
	})
	s.g.repo.IncMediaIn(s.streamSid)
}

// onServerContent relays model audio back to the telephony leg, one media
// frame per matching part, in part order. Parts whose inline data is not
// 24 kHz PCM are ignored. A transcode failure aborts that part only.
func (s *Session) onServerContent(sc *gemini.ServerContent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.streamSid == "" || s.ai == nil || !s.aiReady {
		return
	}
	if sc.ModelTurn == nil || len(sc.ModelTurn.Parts) == 0 {
		return
	}

	for _, part := range sc.ModelTurn.Parts {
		inline := part.InlineData
		if inline == nil || inline.MimeType != mimePCM24k || inline.Data == "" {
			continue
		}
		pcm, err := base64.StdEncoding.DecodeString(inline.Data)
		if err != nil {
			log.Printf("gateway: %s bad inline audio: %v", s.ID, err)
			continue
		}
		mulaw, err := audio.PCM24kToMuLaw(pcm)
		if err != nil {
			log.Printf("gateway: %s transcode failed: %v", s.ID, err)
			continue
		}
		s.tw.SendMedia(s.streamSid, base64.StdEncoding.EncodeToString(mulaw))
		s.g.repo.IncMediaOut(s.streamSid)
	}
}

func (s *Session) onStop(_ *twilio.Conn, ev *twilio.StopEvent) {
	log.Printf("gateway: %s stop callSid=%s", s.ID, ev.Stop.CallSid)
	if s.g.hooks.OnStop != nil {
		s.g.hooks.OnStop(s, ev)
	}
}

func (s *Session) onDtmf(_ *twilio.Conn, ev *twilio.DtmfEvent) {
	if s.g.hooks.OnDtmf != nil {
		s.g.hooks.OnDtmf(s, ev)
	}
}

func (s *Session) onMark(_ *twilio.Conn, ev *twilio.MarkEvent) {
	if s.g.hooks.OnMark != nil {
		s.g.hooks.OnMark(s, ev)
	}
}

func (s *Session) onError(_ *twilio.Conn, err error) {
	log.Printf("gateway: %s telephony error: %v", s.ID, err)
}

// teardown releases everything the session owns. Runs at most once, from
// whichever leg dies first.
func (s *Session) teardown() {
	s.tearOnce.Do(func() {
		s.mu.Lock()
		ai := s.ai
		sid := s.streamSid
		s.ai = nil
		s.aiReady = false
		s.mu.Unlock()

		if ai != nil {
			ai.Close()
		}
		if sid != "" {
			s.g.hub.Remove(sid)
			s.g.repo.Remove(sid)
		}
		log.Println("gateway: call ended", s.ID)
		if s.g.hooks.OnCallClosed != nil {
			s.g.hooks.OnCallClosed(s)
		}
	})
}
