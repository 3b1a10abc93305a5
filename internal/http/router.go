package http

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/tw2gem/gateway/internal/config"
	"github.com/tw2gem/gateway/internal/core/gateway"
	"github.com/tw2gem/gateway/internal/core/gemini"
	"github.com/tw2gem/gateway/internal/http/handlers"
	"github.com/tw2gem/gateway/internal/repo/memory"
	"github.com/tw2gem/gateway/pkg/ws"
)

func NewRouter(cfg config.Config) *gin.Engine {
	r := gin.Default()
	repo := memory.NewCallRepo()
	hub := ws.NewHub()

	setup := &gemini.Setup{
		Model: cfg.Model,
		GenerationConfig: gemini.GenerationConfig{
			ResponseModalities: []string{"audio"},
			SpeechConfig: gemini.SpeechConfig{
				VoiceConfig: gemini.VoiceConfig{
					PrebuiltVoiceConfig: gemini.PrebuiltVoiceConfig{VoiceName: cfg.VoiceName},
				},
				LanguageCode: cfg.LanguageCode,
			},
		},
		SystemInstruction: gemini.Content{
			Parts: []gemini.Part{{Text: cfg.SystemInstruction}},
		},
		Server: &gemini.Server{URL: cfg.GeminiURL, APIKey: cfg.GeminiAPIKey},
	}

	gw := gateway.New(setup, repo, hub, gateway.Hooks{
		OnCallReady: func(s *gateway.Session) {
			log.Println("gemini live connection is ready for call", s.StreamSid())
		},
	})

	mh := handlers.NewMediaHandler(gw)
	ch := handlers.NewCallsHandler(repo, hub)

	r.GET("/", mh.WS)
	r.GET("/healthz", ch.Health)
	api := r.Group("/v1")
	api.GET("/calls", ch.List)
	api.DELETE("/calls/:sid", ch.Hangup)
	return r
}
