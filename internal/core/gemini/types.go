package gemini

import "encoding/json"

// Server addresses the live endpoint. It rides on Setup for convenience but
// is excluded from the JSON payload; the address and key only ever shape
// the dial URL.
type Server struct {
	URL    string
	APIKey string
}

// Setup is the one-time handshake frame, sent before any other frame on a
// new connection. Shared read-only across all sessions of a process.
type Setup struct {
	Model             string            `json:"model"`
	GenerationConfig  GenerationConfig  `json:"generationConfig"`
	SystemInstruction Content           `json:"systemInstruction"`
	Tools             []json.RawMessage `json:"tools"`

	Server *Server `json:"-"`
}

func (s *Setup) endpoint() string {
	base := DefaultBidiServer
	key := ""
	if s.Server != nil {
		if s.Server.URL != "" {
			base = s.Server.URL
		}
		key = s.Server.APIKey
	}
	url := base + "?"
	if key != "" {
		url += "key=" + key
	}
	return url
}

type GenerationConfig struct {
	ResponseModalities []string     `json:"responseModalities"`
	SpeechConfig       SpeechConfig `json:"speechConfig"`
}

type SpeechConfig struct {
	VoiceConfig  VoiceConfig `json:"voiceConfig"`
	LanguageCode string      `json:"languageCode,omitempty"`
}

type VoiceConfig struct {
	PrebuiltVoiceConfig PrebuiltVoiceConfig `json:"prebuiltVoiceConfig"`
}

type PrebuiltVoiceConfig struct {
	VoiceName string `json:"voiceName"`
}

// Content is a list of parts with an optional role.
type Content struct {
	Parts []Part `json:"parts"`
	Role  string `json:"role,omitempty"`
}

// Part is one piece of model input or output: text or inline binary data.
type Part struct {
	Text       string `json:"text,omitempty"`
	InlineData *Blob  `json:"inlineData,omitempty"`
}

// Blob is base64 data with its MIME type, e.g. "audio/pcm;rate=24000".
type Blob struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

// RealtimeInput carries streaming input to the model.
type RealtimeInput struct {
	Audio          *Blob  `json:"audio,omitempty"`
	Text           string `json:"text,omitempty"`
	AudioStreamEnd bool   `json:"audioStreamEnd,omitempty"`
}

// request is the outbound frame union.
type request struct {
	Setup         *Setup         `json:"setup,omitempty"`
	RealtimeInput *RealtimeInput `json:"realtimeInput,omitempty"`
}

// ServerContent is the model-output frame: zero or more parts plus turn
// bookkeeping flags.
type ServerContent struct {
	GenerationComplete bool     `json:"generationComplete,omitempty"`
	TurnComplete       bool     `json:"turnComplete,omitempty"`
	Interrupted        bool     `json:"interrupted,omitempty"`
	ModelTurn          *Content `json:"modelTurn,omitempty"`
}

// serverMessage is the inbound frame union.
type serverMessage struct {
	SetupComplete *struct{}      `json:"setupComplete,omitempty"`
	ServerContent *ServerContent `json:"serverContent,omitempty"`
}

func parseServerMessage(data []byte) (*serverMessage, error) {
	var msg serverMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
