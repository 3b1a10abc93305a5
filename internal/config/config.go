package config

import (
	"errors"
	"os"
	"strconv"
)

// Config is the process-wide configuration, read once at startup and
// immutable for the process lifetime.
type Config struct {
	Port string

	GeminiAPIKey string
	GeminiURL    string

	Model             string
	VoiceName         string
	LanguageCode      string
	SystemInstruction string

	LogFile string
}

func Load() Config {
	return Config{
		Port:         getenv("PORT", "6593"),
		GeminiAPIKey: getenv("GEMINI_API_KEY", os.Getenv("GOOGLE_API_KEY")),
		GeminiURL:    getenv("GEMINI_LIVE_URL", ""),
		Model:        getenv("GEMINI_MODEL", "models/gemini-2.0-flash-live-001"),
		VoiceName:    getenv("GEMINI_VOICE", "Puck"),
		LanguageCode: getenv("GEMINI_LANGUAGE", "en-US"),
		SystemInstruction: getenv("SYSTEM_INSTRUCTION",
			"You are a professional AI assistant for customer service calls. Be helpful, polite, and efficient."),
		LogFile: getenv("LOG_FILE", ""),
	}
}

// Validate rejects configurations that can only fail at call time.
func (c Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return errors.New("config: GEMINI_API_KEY (or GOOGLE_API_KEY) is required")
	}
	if p, err := strconv.Atoi(c.Port); err != nil || p <= 0 || p > 65535 {
		return errors.New("config: PORT must be a valid TCP port")
	}
	return nil
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
