package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")

	cfg := Load()
	if cfg.Port != "6593" {
		t.Errorf("port default: got %q", cfg.Port)
	}
	if cfg.Model != "models/gemini-2.0-flash-live-001" {
		t.Errorf("model default: got %q", cfg.Model)
	}
	if cfg.VoiceName != "Puck" || cfg.LanguageCode != "en-US" {
		t.Errorf("voice defaults: got %q %q", cfg.VoiceName, cfg.LanguageCode)
	}
}

func TestAPIKeyFallback(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "fallback-key")

	cfg := Load()
	if cfg.GeminiAPIKey != "fallback-key" {
		t.Errorf("expected GOOGLE_API_KEY fallback, got %q", cfg.GeminiAPIKey)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "valid", cfg: Config{Port: "6593", GeminiAPIKey: "k"}},
		{name: "missing key", cfg: Config{Port: "6593"}, wantErr: "GEMINI_API_KEY"},
		{name: "bad port", cfg: Config{Port: "nope", GeminiAPIKey: "k"}, wantErr: "PORT"},
		{name: "port out of range", cfg: Config{Port: "70000", GeminiAPIKey: "k"}, wantErr: "PORT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatal(err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error mentioning %q, got %v", tt.wantErr, err)
			}
		})
	}
}
