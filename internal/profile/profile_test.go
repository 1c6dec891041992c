package profile

import (
	"testing"
)

func TestProfileDefaults(t *testing.T) {
	clearEnvVars(t)

	profile := &Profile{}
	profile.FromEnv()

	tests := []struct {
		name     string
		expected string
		actual   string
	}{
		{"GeminiModel default", "gemini-2.5-flash", profile.GeminiModel},
		{"SMTPHost default", "smtp.gmail.com", profile.SMTPHost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.actual != tt.expected {
				t.Errorf("%s: expected %q, got %q", tt.name, tt.expected, tt.actual)
			}
		})
	}

	if profile.SMTPPort != 465 {
		t.Errorf("SMTPPort: expected 465, got %d", profile.SMTPPort)
	}
	if profile.IsChatEnabled() {
		t.Error("IsChatEnabled should be false without an API key")
	}
	if profile.IsContactEnabled() {
		t.Error("IsContactEnabled should be false without credentials")
	}
}

func TestProfileFromEnv(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("COOKBOT_GEMINI_API_KEY", "test-key")
	t.Setenv("COOKBOT_GEMINI_MODEL", "gemini-2.0-pro")
	t.Setenv("COOKBOT_SENDER_EMAIL", "bot@example.com")
	t.Setenv("COOKBOT_SENDER_PASSWORD", "app-password")
	t.Setenv("COOKBOT_ALLOWED_ORIGINS", "http://localhost:5173, https://example.com")

	profile := &Profile{}
	profile.FromEnv()

	if !profile.IsChatEnabled() {
		t.Error("IsChatEnabled should be true with an API key")
	}
	if profile.GeminiModel != "gemini-2.0-pro" {
		t.Errorf("GeminiModel: expected gemini-2.0-pro, got %q", profile.GeminiModel)
	}
	if !profile.IsContactEnabled() {
		t.Error("IsContactEnabled should be true with sender credentials")
	}
	// Receiver falls back to the sender address.
	if profile.ReceiverEmail != "bot@example.com" {
		t.Errorf("ReceiverEmail: expected sender fallback, got %q", profile.ReceiverEmail)
	}
	if len(profile.AllowedOrigins) != 2 || profile.AllowedOrigins[1] != "https://example.com" {
		t.Errorf("AllowedOrigins: unexpected %v", profile.AllowedOrigins)
	}
}

func TestProfileValidate(t *testing.T) {
	profile := &Profile{Mode: "bogus", Driver: "sqlite", Data: t.TempDir()}
	if err := profile.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if profile.Mode != "demo" {
		t.Errorf("Mode: expected fallback to demo, got %q", profile.Mode)
	}
	if profile.DSN == "" {
		t.Error("DSN should default for the sqlite driver")
	}

	profile = &Profile{Mode: "prod", Driver: "postgres"}
	if err := profile.Validate(); err == nil {
		t.Error("Validate should fail for postgres without a DSN")
	}
}

func clearEnvVars(t *testing.T) {
	for _, key := range []string{
		"COOKBOT_GEMINI_API_KEY",
		"COOKBOT_GEMINI_MODEL",
		"COOKBOT_SMTP_HOST",
		"COOKBOT_SMTP_PORT",
		"COOKBOT_SENDER_EMAIL",
		"COOKBOT_SENDER_PASSWORD",
		"COOKBOT_RECEIVER_EMAIL",
		"COOKBOT_ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
	}
}
