package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearCredEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvPracticumToken, "")
	t.Setenv(EnvTelegramToken, "")
	t.Setenv(EnvTelegramChatID, "")
	os.Unsetenv(EnvPracticumToken)
	os.Unsetenv(EnvTelegramToken)
	os.Unsetenv(EnvTelegramChatID)
}

func TestValidateNamesMissingCredential(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{name: "no api token", cfg: Config{Telegram: TelegramConfig{Token: "t", ChatID: 1}}, want: EnvPracticumToken},
		{name: "no telegram token", cfg: Config{Practicum: PracticumConfig{Token: "p"}, Telegram: TelegramConfig{ChatID: 1}}, want: EnvTelegramToken},
		{name: "no chat id", cfg: Config{Practicum: PracticumConfig{Token: "p"}, Telegram: TelegramConfig{Token: "t"}}, want: EnvTelegramChatID},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			var missing *MissingCredentialError
			if !errors.As(err, &missing) {
				t.Fatalf("err = %v, want *MissingCredentialError", err)
			}
			if missing.Name != tt.want {
				t.Fatalf("Name = %q, want %q", missing.Name, tt.want)
			}
		})
	}
}

func TestValidateComplete(t *testing.T) {
	cfg := Config{
		Practicum: PracticumConfig{Token: "p"},
		Telegram:  TelegramConfig{Token: "t", ChatID: 100500},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	clearCredEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	raw := `
practicum:
  token: file-practicum
telegram:
  token: file-telegram
  chat_id: 100500
poll:
  schedule: "10m"
logging:
  level: debug
  console: true
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := NewManager(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Practicum.Token != "file-practicum" {
		t.Fatalf("practicum token = %q", cfg.Practicum.Token)
	}
	if cfg.Telegram.ChatID != 100500 {
		t.Fatalf("chat id = %d", cfg.Telegram.ChatID)
	}
	if cfg.Poll.Schedule != "10m" {
		t.Fatalf("schedule = %q", cfg.Poll.Schedule)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("level = %q", cfg.Logging.Level)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	raw := `{"practicum":{"token":"file-p"},"telegram":{"token":"file-t","chat_id":1}}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	t.Setenv(EnvPracticumToken, "env-p")
	t.Setenv(EnvTelegramToken, "env-t")
	t.Setenv(EnvTelegramChatID, "42")

	cfg, err := NewManager(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Practicum.Token != "env-p" || cfg.Telegram.Token != "env-t" || cfg.Telegram.ChatID != 42 {
		t.Fatalf("env should win over file: %+v", cfg)
	}
}

func TestEnvOnlyWithoutFile(t *testing.T) {
	t.Setenv(EnvPracticumToken, "env-p")
	t.Setenv(EnvTelegramToken, "env-t")
	t.Setenv(EnvTelegramChatID, "7")

	cfg, err := NewManager("").Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestBadChatIDEnv(t *testing.T) {
	t.Setenv(EnvTelegramChatID, "not-a-number")
	if _, err := NewManager("").Load(); err == nil {
		t.Fatal("expected error for malformed chat id")
	}
}

func TestUnknownFieldRejected(t *testing.T) {
	clearCredEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	raw := `{"practicum":{"token":"p"},"surprise":true}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := NewManager(path).Load(); err == nil {
		t.Fatal("expected error for unknown config key")
	}
}

func TestTrailingDataRejected(t *testing.T) {
	clearCredEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	raw := `{"practicum":{"token":"p"}}{"again":true}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := NewManager(path).Load(); err == nil {
		t.Fatal("expected error for trailing config data")
	}
}

func TestRequestTimeout(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		raw     string
		want    time.Duration
		wantErr bool
	}{
		{name: "absent falls back", raw: "", want: 15 * time.Second},
		{name: "zero falls back", raw: "0s", want: 15 * time.Second},
		{name: "explicit value", raw: "30s", want: 30 * time.Second},
		{name: "garbage", raw: "soon", wantErr: true},
		{name: "negative", raw: "-5s", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Config{Practicum: PracticumConfig{RequestTimeout: tt.raw}}
			got, err := cfg.RequestTimeout(15 * time.Second)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("RequestTimeout(%q) = %v, want error", tt.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("RequestTimeout(%q): %v", tt.raw, err)
			}
			if got != tt.want {
				t.Fatalf("RequestTimeout(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}
