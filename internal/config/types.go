package config

import "fmt"

// Env variable names for the three required credentials. Values from the
// environment override the config file, so the bot can run with no file
// at all, the way the original deployment did.
const (
	EnvPracticumToken = "PRACTICUM_TOKEN"
	EnvTelegramToken  = "TELEGRAM_TOKEN"
	EnvTelegramChatID = "TELEGRAM_CHAT_ID"
)

type Config struct {
	Practicum PracticumConfig `json:"practicum"`
	Telegram  TelegramConfig  `json:"telegram"`
	Poll      PollConfig      `json:"poll"`
	Logging   LoggingConfig   `json:"logging"`
	Notifier  *NotifierConfig `json:"notifier,omitempty"`
}

// PracticumConfig points at the review status API.
type PracticumConfig struct {
	Token    string `json:"token"`
	Endpoint string `json:"endpoint,omitempty"`
	// RequestTimeout is a Go duration string (e.g. "15s").
	RequestTimeout string `json:"request_timeout,omitempty"`
}

type TelegramConfig struct {
	Token    string `json:"token"`
	ChatID   int64  `json:"chat_id"`
	ThreadID int    `json:"thread_id,omitempty"`
}

// PollConfig controls cycle timing.
//
// Schedule accepts a Go duration ("10m"), HH:MM ("00:50"), or a cron
// expression ("*/10 * * * *"). Defaults to "600s". The schedule also
// serves as the fallback cursor look-back window.
type PollConfig struct {
	Schedule string `json:"schedule,omitempty"`
}

type LoggingConfig struct {
	Level   string      `json:"level"`
	Console bool        `json:"console"`
	File    LoggingFile `json:"file"`
}

type LoggingFile struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

// NotifierConfig tunes outbound delivery. Omitting the section keeps
// defaults (1 msg/sec, history of 100).
type NotifierConfig struct {
	RatePerSec  int `json:"rate_per_sec,omitempty"`
	HistorySize int `json:"history_size,omitempty"`
}

// MissingCredentialError names the configuration value whose absence
// keeps the bot from starting.
type MissingCredentialError struct {
	Name string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("missing required configuration value: %s", e.Name)
}

// Validate checks the startup credential invariants: the API token, the
// Telegram token, and the chat id must all be present before the loop
// starts.
func (c *Config) Validate() error {
	if c.Practicum.Token == "" {
		return &MissingCredentialError{Name: EnvPracticumToken}
	}
	if c.Telegram.Token == "" {
		return &MissingCredentialError{Name: EnvTelegramToken}
	}
	if c.Telegram.ChatID == 0 {
		return &MissingCredentialError{Name: EnvTelegramChatID}
	}
	return nil
}
