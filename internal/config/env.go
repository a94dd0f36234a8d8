package config

import (
	"fmt"
	"os"
	"strconv"
)

// applyEnv overlays credentials from the process environment onto cfg.
// Environment wins over file values.
func applyEnv(cfg *Config) error {
	if v := os.Getenv(EnvPracticumToken); v != "" {
		cfg.Practicum.Token = v
	}
	if v := os.Getenv(EnvTelegramToken); v != "" {
		cfg.Telegram.Token = v
	}
	if v := os.Getenv(EnvTelegramChatID); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: invalid chat id %q: %w", EnvTelegramChatID, v, err)
		}
		cfg.Telegram.ChatID = id
	}
	return nil
}
