package config

import (
	"fmt"
	"strings"
	"time"
)

// RequestTimeout parses practicum.request_timeout as a Go duration.
// An absent or empty field, or an explicit "0s", falls back to def.
func (c Config) RequestTimeout(def time.Duration) (time.Duration, error) {
	s := strings.TrimSpace(c.Practicum.RequestTimeout)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("practicum.request_timeout: invalid duration %q: %w", c.Practicum.RequestTimeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("practicum.request_timeout: duration must be >= 0")
	}
	if d == 0 {
		return def, nil
	}
	return d, nil
}
