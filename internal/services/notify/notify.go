package notify

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	kit "github.com/Mikhail-Kushnerev/homework-bot/internal/transport"
	logx "github.com/Mikhail-Kushnerev/homework-bot/pkg/logx"
)

type Config struct {
	// RatePerSec caps outbound sends (token bucket, burst = rate).
	RatePerSec int
	// HistorySize bounds the in-memory history ring.
	HistorySize int
}

// Service delivers notifications through the messaging adapter with a
// send rate cap and a small in-memory history for debugging.
type Service struct {
	sender kit.Sender
	log    logx.Logger

	limiter *rate.Limiter
	histCap int

	mu      sync.Mutex
	history []kit.Notification
}

func New(cfg Config, sender kit.Sender, log logx.Logger) *Service {
	if cfg.RatePerSec <= 0 {
		cfg.RatePerSec = 1
	}
	if cfg.HistorySize <= 0 {
		cfg.HistorySize = 100
	}
	if log.IsZero() {
		log = logx.Nop()
	}
	return &Service{
		sender:  sender,
		log:     log,
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSec), cfg.RatePerSec),
		histCap: cfg.HistorySize,
	}
}

func (n *Service) Notify(ctx context.Context, noti kit.Notification) error {
	if noti.Channel == "" {
		noti.Channel = "telegram"
	}
	if noti.Options == nil {
		noti.Options = &kit.SendOptions{DisablePreview: true}
	}

	prefix := ""
	switch {
	case noti.Priority >= 8:
		prefix = "🚨 "
	case noti.Priority >= 5:
		prefix = "⚠️ "
	default:
		prefix = "ℹ️ "
	}

	if err := n.limiter.Wait(ctx); err != nil {
		return err
	}

	start := time.Now()
	_, err := n.sender.SendText(ctx, noti.Target, prefix+noti.Text, noti.Options)
	if err != nil {
		n.log.Warn("notification send failed",
			logx.String("channel", noti.Channel),
			logx.Int64("chat_id", noti.Target.ChatID),
			logx.Err(err),
		)
	} else {
		n.log.Debug("notification sent",
			logx.String("channel", noti.Channel),
			logx.Int64("chat_id", noti.Target.ChatID),
			logx.Int("priority", noti.Priority),
			logx.Duration("took", time.Since(start)),
		)
	}
	n.appendHistory(noti)
	return err
}

// History returns a copy of the recent notifications, oldest first.
func (n *Service) History() []kit.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]kit.Notification, len(n.history))
	copy(out, n.history)
	return out
}

func (n *Service) appendHistory(x kit.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.history = append(n.history, x)
	if len(n.history) > n.histCap {
		n.history = n.history[len(n.history)-n.histCap:]
	}
}
