package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"

	"github.com/Mikhail-Kushnerev/homework-bot/internal/config"
	"github.com/Mikhail-Kushnerev/homework-bot/internal/poller"
	"github.com/Mikhail-Kushnerev/homework-bot/internal/review"
	"github.com/Mikhail-Kushnerev/homework-bot/internal/schedule"
	"github.com/Mikhail-Kushnerev/homework-bot/internal/services/notify"
	"github.com/Mikhail-Kushnerev/homework-bot/internal/statusapi"
	"github.com/Mikhail-Kushnerev/homework-bot/internal/transport"
	"github.com/Mikhail-Kushnerev/homework-bot/internal/transport/telegram"
	logx "github.com/Mikhail-Kushnerev/homework-bot/pkg/logx"
)

// DefaultSchedule matches the original 600-second retry interval.
const DefaultSchedule = "600s"

// App wires config, logging, transport and the poll loop together.
type App struct {
	cfgMgr *config.Manager
	logSvc *logx.Service
	log    logx.Logger
	loop   *poller.Loop
}

// New builds the application. All fatal configuration failures surface
// here, before the first fetch: missing credentials, a bad schedule, or
// a rejected Telegram token.
func New(cfgPath string) (*App, error) {
	mgr := config.NewManager(cfgPath)
	cfg, err := mgr.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logCfg := loggingConfig(cfg)
	logSvc, log := logx.New(logCfg)
	mgr.SetLogger(log.With(logx.String("comp", "config")))
	mgr.SetValidator(func(_ context.Context, c *config.Config) error {
		if err := c.Validate(); err != nil {
			return err
		}
		_, err := schedule.Parse(scheduleOf(c))
		return err
	})

	spec, err := schedule.Parse(scheduleOf(cfg))
	if err != nil {
		logSvc.Close()
		return nil, err
	}

	timeout, err := cfg.RequestTimeout(15 * time.Second)
	if err != nil {
		logSvc.Close()
		return nil, err
	}
	client := statusapi.New(statusapi.Config{
		Endpoint: cfg.Practicum.Endpoint,
		Token:    cfg.Practicum.Token,
		Timeout:  timeout,
	})

	sender, err := telegram.New(telegram.Config{Token: cfg.Telegram.Token}, log.With(logx.String("comp", "telegram")))
	if err != nil {
		logSvc.Close()
		return nil, fmt.Errorf("telegram: %w", err)
	}

	var ncfg notify.Config
	if cfg.Notifier != nil {
		ncfg = notify.Config{RatePerSec: cfg.Notifier.RatePerSec, HistorySize: cfg.Notifier.HistorySize}
	}
	notifier := notify.New(ncfg, sender, log.With(logx.String("comp", "notify")))

	loop, err := poller.New(poller.Config{
		Target:   transport.ChatTarget{ChatID: cfg.Telegram.ChatID, ThreadID: cfg.Telegram.ThreadID},
		Schedule: spec,
	}, client, notifier, log.With(logx.String("comp", "poller")))
	if err != nil {
		logSvc.Close()
		return nil, err
	}

	return &App{cfgMgr: mgr, logSvc: logSvc, log: log, loop: loop}, nil
}

// Run blocks until ctx is cancelled or the loop hits an unrecoverable
// invariant violation.
func (a *App) Run(ctx context.Context) error {
	_, _ = daemon.SdNotify(false, daemon.SdNotifyReady)
	defer func() { _, _ = daemon.SdNotify(false, daemon.SdNotifyStopping) }()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := a.cfgMgr.Watch(ctx); err != nil {
			a.log.Warn("config watcher stopped", logx.Err(err))
		}
	}()

	sub := a.cfgMgr.Subscribe(1)
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer a.cfgMgr.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case cfg := <-sub:
				if cfg == nil {
					continue
				}
				a.applyReload(cfg)
			}
		}
	}()

	a.log.Info("poller started")
	err := a.loop.Run(ctx)
	if err != nil {
		a.log.Error("poller terminated", logx.Err(err))
	}

	cancel()
	wg.Wait()
	a.logSvc.Close()
	return err
}

// applyReload adopts the hot-swappable parts of a reloaded config:
// logging and the poll schedule. Credentials deliberately stay fixed
// for the process lifetime.
func (a *App) applyReload(cfg *config.Config) {
	a.logSvc.Apply(loggingConfig(cfg))

	spec, err := schedule.Parse(scheduleOf(cfg))
	if err != nil {
		a.log.Warn("reload kept previous schedule", logx.Err(err))
		return
	}
	a.loop.ApplySchedule(spec)
	a.log.Info("schedule applied", logx.String("schedule", scheduleOf(cfg)))
}

func scheduleOf(cfg *config.Config) string {
	if cfg.Poll.Schedule == "" {
		return DefaultSchedule
	}
	return cfg.Poll.Schedule
}

func loggingConfig(cfg *config.Config) logx.Config {
	lc := logx.Config{
		Level:   cfg.Logging.Level,
		Console: cfg.Logging.Console,
		File: logx.FileConfig{
			Enabled: cfg.Logging.File.Enabled,
			Path:    cfg.Logging.File.Path,
		},
	}
	// Nothing configured: default to console so startup failures are visible.
	if !lc.Console && !lc.File.Enabled {
		lc.Console = true
	}
	return lc
}

// Probe runs a single poll cycle outside the schedule. Used by the
// -once flag for smoke-testing a deployment.
func (a *App) Probe(ctx context.Context) (review.Result, error) {
	return a.loop.RunOnce(ctx)
}
