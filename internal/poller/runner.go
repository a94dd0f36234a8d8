package poller

import (
	"context"
	"time"

	logx "github.com/Mikhail-Kushnerev/homework-bot/pkg/logx"
)

// Run executes cycles until ctx is cancelled. The first cycle starts
// immediately; each following cycle waits for the next schedule
// activation. Returns nil on cancellation and an error only on an
// unrecoverable internal invariant violation.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		if _, err := l.RunOnce(ctx); err != nil {
			return err
		}

		next := l.schedule().Next(l.now())
		if err := sleepUntil(ctx, next); err != nil {
			return nil
		}
		l.log.Trace("cycle wakeup", logx.Time("scheduled", next))
	}
}

func sleepUntil(ctx context.Context, t time.Time) error {
	d := time.Until(t)
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
