package poller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Mikhail-Kushnerev/homework-bot/internal/review"
	"github.com/Mikhail-Kushnerev/homework-bot/internal/schedule"
	"github.com/Mikhail-Kushnerev/homework-bot/internal/statusapi"
	"github.com/Mikhail-Kushnerev/homework-bot/internal/transport"
	logx "github.com/Mikhail-Kushnerev/homework-bot/pkg/logx"
)

// Fetcher is the remote status API port.
type Fetcher interface {
	Fetch(ctx context.Context, from int64) ([]byte, error)
}

// Notifier is the downstream messaging port. Delivery is best-effort:
// the loop logs a send failure and moves on.
type Notifier interface {
	Notify(ctx context.Context, n transport.Notification) error
}

// Config is the runtime config the loop needs.
type Config struct {
	Target   transport.ChatTarget
	Schedule schedule.Spec
}

const alertPrefix = "Сбой в работе программы: "

// Loop drives the poll cycle: fetch, classify, notify, sleep. One cycle
// runs to completion before the next begins; the inter-cycle sleep is
// the only suspension point and is interruptible solely by ctx.
type Loop struct {
	fetcher  Fetcher
	notifier Notifier
	target   transport.ChatTarget
	log      logx.Logger

	// specMu guards spec only for hot reload; all other state is owned
	// by the loop goroutine and mutated between cycles.
	specMu sync.Mutex
	spec   schedule.Spec

	dedup  Dedup
	cursor int64

	now func() time.Time
}

func New(cfg Config, fetcher Fetcher, notifier Notifier, log logx.Logger) (*Loop, error) {
	if fetcher == nil {
		return nil, errors.New("poller: fetcher required")
	}
	if notifier == nil {
		return nil, errors.New("poller: notifier required")
	}
	if cfg.Target.ChatID == 0 {
		return nil, errors.New("poller: target chat required")
	}
	if log.IsZero() {
		log = logx.Nop()
	}
	l := &Loop{
		fetcher:  fetcher,
		notifier: notifier,
		target:   cfg.Target,
		log:      log,
		spec:     cfg.Schedule,
		now:      time.Now,
	}
	// Initial cursor: one look-back window behind "now", so a restart
	// re-asks about the window the previous process may have missed.
	now := l.now()
	l.cursor = now.Add(-cfg.Schedule.Lookback(now)).Unix()
	return l, nil
}

// ApplySchedule swaps the poll schedule. The change takes effect at the
// next cycle boundary.
func (l *Loop) ApplySchedule(spec schedule.Spec) {
	l.specMu.Lock()
	l.spec = spec
	l.specMu.Unlock()
}

func (l *Loop) schedule() schedule.Spec {
	l.specMu.Lock()
	defer l.specMu.Unlock()
	return l.spec
}

// Cursor returns the current poll cursor (unix seconds).
func (l *Loop) Cursor() int64 { return l.cursor }

// RunOnce performs exactly one poll cycle and returns its classified
// outcome. A non-nil error means an unrecoverable internal invariant
// violation; every runtime anomaly is downgraded to a Result instead.
func (l *Loop) RunOnce(ctx context.Context) (review.Result, error) {
	res, serverCursor := l.fetchAndClassify(ctx)

	switch res.Kind {
	case review.KindFresh:
		l.dedup.Reset()
		msg, err := review.Format(res.Record)
		if err != nil {
			// Unknown status past the validator: programming error.
			return res, err
		}
		l.notify(ctx, msg, 5)
		l.advanceCursor(serverCursor)
		l.log.Info("status change",
			logx.String("work", res.Record.ID),
			logx.String("status", string(res.Record.Status)),
		)

	case review.KindNoUpdate:
		l.advanceCursor(serverCursor)
		l.log.Debug("no updates", logx.Int64("cursor", l.cursor))

	case review.KindMalformed:
		// Not actionable by the recipient; log only. Cursor stays so a
		// recovering service is asked about the same window again.
		l.log.Warn("malformed response", logx.String("reason", res.Reason))

	case review.KindTransient:
		sig := failureSignature(res.Cause)
		if l.dedup.ShouldNotify(sig) {
			l.notify(ctx, alertPrefix+res.Cause.Error(), 8)
		} else {
			l.log.Debug("transient failure repeated; alert suppressed", logx.String("signature", sig))
		}
		l.log.Warn("fetch failed", logx.Err(res.Cause))
	}

	return res, nil
}

func (l *Loop) fetchAndClassify(ctx context.Context) (review.Result, int64) {
	body, err := l.fetcher.Fetch(ctx, l.cursor)
	if err != nil {
		return review.Transient(err), 0
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return review.Malformed("undecodable body"), 0
	}

	return review.Validate(payload), serverCursorOf(payload)
}

// serverCursorOf extracts the server-side cursor, if the API sent one.
func serverCursorOf(payload any) int64 {
	obj, ok := payload.(map[string]any)
	if !ok {
		return 0
	}
	v, ok := obj["current_date"]
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return int64(n)
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0
		}
		return i
	}
	return 0
}

// advanceCursor moves the cursor forward to the server cursor when the
// API sent one, otherwise to local "now". Never rolled back.
func (l *Loop) advanceCursor(server int64) {
	next := server
	if next == 0 {
		next = l.now().Unix()
	}
	if next > l.cursor {
		l.cursor = next
	}
}

func (l *Loop) notify(ctx context.Context, text string, priority int) {
	// Best-effort delivery: the notify service logs failures, the loop
	// neither escalates nor retries within the same cycle.
	_ = l.notifier.Notify(ctx, transport.Notification{
		Channel:  "telegram",
		Priority: priority,
		Target:   l.target,
		Text:     text,
	})
}

// failureSignature builds the dedup key: error kind plus message, so "the
// same ongoing problem" repeats silently while a new kind of failure
// (or the same kind with a new message) alerts again.
func failureSignature(err error) string {
	kind := "network"
	var se *statusapi.StatusError
	if errors.As(err, &se) {
		kind = "http"
	}
	return fmt.Sprintf("%s: %v", kind, err)
}
