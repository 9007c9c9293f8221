// Package supervisor keeps the moderation agent alive: it consumes the
// submission stream, feeds the engine, bounds automatic crash recovery,
// and escalates to a human operator when recovery keeps failing. It also
// owns the time-gated daily check (crash counter reset and monthly
// megathread rotation).
package supervisor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amv-mods/mastereditor/automod"
	"github.com/amv-mods/mastereditor/reddit"
)

type State string

const (
	StateRunning   State = "running"
	StateBackoff   State = "backoff"
	StateEscalated State = "escalated"
	StateStopped   State = "stopped"
)

const (
	defaultMaxCrashes    = 2
	defaultBackoff       = 5 * time.Minute
	defaultDailyInterval = 24 * time.Hour
)

type Loop struct {
	Engine  *automod.Engine
	Gateway reddit.Client
	Logger  *slog.Logger

	Subreddit string
	// reddit username to notify when automatic recovery gives up
	Operator string
	// optional secondary escalation channel
	SlackWebhookURL string

	// megathread rotation settings
	MegathreadTemplate string
	FlairTemplateID    string

	// consecutive crashes tolerated before escalating; zero means the default of 2
	MaxCrashes int
	// wait between recovery attempts; zero means the default of 5 minutes
	Backoff time.Duration
	// spacing of daily checks; zero means 24h
	DailyInterval time.Duration
	// run the daily check on the first processed submission regardless of spacing
	ForceDailyCheck bool

	// injectable clock and sleeper, for deterministic transition tests
	Now   func() time.Time
	Sleep func(ctx context.Context, d time.Duration) error

	state     State
	crashes   int
	lastDaily time.Time
}

func (l *Loop) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}

func (l *Loop) sleep(ctx context.Context, d time.Duration) error {
	if l.Sleep != nil {
		return l.Sleep(ctx, d)
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (l *Loop) maxCrashes() int {
	if l.MaxCrashes > 0 {
		return l.MaxCrashes
	}
	return defaultMaxCrashes
}

func (l *Loop) backoff() time.Duration {
	if l.Backoff > 0 {
		return l.Backoff
	}
	return defaultBackoff
}

func (l *Loop) dailyInterval() time.Duration {
	if l.DailyInterval > 0 {
		return l.DailyInterval
	}
	return defaultDailyInterval
}

// State reports the loop's current lifecycle state.
func (l *Loop) State() State {
	return l.state
}

// Crashes reports the consecutive-crash count since the last successful
// daily check.
func (l *Loop) Crashes() int {
	return l.crashes
}

// Run consumes the stream until clean shutdown (context cancellation) or
// escalation. Each unhandled error from stream consumption or pipeline
// execution counts as a crash; after a bounded number of backoff-and-
// reconnect cycles the operator is notified and the loop stops.
func (l *Loop) Run(ctx context.Context) error {
	l.state = StateRunning
	l.lastDaily = l.now()

	for {
		err := l.consume(ctx)
		if err == nil || errors.Is(err, context.Canceled) {
			l.Logger.Info("shutting down")
			l.state = StateStopped
			return nil
		}

		l.crashes++
		crashesTotal.Inc()
		if l.crashes > l.maxCrashes() {
			l.Logger.Error("crashed, automatic restart disabled",
				"err", err, "crashes", l.crashes)
			l.state = StateEscalated
			l.escalate(ctx, err)
			l.state = StateStopped
			return fmt.Errorf("giving up after %d crashes: %w", l.crashes, err)
		}

		l.state = StateBackoff
		l.Logger.Error("crashed, will restart after backoff",
			"err", err, "crashes", l.crashes, "backoff", l.backoff())
		if serr := l.sleep(ctx, l.backoff()); serr != nil {
			l.Logger.Info("shutting down during backoff")
			l.state = StateStopped
			return nil
		}
		l.Logger.Info("restarting")
		l.state = StateRunning
	}
}

// one stream connection's worth of work; the old stream position is not
// preserved across reconnects
func (l *Loop) consume(ctx context.Context) error {
	stream, err := l.Gateway.StreamNewSubmissions(ctx, l.Subreddit)
	if err != nil {
		return fmt.Errorf("establishing submission stream: %w", err)
	}
	for {
		sub, err := stream.Next(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			return fmt.Errorf("reading submission stream: %w", err)
		}
		if err := l.Engine.ProcessSubmission(ctx, sub); err != nil {
			return err
		}
		if err := l.maybeDailyCheck(ctx); err != nil {
			return err
		}
	}
}

func (l *Loop) maybeDailyCheck(ctx context.Context) error {
	now := l.now()
	if !l.ForceDailyCheck && now.Sub(l.lastDaily) < l.dailyInterval() {
		return nil
	}
	l.ForceDailyCheck = false
	l.lastDaily = now
	return l.DailyCheck(ctx)
}
