package supervisor

import (
	"context"
	"fmt"
)

// DailyCheck runs the once-per-rolling-window housekeeping: the crash
// counter resets, and on the first day of the month the feedback
// megathread rotates.
func (l *Loop) DailyCheck(ctx context.Context) error {
	l.Logger.Debug("performing daily checks")
	l.crashes = 0

	if l.now().Day() != 1 {
		return nil
	}
	megathread, err := l.RotateMegathread(ctx)
	if err != nil {
		return fmt.Errorf("rotating feedback megathread: %w", err)
	}
	l.Logger.Info("feedback megathread posted", "submission", megathread.Fullname, "url", megathread.URL)
	megathreadsPosted.Inc()
	return nil
}
