package automod

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/amv-mods/mastereditor/reddit"
)

// ActionExecutor is the single place where verdicts turn into platform
// side effects, and the single place where dry-run suppression happens.
// Side effects are not retried here; failures propagate to the supervisor.
type ActionExecutor struct {
	Gateway reddit.Client
	Logger  *slog.Logger
	// when set, removals and reports are logged but not performed
	DryRun bool
}

func removalNotice(reason string) string {
	return fmt.Sprintf("Your submission has been removed because of following reason: %s"+
		"\n "+
		"\n Beep Boop, this action was perfomed by a bot. If you believe this was a mistake, "+
		"please message the moderators of this subreddit with a link to this submission.", reason)
}

// Remove posts a distinguished, stickied notice stating the reason, then
// removes the submission.
func (x *ActionExecutor) Remove(ctx context.Context, sub *reddit.Submission, reason string) error {
	if x.DryRun {
		x.Logger.Info("dry-run: would remove submission",
			"submission", sub.Fullname, "title", sub.Title, "reason", reason)
		return nil
	}
	x.Logger.Info("removing submission",
		"submission", sub.Fullname, "title", sub.Title, "reason", reason)
	if _, err := x.Gateway.ReplyAndDistinguish(ctx, sub, removalNotice(reason)); err != nil {
		return fmt.Errorf("posting removal notice: %w", err)
	}
	if err := x.Gateway.Remove(ctx, sub); err != nil {
		return fmt.Errorf("removing submission: %w", err)
	}
	return nil
}

// Report flags the submission for manual review. Never removes.
func (x *ActionExecutor) Report(ctx context.Context, sub *reddit.Submission, reason string) error {
	if x.DryRun {
		x.Logger.Info("dry-run: would report submission",
			"submission", sub.Fullname, "title", sub.Title, "reason", reason)
		return nil
	}
	x.Logger.Info("reporting submission for manual review",
		"submission", sub.Fullname, "title", sub.Title, "reason", reason)
	if err := x.Gateway.Report(ctx, sub, reason); err != nil {
		return fmt.Errorf("reporting submission: %w", err)
	}
	return nil
}

// Allow is a no-op against the platform; the explicit log line keeps the
// decision auditable.
func (x *ActionExecutor) Allow(ctx context.Context, sub *reddit.Submission) {
	x.Logger.Debug("allowing submission", "submission", sub.Fullname, "title", sub.Title)
}
