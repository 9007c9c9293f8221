package automod

import (
	"context"
	"log/slog"
	"time"

	"github.com/amv-mods/mastereditor/reddit"
	"github.com/amv-mods/mastereditor/youtube"
)

// The interface exposed to rules. Rules read submission and account
// metadata directly, and reach external state (comment history, video
// metadata) through methods which roll failures up into the Err field.
type SubmissionContext struct {
	// Actual golang "context.Context", if needed for timeouts etc
	Ctx context.Context
	// Any errors encountered while processing methods on this struct get rolled up in this nullable field
	Err error
	// slog logger handle, with submission-specific fields pre-populated
	Logger *slog.Logger

	Account    AccountMeta
	Submission reddit.Submission

	engine *Engine // NOTE: pointer, but expected never to be nil
}

// Account metadata relevant to moderation decisions, hydrated once per
// submission before rule execution.
type AccountMeta struct {
	Name                string
	CreatedAt           time.Time
	Moderator           bool
	ApprovedContributor bool
}

func NewSubmissionContext(ctx context.Context, eng *Engine, am AccountMeta, sub reddit.Submission) SubmissionContext {
	return SubmissionContext{
		Ctx:        ctx,
		Logger:     eng.Logger.With("submission", sub.Fullname, "author", am.Name, "title", sub.Title),
		Account:    am,
		Submission: sub,
		engine:     eng,
	}
}

// Whether the optional author-activity gate is enforced.
func (c *SubmissionContext) ActivityCheckEnabled() bool {
	return c.engine.ActivityCheckEnabled
}

// Scans the author's comment history for recent activity in the monitored
// subreddit. External failures roll up into c.Err.
func (c *SubmissionContext) HasRecentActivity() bool {
	it := c.engine.Gateway.AuthorComments(c.Ctx, c.Account.Name)
	ok, err := HasSufficientActivity(c.Ctx, it, c.engine.SubredditID, time.Now())
	if err != nil {
		if nil == c.Err {
			c.Err = err
		}
		return false
	}
	return ok
}

// Resolves an external link through the video metadata resolver. All
// errors, including the sentinels youtube.ErrNotVideo and
// youtube.ErrUnreachable, are returned to the rule for branching.
func (c *SubmissionContext) ResolveVideo(rawURL string) (*youtube.VideoInfo, error) {
	return c.engine.Resolver.Resolve(c.Ctx, rawURL)
}
