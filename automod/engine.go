// Package automod is the moderation decision engine: one ordered rule
// pipeline evaluated per submission, producing a single verdict which the
// action executor turns into platform side effects.
package automod

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/amv-mods/mastereditor/automod/countstore"
	"github.com/amv-mods/mastereditor/reddit"
	"github.com/amv-mods/mastereditor/youtube"
)

// runtime for executing rules and recording moderation decisions.
type Engine struct {
	Logger   *slog.Logger
	Gateway  reddit.Client
	Resolver youtube.Resolver
	Rules    RuleSet
	Counters countstore.CountStore
	Actor    *ActionExecutor

	// display name of the monitored subreddit (eg "amv")
	Subreddit string
	// thing ID of the monitored subreddit (eg "t5_2qpg3"), matched
	// against comment metadata by the activity classifier
	SubredditID string
	// staged-rollout flag for the author-activity gate; when false the
	// gate logs its finding but does not enforce
	ActivityCheckEnabled bool
}

// ProcessSubmission runs the full pipeline for one submission: hydrate
// account metadata, evaluate rules, execute the verdict, persist decision
// counters.
func (eng *Engine) ProcessSubmission(ctx context.Context, sub *reddit.Submission) (err error) {
	// recover any panics from rule execution, and surface them as a
	// regular processing error so the caller's crash handling sees them
	defer func() {
		if r := recover(); r != nil {
			eng.Logger.Error("automod event execution exception", "err", r, "submission", sub.Fullname)
			err = fmt.Errorf("rule execution panic: %v", r)
		}
	}()

	am, err := eng.GetAccountMeta(ctx, sub)
	if err != nil {
		return fmt.Errorf("hydrating account meta: %w", err)
	}

	c := NewSubmissionContext(ctx, eng, *am, *sub)
	c.Logger.Debug("processing submission")
	verdict, err := eng.Rules.EvaluateSubmission(&c)
	if err != nil {
		return fmt.Errorf("evaluating rules: %w", err)
	}

	switch verdict.Action {
	case ActionRemove:
		if err := eng.Actor.Remove(ctx, sub, verdict.Reason); err != nil {
			return err
		}
		submissionsRemoved.Inc()
	case ActionReport:
		if err := eng.Actor.Report(ctx, sub, verdict.Reason); err != nil {
			return err
		}
		submissionsReported.Inc()
	default:
		eng.Actor.Allow(ctx, sub)
		submissionsAllowed.Inc()
	}
	submissionsProcessed.Inc()

	eng.canonicalLogLine(&c, verdict)
	if err := eng.persistCounters(ctx, verdict); err != nil {
		return err
	}
	return nil
}

func (eng *Engine) GetAccountMeta(ctx context.Context, sub *reddit.Submission) (*AccountMeta, error) {
	acct, err := eng.Gateway.AboutUser(ctx, sub.Author)
	if err != nil {
		return nil, fmt.Errorf("fetching author: %w", err)
	}
	isMod, err := eng.Gateway.IsModerator(ctx, eng.Subreddit, sub.Author)
	if err != nil {
		return nil, fmt.Errorf("checking moderator status: %w", err)
	}
	isContributor, err := eng.Gateway.IsApprovedContributor(ctx, eng.Subreddit, sub.Author)
	if err != nil {
		return nil, fmt.Errorf("checking contributor status: %w", err)
	}
	return &AccountMeta{
		Name:                acct.Name,
		CreatedAt:           acct.CreatedAt,
		Moderator:           isMod,
		ApprovedContributor: isContributor,
	}, nil
}

// one log line per decision, with the full outcome
func (eng *Engine) canonicalLogLine(c *SubmissionContext, verdict Verdict) {
	c.Logger.Info("decision",
		"action", verdict.Action,
		"reason", verdict.Reason,
	)
}

func (eng *Engine) persistCounters(ctx context.Context, verdict Verdict) error {
	if err := eng.Counters.Increment(ctx, "decision", string(verdict.Action)); err != nil {
		return fmt.Errorf("persisting decision counter: %w", err)
	}
	if verdict.Action == ActionRemove {
		if err := eng.Counters.Increment(ctx, "removal", verdict.Reason); err != nil {
			return fmt.Errorf("persisting removal counter: %w", err)
		}
	}
	return nil
}
