package rules

import (
	"github.com/amv-mods/mastereditor/automod"
)

var _ automod.SubmissionRuleFunc = AuthorActivityRule

// Requires a minimum of recent comment activity in the subreddit. The
// gate is behind a staged-rollout flag: when disabled, a failing check is
// logged but not enforced.
func AuthorActivityRule(c *automod.SubmissionContext) (*automod.Verdict, error) {
	if c.HasRecentActivity() {
		return nil, nil
	}
	if c.Err != nil {
		return nil, c.Err
	}
	if !c.ActivityCheckEnabled() {
		c.Logger.Info("author activity check failed, but the feature is not yet active so moving on")
		return nil, nil
	}
	return automod.Remove(automod.ReasonInsufficientActivity), nil
}
