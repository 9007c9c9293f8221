package rules

import (
	"github.com/amv-mods/mastereditor/automod"
)

var _ automod.SubmissionRuleFunc = ExemptAuthorRule

// Moderators, approved contributors, and submissions a human already
// approved are never auto-moderated.
func ExemptAuthorRule(c *automod.SubmissionContext) (*automod.Verdict, error) {
	if c.Submission.Approved || c.Account.Moderator || c.Account.ApprovedContributor {
		c.Logger.Debug("author or submission exempt, not moderating")
		return automod.Allow(), nil
	}
	return nil, nil
}
