package rules

import (
	"time"

	"github.com/amv-mods/mastereditor/automod"
)

// minimum account age for main-page posts
const minAccountAge = 3 * 24 * time.Hour

var _ automod.SubmissionRuleFunc = AccountAgeRule

func AccountAgeRule(c *automod.SubmissionContext) (*automod.Verdict, error) {
	if accountIsYoungerThan(c, minAccountAge) {
		return automod.Remove(automod.ReasonAccountTooYoung), nil
	}
	return nil, nil
}
