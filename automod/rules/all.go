// Package rules holds the individual moderation rules and the default
// ordered pipeline. Ordering matters: the first matching rule wins, so
// account-level checks run before content checks and title checks run
// last.
package rules

import (
	"github.com/amv-mods/mastereditor/automod"
)

func DefaultRules() automod.RuleSet {
	return automod.RuleSet{
		SubmissionRules: []automod.SubmissionRuleFunc{
			ExemptAuthorRule,
			AuthorActivityRule,
			AccountAgeRule,
			VideoLengthRule,
			TitleCapsRule,
			TitleCharsetRule,
		},
	}
}
