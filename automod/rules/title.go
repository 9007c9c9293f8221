package rules

import (
	"regexp"

	"github.com/amv-mods/mastereditor/automod"
)

// a run of 5+ consecutive uppercase letters reads as shouting
var capsRunRegex = regexp.MustCompile(`[A-Z]{5}`)

// anything outside Latin letters, digits, common punctuation, the two
// curly quote marks, and whitespace
var badTitleCharRegex = regexp.MustCompile(`[^\sa-zA-Z0-9,.“”:;\-'!?|"&*+/=^_\[\]()]`)

var _ automod.SubmissionRuleFunc = TitleCapsRule
var _ automod.SubmissionRuleFunc = TitleCharsetRule

func TitleCapsRule(c *automod.SubmissionContext) (*automod.Verdict, error) {
	if capsRunRegex.MatchString(c.Submission.Title) {
		return automod.Remove(automod.ReasonExcessiveCaps), nil
	}
	return nil, nil
}

func TitleCharsetRule(c *automod.SubmissionContext) (*automod.Verdict, error) {
	if badTitleCharRegex.MatchString(c.Submission.Title) {
		return automod.Remove(automod.ReasonBadTitleChars), nil
	}
	return nil, nil
}
