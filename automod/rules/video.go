package rules

import (
	"errors"

	"github.com/amv-mods/mastereditor/automod"
	"github.com/amv-mods/mastereditor/youtube"
)

// main-page videos must be longer than one minute
const minVideoSeconds = 60

var _ automod.SubmissionRuleFunc = VideoLengthRule

// Enforces the minimum video length. Link posts go through the metadata
// resolver: an unrecognized host is ambiguous and gets flagged for human
// review rather than removed; an unreadable video is removed. Native
// videos carry their duration in the submission itself. Text posts are
// not videos and pass through.
func VideoLengthRule(c *automod.SubmissionContext) (*automod.Verdict, error) {
	sub := &c.Submission

	if sub.IsSelf {
		return nil, nil
	}

	if sub.IsVideo {
		if sub.VideoDuration <= minVideoSeconds {
			return automod.Remove(automod.ReasonVideoTooShort), nil
		}
		return nil, nil
	}

	c.Logger.Debug("resolving link submission", "url", sub.URL)
	info, err := c.ResolveVideo(sub.URL)
	if errors.Is(err, youtube.ErrNotVideo) {
		return automod.Report(automod.ReasonNonVideoLink), nil
	}
	if errors.Is(err, youtube.ErrUnreachable) {
		return automod.Remove(automod.ReasonVideoInaccessible), nil
	}
	if err != nil {
		return nil, err
	}
	if info.Duration < minVideoSeconds {
		return automod.Remove(automod.ReasonVideoTooShort), nil
	}
	return nil, nil
}
