package automod

// What the pipeline decided to do with a submission.
type Action string

const (
	// approve by inaction: the submission is left alone
	ActionAllow Action = "allow"
	// remove the submission and post a notice explaining why
	ActionRemove Action = "remove"
	// flag the submission for human review, without removing it
	ActionReport Action = "report"
)

// Outcome of one pipeline run over one submission. Exactly one verdict is
// produced per run; Reason is set for remove and report actions.
type Verdict struct {
	Action Action
	Reason string
}

// Removal and report reasons, worded for the notice posted back to the
// submission.
const (
	ReasonInsufficientActivity = "You have less than 6 comments in last 6 months on this subreddit."
	ReasonAccountTooYoung      = "Your account needs to be at least 3 days old to be able to post on the main page. \n" +
		"If you are not posting an AMV and need an exception (e.g. contest announcement), please message the mods."
	ReasonVideoTooShort     = "Video is too short. We only allow videos longer than 1 minute on the main page."
	ReasonVideoInaccessible = "Youtube video is being blocked or unaccessible."
	ReasonExcessiveCaps     = "Title contains excessive Caps Lock."
	ReasonBadTitleChars     = "Non-standard and\\or non-english characters used in the title."
	ReasonNonVideoLink      = "Check manually, link being shared is NOT youtube."
)

func Allow() *Verdict {
	return &Verdict{Action: ActionAllow}
}

func Remove(reason string) *Verdict {
	return &Verdict{Action: ActionRemove, Reason: reason}
}

func Report(reason string) *Verdict {
	return &Verdict{Action: ActionReport, Reason: reason}
}
