package automod

type SubmissionRuleFunc = func(c *SubmissionContext) (*Verdict, error)

// Ordered list of rules to run against each submission. Rules run in
// order and the first non-nil verdict wins; later rules are not
// evaluated. A run with no matching rule yields an allow verdict.
type RuleSet struct {
	SubmissionRules []SubmissionRuleFunc
}

func (r *RuleSet) EvaluateSubmission(c *SubmissionContext) (Verdict, error) {
	for _, f := range r.SubmissionRules {
		verdict, err := f(c)
		if err != nil {
			return Verdict{}, err
		}
		if c.Err != nil {
			return Verdict{}, c.Err
		}
		if verdict != nil {
			return *verdict, nil
		}
	}
	return Verdict{Action: ActionAllow}, nil
}
