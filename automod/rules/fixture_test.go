package rules

import (
	"context"
	"time"

	"github.com/amv-mods/mastereditor/automod"
	"github.com/amv-mods/mastereditor/reddit"
	"github.com/amv-mods/mastereditor/youtube"
)

// engine with the full default pipeline wired against mocks
func engineFixture(gateway *reddit.MockClient, resolver youtube.Resolver) automod.Engine {
	eng := automod.EngineTestFixture(gateway, resolver)
	eng.Rules = DefaultRules()
	return eng
}

func matureAccount(name string) reddit.Account {
	return reddit.Account{
		Name:      name,
		CreatedAt: time.Now().Add(-365 * 24 * time.Hour),
	}
}

func evaluate(eng *automod.Engine, sub reddit.Submission) (automod.Verdict, error) {
	ctx := context.Background()
	am, err := eng.GetAccountMeta(ctx, &sub)
	if err != nil {
		return automod.Verdict{}, err
	}
	c := automod.NewSubmissionContext(ctx, eng, *am, sub)
	return eng.Rules.EvaluateSubmission(&c)
}
