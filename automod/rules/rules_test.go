package rules

import (
	"testing"
	"time"

	"github.com/amv-mods/mastereditor/automod"
	"github.com/amv-mods/mastereditor/reddit"

	"github.com/stretchr/testify/assert"
)

func TestExemptionDominates(t *testing.T) {
	assert := assert.New(t)

	gateway := reddit.NewMockClient()
	gateway.Accounts["moduser"] = reddit.Account{
		Name: "moduser",
		// young account, which would otherwise trip the age gate
		CreatedAt: time.Now().Add(-time.Hour),
	}
	gateway.Moderators["moduser"] = true
	eng := engineFixture(gateway, nil)

	verdict, err := evaluate(&eng, reddit.Submission{
		Fullname: "t3_abc",
		Author:   "moduser",
		Title:    "AAAAA SHOUTY TITLE ☃",
		IsSelf:   true,
	})
	assert.NoError(err)
	assert.Equal(automod.ActionAllow, verdict.Action)
}

func TestApprovedSubmissionExempt(t *testing.T) {
	assert := assert.New(t)

	gateway := reddit.NewMockClient()
	gateway.Accounts["someone"] = reddit.Account{
		Name:      "someone",
		CreatedAt: time.Now().Add(-time.Hour),
	}
	eng := engineFixture(gateway, nil)

	verdict, err := evaluate(&eng, reddit.Submission{
		Fullname: "t3_abc",
		Author:   "someone",
		Title:    "AAAAA",
		Approved: true,
		IsSelf:   true,
	})
	assert.NoError(err)
	assert.Equal(automod.ActionAllow, verdict.Action)
}

func TestAccountAgePrecedesContentChecks(t *testing.T) {
	assert := assert.New(t)

	gateway := reddit.NewMockClient()
	gateway.Accounts["newbie"] = reddit.Account{
		Name:      "newbie",
		CreatedAt: time.Now().Add(-24 * time.Hour),
	}
	eng := engineFixture(gateway, nil)

	// the title would also trip the caps rule; age wins
	verdict, err := evaluate(&eng, reddit.Submission{
		Fullname: "t3_abc",
		Author:   "newbie",
		Title:    "CHECK THIS OUT NOW",
		IsSelf:   true,
	})
	assert.NoError(err)
	assert.Equal(automod.ActionRemove, verdict.Action)
	assert.Equal(automod.ReasonAccountTooYoung, verdict.Reason)
}

func TestShortLinkVideoRemoved(t *testing.T) {
	assert := assert.New(t)

	gateway := reddit.NewMockClient()
	gateway.Accounts["someone"] = matureAccount("someone")
	resolver := &automod.MockResolver{Durations: map[string]int{"shortvid": 45}}
	eng := engineFixture(gateway, resolver)

	verdict, err := evaluate(&eng, reddit.Submission{
		Fullname: "t3_abc",
		Author:   "someone",
		Title:    "My new edit",
		URL:      "https://youtu.be/shortvid",
	})
	assert.NoError(err)
	assert.Equal(automod.ActionRemove, verdict.Action)
	assert.Equal(automod.ReasonVideoTooShort, verdict.Reason)
}

func TestLongLinkVideoAllowed(t *testing.T) {
	assert := assert.New(t)

	gateway := reddit.NewMockClient()
	gateway.Accounts["someone"] = matureAccount("someone")
	resolver := &automod.MockResolver{Durations: map[string]int{"longvid": 245}}
	eng := engineFixture(gateway, resolver)

	verdict, err := evaluate(&eng, reddit.Submission{
		Fullname: "t3_abc",
		Author:   "someone",
		Title:    "My new edit",
		URL:      "https://www.youtube.com/watch?v=longvid",
	})
	assert.NoError(err)
	assert.Equal(automod.ActionAllow, verdict.Action)
}

func TestNativeVideoDurationGate(t *testing.T) {
	assert := assert.New(t)

	gateway := reddit.NewMockClient()
	gateway.Accounts["someone"] = matureAccount("someone")
	eng := engineFixture(gateway, nil)

	// exactly 60 seconds is still too short for native video
	verdict, err := evaluate(&eng, reddit.Submission{
		Fullname:      "t3_abc",
		Author:        "someone",
		Title:         "My new edit",
		IsVideo:       true,
		VideoDuration: 60,
	})
	assert.NoError(err)
	assert.Equal(automod.ActionRemove, verdict.Action)
	assert.Equal(automod.ReasonVideoTooShort, verdict.Reason)

	verdict, err = evaluate(&eng, reddit.Submission{
		Fullname:      "t3_def",
		Author:        "someone",
		Title:         "My new edit",
		IsVideo:       true,
		VideoDuration: 145,
	})
	assert.NoError(err)
	assert.Equal(automod.ActionAllow, verdict.Action)
}

func TestUnreachableVideoRemoved(t *testing.T) {
	assert := assert.New(t)

	gateway := reddit.NewMockClient()
	gateway.Accounts["someone"] = matureAccount("someone")
	// recognized host, but no metadata available
	resolver := &automod.MockResolver{Durations: map[string]int{}}
	eng := engineFixture(gateway, resolver)

	verdict, err := evaluate(&eng, reddit.Submission{
		Fullname: "t3_abc",
		Author:   "someone",
		Title:    "My new edit",
		URL:      "https://youtu.be/blockedvid",
	})
	assert.NoError(err)
	assert.Equal(automod.ActionRemove, verdict.Action)
	assert.Equal(automod.ReasonVideoInaccessible, verdict.Reason)
}

func TestNonVideoLinkReported(t *testing.T) {
	assert := assert.New(t)

	gateway := reddit.NewMockClient()
	gateway.Accounts["someone"] = matureAccount("someone")
	eng := engineFixture(gateway, nil)

	verdict, err := evaluate(&eng, reddit.Submission{
		Fullname: "t3_abc",
		Author:   "someone",
		Title:    "My new edit",
		URL:      "https://vimeo.com/12345",
	})
	assert.NoError(err)
	assert.Equal(automod.ActionReport, verdict.Action)
	assert.Equal(automod.ReasonNonVideoLink, verdict.Reason)
}

func TestTitleCapsRule(t *testing.T) {
	assert := assert.New(t)

	gateway := reddit.NewMockClient()
	gateway.Accounts["someone"] = matureAccount("someone")
	eng := engineFixture(gateway, nil)

	verdict, err := evaluate(&eng, reddit.Submission{
		Fullname: "t3_abc",
		Author:   "someone",
		Title:    "CHECK THIS OUT NOW",
		IsSelf:   true,
	})
	assert.NoError(err)
	assert.Equal(automod.ActionRemove, verdict.Action)
	assert.Equal(automod.ReasonExcessiveCaps, verdict.Reason)
}

func TestTitleCapsPrecedesCharset(t *testing.T) {
	assert := assert.New(t)

	gateway := reddit.NewMockClient()
	gateway.Accounts["someone"] = matureAccount("someone")
	eng := engineFixture(gateway, nil)

	// title trips both rules; caps wins
	verdict, err := evaluate(&eng, reddit.Submission{
		Fullname: "t3_abc",
		Author:   "someone",
		Title:    "AMAZING edit ☃",
		IsSelf:   true,
	})
	assert.NoError(err)
	assert.Equal(automod.ActionRemove, verdict.Action)
	assert.Equal(automod.ReasonExcessiveCaps, verdict.Reason)
}

func TestTitleCharsetRule(t *testing.T) {
	assert := assert.New(t)

	gateway := reddit.NewMockClient()
	gateway.Accounts["someone"] = matureAccount("someone")
	eng := engineFixture(gateway, nil)

	verdict, err := evaluate(&eng, reddit.Submission{
		Fullname: "t3_abc",
		Author:   "someone",
		Title:    "Лучший клип",
		IsSelf:   true,
	})
	assert.NoError(err)
	assert.Equal(automod.ActionRemove, verdict.Action)
	assert.Equal(automod.ReasonBadTitleChars, verdict.Reason)

	// curly quotes and common punctuation are allowed
	verdict, err = evaluate(&eng, reddit.Submission{
		Fullname: "t3_def",
		Author:   "someone",
		Title:    "My “best” edit yet - part 2 (feat. someone)!",
		IsSelf:   true,
	})
	assert.NoError(err)
	assert.Equal(automod.ActionAllow, verdict.Action)
}

func TestCleanSelfPostAllowed(t *testing.T) {
	assert := assert.New(t)

	gateway := reddit.NewMockClient()
	gateway.Accounts["someone"] = reddit.Account{
		Name:      "someone",
		CreatedAt: time.Now().Add(-10 * 24 * time.Hour),
	}
	eng := engineFixture(gateway, nil)

	verdict, err := evaluate(&eng, reddit.Submission{
		Fullname: "t3_abc",
		Author:   "someone",
		Title:    "Suggestions for my next edit?",
		IsSelf:   true,
	})
	assert.NoError(err)
	assert.Equal(automod.ActionAllow, verdict.Action)
}

func TestActivityGateDisabledByDefault(t *testing.T) {
	assert := assert.New(t)

	gateway := reddit.NewMockClient()
	gateway.Accounts["lurker"] = matureAccount("lurker")
	// no comment history at all
	eng := engineFixture(gateway, nil)

	verdict, err := evaluate(&eng, reddit.Submission{
		Fullname: "t3_abc",
		Author:   "lurker",
		Title:    "My new edit",
		IsSelf:   true,
	})
	assert.NoError(err)
	assert.Equal(automod.ActionAllow, verdict.Action)
}

func TestActivityGateEnforcedWhenEnabled(t *testing.T) {
	assert := assert.New(t)

	gateway := reddit.NewMockClient()
	gateway.Accounts["lurker"] = matureAccount("lurker")
	eng := engineFixture(gateway, nil)
	eng.ActivityCheckEnabled = true

	verdict, err := evaluate(&eng, reddit.Submission{
		Fullname: "t3_abc",
		Author:   "lurker",
		Title:    "My new edit",
		IsSelf:   true,
	})
	assert.NoError(err)
	assert.Equal(automod.ActionRemove, verdict.Action)
	assert.Equal(automod.ReasonInsufficientActivity, verdict.Reason)

	// an author with enough recent subreddit comments passes
	var comments []reddit.Comment
	for i := 0; i < 6; i++ {
		comments = append(comments, reddit.Comment{
			SubredditID: "t5_2qpg3",
			CreatedAt:   time.Now().Add(-time.Duration(i) * 24 * time.Hour),
		})
	}
	gateway.Accounts["regular"] = matureAccount("regular")
	gateway.Comments["regular"] = comments

	verdict, err = evaluate(&eng, reddit.Submission{
		Fullname: "t3_def",
		Author:   "regular",
		Title:    "My new edit",
		IsSelf:   true,
	})
	assert.NoError(err)
	assert.Equal(automod.ActionAllow, verdict.Action)
}
