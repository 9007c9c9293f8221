package supervisor

import (
	"context"
	"testing"
	"time"

	"github.com/amv-mods/mastereditor/reddit"

	"github.com/stretchr/testify/assert"
)

func TestRotateMegathread(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	oldURL := "https://reddit.example/r/amv/comments/old123/feedback_megathread_may_2024/"
	gateway := reddit.NewMockClient()
	gateway.Submissions["old123"] = &reddit.Submission{
		ID:       "old123",
		Fullname: "t3_old123",
		URL:      oldURL,
		Stickied: true,
	}
	gateway.Description = "Rules ... [Feedback](" + oldURL + ") ... more"
	gateway.Widgets = []reddit.Widget{
		{
			ID:        "widget_1",
			ShortName: "Megathreads",
			Buttons: []reddit.WidgetButton{
				{Text: "Contest thread", URL: "https://reddit.example/contest"},
				{Text: "Feedback thread", URL: oldURL},
			},
		},
	}

	l, _ := loopFixture(gateway)
	l.MegathreadTemplate = "Post your edits below for feedback."
	l.FlairTemplateID = "flair-megathread"
	l.Now = func() time.Time { return time.Date(2024, 6, 1, 0, 10, 0, 0, time.UTC) }

	megathread, err := l.RotateMegathread(ctx)
	assert.NoError(err)
	assert.Equal("Feedback MEGAthread - June 2024", megathread.Title)

	// new thread posted with the month header and template body
	assert.Len(gateway.Posted, 1)

	// old unstickied, new stickied
	assert.False(gateway.Stickied["t3_old123"])
	assert.True(gateway.Stickied[megathread.Fullname])

	assert.Equal("flair-megathread", gateway.Flaired[megathread.Fullname])
	assert.Equal("new", gateway.SuggestedSorts[megathread.Fullname])

	// sidebar URL swapped
	assert.Contains(gateway.Description, megathread.URL)
	assert.NotContains(gateway.Description, oldURL)

	// widget button repointed, other buttons untouched
	buttons := gateway.WidgetUpdates["widget_1"]
	assert.Len(buttons, 2)
	assert.Equal("https://reddit.example/contest", buttons[0].URL)
	assert.Equal(megathread.URL, buttons[1].URL)
}

func TestRotateMegathreadFiresOnFirstOfMonth(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	oldURL := "https://reddit.example/r/amv/comments/old123/feedback/"
	gateway := reddit.NewMockClient()
	gateway.Submissions["old123"] = &reddit.Submission{ID: "old123", Fullname: "t3_old123", URL: oldURL}
	gateway.Widgets = []reddit.Widget{
		{ID: "w1", ShortName: "Megathreads", Buttons: []reddit.WidgetButton{{Text: "Feedback", URL: oldURL}}},
	}

	l, _ := loopFixture(gateway)
	l.Now = func() time.Time { return time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC) }

	assert.NoError(l.DailyCheck(ctx))
	assert.Len(gateway.Posted, 1)
}

func TestSubmissionIDFromURL(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("abc123", submissionIDFromURL("https://reddit.example/r/amv/comments/abc123/some_title/"))
	assert.Equal("abc123", submissionIDFromURL("https://reddit.example/r/amv/comments/abc123"))
	assert.Equal("abc123", submissionIDFromURL("abc123"))
}
