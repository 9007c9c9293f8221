// Package reddit is a thin client for the subset of the reddit API this
// daemon consumes: the new-submission stream, author metadata and comment
// history, moderation actions, and the sidebar/widget/sticky operations
// used for megathread rotation.
package reddit

import (
	"context"
	"errors"
)

var (
	// returned by FetchSubmission when the thing ID does not resolve
	ErrSubmissionNotFound = errors.New("submission not found")
	// returned by CommentIterator.Next once the history is exhausted
	ErrExhausted = errors.New("comment history exhausted")
)

// Stream of new submissions for one subreddit. Next blocks until a new
// submission exists; there is no upper bound on the wait.
type SubmissionStream interface {
	Next(ctx context.Context) (*Submission, error)
}

// Lazily paginated, reverse-chronological comment sequence. Next returns
// ErrExhausted once the history is exhausted.
type CommentIterator interface {
	Next(ctx context.Context) (*Comment, error)
}

// Platform gateway consumed by the moderation engine and supervisor.
// Implemented by *HTTPClient for production and *MockClient for tests.
type Client interface {
	StreamNewSubmissions(ctx context.Context, subreddit string) (SubmissionStream, error)
	FetchSubmission(ctx context.Context, id string) (*Submission, error)

	AboutUser(ctx context.Context, user string) (*Account, error)
	IsModerator(ctx context.Context, subreddit, user string) (bool, error)
	IsApprovedContributor(ctx context.Context, subreddit, user string) (bool, error)
	AuthorComments(ctx context.Context, user string) CommentIterator

	// moderation side effects
	ReplyAndDistinguish(ctx context.Context, sub *Submission, text string) (string, error)
	Remove(ctx context.Context, sub *Submission) error
	Report(ctx context.Context, sub *Submission, reason string) error

	// megathread rotation
	SubmitSelfPost(ctx context.Context, subreddit, title, body string) (*Submission, error)
	Sticky(ctx context.Context, sub *Submission, state bool) error
	SetFlair(ctx context.Context, sub *Submission, flairTemplateID string) error
	SetSuggestedSort(ctx context.Context, sub *Submission, sort string) error
	SubredditDescription(ctx context.Context, subreddit string) (string, error)
	UpdateSidebarDescription(ctx context.Context, subreddit, description string) error
	SidebarWidgets(ctx context.Context, subreddit string) ([]Widget, error)
	UpdateWidgetButtons(ctx context.Context, subreddit, widgetID string, buttons []WidgetButton) error

	SendMessage(ctx context.Context, user, subject, body string) error
}
