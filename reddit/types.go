package reddit

import (
	"time"
)

// A single post under moderation. Read-only to this system except for
// status transitions applied through client methods.
type Submission struct {
	// Base-36 thing ID, without the "t3_" prefix
	ID string
	// Fully-qualified thing name ("t3_" + ID)
	Fullname  string
	Title     string
	Author    string
	CreatedAt time.Time
	// set when a moderator has manually approved the post
	Approved bool
	// true for text ("self") posts
	IsSelf bool
	// true for videos hosted by reddit itself
	IsVideo bool
	// external URL, for link posts
	URL string
	// embedded video duration in seconds, for native video posts
	VideoDuration int
	Permalink     string
	Stickied      bool
}

// Account metadata for a submission author. Referenced, never mutated.
type Account struct {
	Name      string
	CreatedAt time.Time
}

// One comment from an author's history, as consumed by the activity
// classifier. Only the fields the classifier inspects are retained.
type Comment struct {
	// subreddit thing ID the comment was posted in ("t5_...")
	SubredditID string
	CreatedAt   time.Time
	// fullname of the parent submission ("t3_...")
	LinkID string
}

// A sidebar widget button, as exposed by the widgets API.
type WidgetButton struct {
	Text string `json:"text"`
	URL  string `json:"url"`
	Kind string `json:"kind,omitempty"`
}

// A subreddit sidebar widget. Only button-style widgets are modeled.
type Widget struct {
	ID        string
	ShortName string
	Buttons   []WidgetButton
}
