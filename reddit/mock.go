package reddit

import (
	"context"
	"strings"
	"sync"
)

// In-memory Client for tests. Submissions queued with QueueSubmission are
// yielded by the stream in order; side effects are recorded on the mock
// for assertions.
type MockClient struct {
	mu sync.Mutex

	Accounts     map[string]Account
	Moderators   map[string]bool
	Contributors map[string]bool
	Comments     map[string][]Comment
	Submissions  map[string]*Submission
	Description  string
	Widgets      []Widget

	queue chan *Submission
	// error injected into stream operations until cleared
	StreamErr error

	Removed        []string
	Reported       map[string]string
	Replies        map[string]string
	Distinguished  []string
	Stickied       map[string]bool
	Flaired        map[string]string
	SuggestedSorts map[string]string
	Posted         []*Submission
	Messages       []MockMessage
	WidgetUpdates  map[string][]WidgetButton
}

type MockMessage struct {
	To      string
	Subject string
	Body    string
}

func NewMockClient() *MockClient {
	return &MockClient{
		Accounts:       make(map[string]Account),
		Moderators:     make(map[string]bool),
		Contributors:   make(map[string]bool),
		Comments:       make(map[string][]Comment),
		Submissions:    make(map[string]*Submission),
		queue:          make(chan *Submission, 64),
		Reported:       make(map[string]string),
		Replies:        make(map[string]string),
		Stickied:       make(map[string]bool),
		Flaired:        make(map[string]string),
		SuggestedSorts: make(map[string]string),
		WidgetUpdates:  make(map[string][]WidgetButton),
	}
}

func (m *MockClient) QueueSubmission(sub *Submission) {
	m.queue <- sub
}

type mockStream struct {
	m *MockClient
}

func (s *mockStream) Next(ctx context.Context) (*Submission, error) {
	s.m.mu.Lock()
	if err := s.m.StreamErr; err != nil {
		s.m.mu.Unlock()
		return nil, err
	}
	s.m.mu.Unlock()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case sub := <-s.m.queue:
		return sub, nil
	}
}

func (m *MockClient) StreamNewSubmissions(ctx context.Context, subreddit string) (SubmissionStream, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.StreamErr; err != nil {
		return nil, err
	}
	return &mockStream{m: m}, nil
}

func (m *MockClient) FetchSubmission(ctx context.Context, id string) (*Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sub, ok := m.Submissions[strings.TrimPrefix(id, "t3_")]
	if !ok {
		return nil, ErrSubmissionNotFound
	}
	return sub, nil
}

func (m *MockClient) AboutUser(ctx context.Context, user string) (*Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	acct, ok := m.Accounts[user]
	if !ok {
		return &Account{Name: user}, nil
	}
	return &acct, nil
}

func (m *MockClient) IsModerator(ctx context.Context, subreddit, user string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Moderators[user], nil
}

func (m *MockClient) IsApprovedContributor(ctx context.Context, subreddit, user string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Contributors[user], nil
}

type sliceCommentIterator struct {
	comments []Comment
	idx      int
}

func (it *sliceCommentIterator) Next(ctx context.Context) (*Comment, error) {
	if it.idx >= len(it.comments) {
		return nil, ErrExhausted
	}
	c := it.comments[it.idx]
	it.idx++
	return &c, nil
}

// Fixed in-memory comment sequence, for classifier tests.
func NewSliceCommentIterator(comments []Comment) CommentIterator {
	return &sliceCommentIterator{comments: comments}
}

func (m *MockClient) AuthorComments(ctx context.Context, user string) CommentIterator {
	m.mu.Lock()
	defer m.mu.Unlock()
	return &sliceCommentIterator{comments: m.Comments[user]}
}

func (m *MockClient) ReplyAndDistinguish(ctx context.Context, sub *Submission, text string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Replies[sub.Fullname] = text
	m.Distinguished = append(m.Distinguished, sub.Fullname)
	return "t1_mock", nil
}

func (m *MockClient) Remove(ctx context.Context, sub *Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Removed = append(m.Removed, sub.Fullname)
	return nil
}

func (m *MockClient) Report(ctx context.Context, sub *Submission, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reported[sub.Fullname] = reason
	return nil
}

func (m *MockClient) SubmitSelfPost(ctx context.Context, subreddit, title, body string) (*Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sub := &Submission{
		ID:       "mock" + string(rune('a'+len(m.Posted))),
		Fullname: "t3_mock" + string(rune('a'+len(m.Posted))),
		Title:    title,
		IsSelf:   true,
		URL:      "https://reddit.example/" + subreddit + "/mock",
	}
	m.Posted = append(m.Posted, sub)
	return sub, nil
}

func (m *MockClient) Sticky(ctx context.Context, sub *Submission, state bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Stickied[sub.Fullname] = state
	return nil
}

func (m *MockClient) SetFlair(ctx context.Context, sub *Submission, flairTemplateID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Flaired[sub.Fullname] = flairTemplateID
	return nil
}

func (m *MockClient) SetSuggestedSort(ctx context.Context, sub *Submission, sort string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SuggestedSorts[sub.Fullname] = sort
	return nil
}

func (m *MockClient) SubredditDescription(ctx context.Context, subreddit string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Description, nil
}

func (m *MockClient) UpdateSidebarDescription(ctx context.Context, subreddit, description string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Description = description
	return nil
}

func (m *MockClient) SidebarWidgets(ctx context.Context, subreddit string) ([]Widget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Widgets, nil
}

func (m *MockClient) UpdateWidgetButtons(ctx context.Context, subreddit, widgetID string, buttons []WidgetButton) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WidgetUpdates[widgetID] = buttons
	return nil
}

func (m *MockClient) SendMessage(ctx context.Context, user, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Messages = append(m.Messages, MockMessage{To: user, Subject: subject, Body: body})
	return nil
}

var _ Client = (*MockClient)(nil)
var _ Client = (*HTTPClient)(nil)
