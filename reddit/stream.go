package reddit

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	streamPollInterval = 15 * time.Second
	streamPageSize     = 100
	// enough to cover several pages of /new without re-yielding
	streamSeenSize = 1024
)

// httpSubmissionStream long-polls the subreddit's /new listing and yields
// each submission exactly once (within the seen-buffer bound), oldest
// first. The initial page primes the seen buffer, so only submissions
// created after the stream was opened are yielded.
type httpSubmissionStream struct {
	client    *HTTPClient
	subreddit string
	seen      *lru.Cache[string, struct{}]
	pending   []*Submission
	interval  time.Duration
	primed    bool
}

func (c *HTTPClient) StreamNewSubmissions(ctx context.Context, subreddit string) (SubmissionStream, error) {
	seen, err := lru.New[string, struct{}](streamSeenSize)
	if err != nil {
		return nil, err
	}
	s := &httpSubmissionStream{
		client:    c,
		subreddit: subreddit,
		seen:      seen,
		interval:  streamPollInterval,
	}
	if err := s.poll(ctx); err != nil {
		return nil, fmt.Errorf("opening submission stream: %w", err)
	}
	s.primed = true
	return s, nil
}

func (s *httpSubmissionStream) poll(ctx context.Context) error {
	form := url.Values{}
	form.Set("limit", fmt.Sprintf("%d", streamPageSize))
	var out listing[submissionData]
	if err := s.client.do(ctx, http.MethodGet, "/r/"+s.subreddit+"/new", form, &out); err != nil {
		return err
	}
	// listing is newest-first; walk backwards so pending stays ordered
	for i := len(out.Data.Children) - 1; i >= 0; i-- {
		sub := out.Data.Children[i].Data.toSubmission()
		if _, ok := s.seen.Get(sub.Fullname); ok {
			continue
		}
		s.seen.Add(sub.Fullname, struct{}{})
		if s.primed {
			s.pending = append(s.pending, sub)
		}
	}
	return nil
}

// Next blocks until a new submission exists. The only early returns are
// context cancellation and polling errors.
func (s *httpSubmissionStream) Next(ctx context.Context) (*Submission, error) {
	for {
		if len(s.pending) > 0 {
			sub := s.pending[0]
			s.pending = s.pending[1:]
			return sub, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.interval):
		}
		if err := s.poll(ctx); err != nil {
			return nil, err
		}
	}
}

// httpCommentIterator pages through a user's comment history, newest
// first, fetching the next page lazily as the consumer advances.
type httpCommentIterator struct {
	client  *HTTPClient
	user    string
	after   string
	buf     []*Comment
	done    bool
	lastErr error
}

func (c *HTTPClient) AuthorComments(ctx context.Context, user string) CommentIterator {
	return &httpCommentIterator{client: c, user: user}
}

type commentData struct {
	SubredditID string  `json:"subreddit_id"`
	CreatedUTC  float64 `json:"created_utc"`
	LinkID      string  `json:"link_id"`
}

func (it *httpCommentIterator) fetchPage(ctx context.Context) error {
	form := url.Values{}
	form.Set("limit", fmt.Sprintf("%d", streamPageSize))
	form.Set("sort", "new")
	if it.after != "" {
		form.Set("after", it.after)
	}
	var out listing[commentData]
	if err := it.client.do(ctx, http.MethodGet, "/user/"+it.user+"/comments", form, &out); err != nil {
		return err
	}
	for _, child := range out.Data.Children {
		it.buf = append(it.buf, &Comment{
			SubredditID: child.Data.SubredditID,
			CreatedAt:   time.Unix(int64(child.Data.CreatedUTC), 0).UTC(),
			LinkID:      child.Data.LinkID,
		})
	}
	it.after = out.Data.After
	if it.after == "" || len(out.Data.Children) == 0 {
		it.done = true
	}
	return nil
}

func (it *httpCommentIterator) Next(ctx context.Context) (*Comment, error) {
	if it.lastErr != nil {
		return nil, it.lastErr
	}
	if len(it.buf) == 0 {
		if it.done {
			return nil, ErrExhausted
		}
		if err := it.fetchPage(ctx); err != nil {
			it.lastErr = err
			return nil, err
		}
		if len(it.buf) == 0 {
			return nil, ErrExhausted
		}
	}
	c := it.buf[0]
	it.buf = it.buf[1:]
	return c, nil
}
