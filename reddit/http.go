package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/carlmjohnson/versioninfo"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"
)

const (
	tokenURL = "https://www.reddit.com/api/v1/access_token"
	apiHost  = "https://oauth.reddit.com"
)

// Script-app credentials for the password OAuth grant.
type Credentials struct {
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
}

// HTTPClient talks to the live reddit API. All outbound requests go
// through a retrying HTTP client with a hard timeout, and are paced by a
// shared rate limiter.
type HTTPClient struct {
	creds    Credentials
	client   *http.Client
	limiter  *rate.Limiter
	logger   *slog.Logger
	host     string
	tokenURL string

	token       string
	tokenExpiry time.Time
}

type leveledSlog struct {
	inner *slog.Logger
}

// re-writes HTTP client ERROR to WARN level (because of retries)
func (l leveledSlog) Error(msg string, keysAndValues ...interface{}) {
	l.inner.Warn(msg, keysAndValues...)
}

func (l leveledSlog) Warn(msg string, keysAndValues ...interface{}) {
	l.inner.Warn(msg, keysAndValues...)
}

func (l leveledSlog) Info(msg string, keysAndValues ...interface{}) {
	l.inner.Info(msg, keysAndValues...)
}

// re-writes HTTP client DEBUG to INFO level (this is where retry is logged)
func (l leveledSlog) Debug(msg string, keysAndValues ...interface{}) {
	l.inner.Info(msg, keysAndValues...)
}

// Generates an HTTP client with decent general-purpose defaults around
// timeouts and retries. The returned client has the stdlib http.Client
// interface, but has Hashicorp retryablehttp logic internally.
//
// This client will retry on connection errors, 5xx status (except 501), and
// 429 Backoff requests (respecting 'Retry-After' header). It will log
// intermediate failures with WARN level.
func RobustHTTPClient(logger *slog.Logger) *http.Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 3
	retryClient.RetryWaitMin = 1 * time.Second
	retryClient.RetryWaitMax = 10 * time.Second
	retryClient.Logger = retryablehttp.LeveledLogger(leveledSlog{logger})
	client := retryClient.StandardClient()
	client.Timeout = 20 * time.Second
	return client
}

func NewHTTPClient(creds Credentials, logger *slog.Logger) *HTTPClient {
	return &HTTPClient{
		creds:  creds,
		client: RobustHTTPClient(logger),
		// reddit allows 60 requests per minute for script apps
		limiter:  rate.NewLimiter(rate.Every(time.Second), 1),
		logger:   logger,
		host:     apiHost,
		tokenURL: tokenURL,
	}
}

func userAgent() string {
	return fmt.Sprintf("mastereditor/%s (subreddit moderation daemon)", versioninfo.Short())
}

// fetches (or re-uses) an OAuth token via the password grant
func (c *HTTPClient) ensureToken(ctx context.Context) error {
	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		return nil
	}
	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", c.creds.Username)
	form.Set("password", c.creds.Password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.creds.ClientID, c.creds.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent())

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("requesting access token: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("access token request failed: status=%d", resp.StatusCode)
	}

	var body struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("decoding access token response: %w", err)
	}
	c.token = body.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(body.ExpiresIn)*time.Second - time.Minute)
	return nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, form url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	if err := c.ensureToken(ctx); err != nil {
		return err
	}

	var bodyReader io.Reader
	endpoint := c.host + path
	if form != nil {
		if method == http.MethodGet {
			endpoint += "?" + form.Encode()
		} else {
			bodyReader = strings.NewReader(form.Encode())
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", userAgent())
	if bodyReader != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("reddit API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// token expired early; force refresh on next call
		c.token = ""
		return fmt.Errorf("reddit API auth rejected: status=%d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("reddit API error: %s %s status=%d", method, path, resp.StatusCode)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding reddit API response: %w", err)
	}
	return nil
}

// wire representation of a "t3" thing
type submissionData struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Title      string  `json:"title"`
	Author     string  `json:"author"`
	CreatedUTC float64 `json:"created_utc"`
	Approved   bool    `json:"approved"`
	IsSelf     bool    `json:"is_self"`
	IsVideo    bool    `json:"is_video"`
	URL        string  `json:"url"`
	Permalink  string  `json:"permalink"`
	Stickied   bool    `json:"stickied"`
	Media      *struct {
		RedditVideo *struct {
			Duration int `json:"duration"`
		} `json:"reddit_video"`
	} `json:"media"`
}

func (d *submissionData) toSubmission() *Submission {
	sub := &Submission{
		ID:        d.ID,
		Fullname:  d.Name,
		Title:     d.Title,
		Author:    d.Author,
		CreatedAt: time.Unix(int64(d.CreatedUTC), 0).UTC(),
		Approved:  d.Approved,
		IsSelf:    d.IsSelf,
		IsVideo:   d.IsVideo,
		URL:       d.URL,
		Permalink: d.Permalink,
		Stickied:  d.Stickied,
	}
	if d.Media != nil && d.Media.RedditVideo != nil {
		sub.VideoDuration = d.Media.RedditVideo.Duration
	}
	return sub
}

type listing[T any] struct {
	Data struct {
		After    string `json:"after"`
		Children []struct {
			Data T `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

func (c *HTTPClient) FetchSubmission(ctx context.Context, id string) (*Submission, error) {
	form := url.Values{}
	form.Set("id", "t3_"+strings.TrimPrefix(id, "t3_"))
	var out listing[submissionData]
	if err := c.do(ctx, http.MethodGet, "/api/info", form, &out); err != nil {
		return nil, err
	}
	if len(out.Data.Children) == 0 {
		return nil, ErrSubmissionNotFound
	}
	return out.Data.Children[0].Data.toSubmission(), nil
}

func (c *HTTPClient) AboutUser(ctx context.Context, user string) (*Account, error) {
	var out struct {
		Data struct {
			Name       string  `json:"name"`
			CreatedUTC float64 `json:"created_utc"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/user/"+user+"/about", nil, &out); err != nil {
		return nil, err
	}
	return &Account{
		Name:      out.Data.Name,
		CreatedAt: time.Unix(int64(out.Data.CreatedUTC), 0).UTC(),
	}, nil
}

// relationship listings ("moderators", "contributors") share a shape
func (c *HTTPClient) inRelationshipListing(ctx context.Context, subreddit, kind, user string) (bool, error) {
	form := url.Values{}
	form.Set("user", user)
	var out struct {
		Data struct {
			Children []struct {
				Name string `json:"name"`
			} `json:"children"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/r/"+subreddit+"/about/"+kind, form, &out); err != nil {
		return false, err
	}
	for _, child := range out.Data.Children {
		if strings.EqualFold(child.Name, user) {
			return true, nil
		}
	}
	return false, nil
}

func (c *HTTPClient) IsModerator(ctx context.Context, subreddit, user string) (bool, error) {
	return c.inRelationshipListing(ctx, subreddit, "moderators", user)
}

func (c *HTTPClient) IsApprovedContributor(ctx context.Context, subreddit, user string) (bool, error) {
	return c.inRelationshipListing(ctx, subreddit, "contributors", user)
}

func (c *HTTPClient) ReplyAndDistinguish(ctx context.Context, sub *Submission, text string) (string, error) {
	form := url.Values{}
	form.Set("api_type", "json")
	form.Set("thing_id", sub.Fullname)
	form.Set("text", text)
	var out struct {
		JSON struct {
			Data struct {
				Things []struct {
					Data struct {
						Name string `json:"name"`
					} `json:"data"`
				} `json:"things"`
			} `json:"data"`
		} `json:"json"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/comment", form, &out); err != nil {
		return "", fmt.Errorf("posting removal notice: %w", err)
	}
	if len(out.JSON.Data.Things) == 0 {
		return "", fmt.Errorf("posting removal notice: empty response")
	}
	commentName := out.JSON.Data.Things[0].Data.Name

	form = url.Values{}
	form.Set("api_type", "json")
	form.Set("id", commentName)
	form.Set("how", "yes")
	form.Set("sticky", "true")
	if err := c.do(ctx, http.MethodPost, "/api/distinguish", form, nil); err != nil {
		return commentName, fmt.Errorf("distinguishing removal notice: %w", err)
	}
	return commentName, nil
}

func (c *HTTPClient) Remove(ctx context.Context, sub *Submission) error {
	form := url.Values{}
	form.Set("id", sub.Fullname)
	form.Set("spam", "false")
	return c.do(ctx, http.MethodPost, "/api/remove", form, nil)
}

func (c *HTTPClient) Report(ctx context.Context, sub *Submission, reason string) error {
	form := url.Values{}
	form.Set("api_type", "json")
	form.Set("thing_id", sub.Fullname)
	form.Set("reason", reason)
	return c.do(ctx, http.MethodPost, "/api/report", form, nil)
}

func (c *HTTPClient) SubmitSelfPost(ctx context.Context, subreddit, title, body string) (*Submission, error) {
	form := url.Values{}
	form.Set("api_type", "json")
	form.Set("sr", subreddit)
	form.Set("kind", "self")
	form.Set("title", title)
	form.Set("text", body)
	var out struct {
		JSON struct {
			Data struct {
				ID   string `json:"id"`
				Name string `json:"name"`
				URL  string `json:"url"`
			} `json:"data"`
		} `json:"json"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/submit", form, &out); err != nil {
		return nil, fmt.Errorf("submitting self post: %w", err)
	}
	return &Submission{
		ID:       out.JSON.Data.ID,
		Fullname: out.JSON.Data.Name,
		Title:    title,
		IsSelf:   true,
		URL:      out.JSON.Data.URL,
	}, nil
}

func (c *HTTPClient) Sticky(ctx context.Context, sub *Submission, state bool) error {
	form := url.Values{}
	form.Set("api_type", "json")
	form.Set("id", sub.Fullname)
	form.Set("state", fmt.Sprintf("%t", state))
	return c.do(ctx, http.MethodPost, "/api/set_subreddit_sticky", form, nil)
}

func (c *HTTPClient) SetFlair(ctx context.Context, sub *Submission, flairTemplateID string) error {
	form := url.Values{}
	form.Set("api_type", "json")
	form.Set("link", sub.Fullname)
	form.Set("flair_template_id", flairTemplateID)
	return c.do(ctx, http.MethodPost, "/api/selectflair", form, nil)
}

func (c *HTTPClient) SetSuggestedSort(ctx context.Context, sub *Submission, sort string) error {
	form := url.Values{}
	form.Set("api_type", "json")
	form.Set("id", sub.Fullname)
	form.Set("sort", sort)
	return c.do(ctx, http.MethodPost, "/api/set_suggested_sort", form, nil)
}

func (c *HTTPClient) SubredditDescription(ctx context.Context, subreddit string) (string, error) {
	var out struct {
		Data struct {
			Description string `json:"description"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/r/"+subreddit+"/about", nil, &out); err != nil {
		return "", err
	}
	return out.Data.Description, nil
}

func (c *HTTPClient) UpdateSidebarDescription(ctx context.Context, subreddit, description string) error {
	form := url.Values{}
	form.Set("api_type", "json")
	form.Set("sr_name", subreddit)
	form.Set("description", description)
	return c.do(ctx, http.MethodPost, "/api/site_admin", form, nil)
}

func (c *HTTPClient) SidebarWidgets(ctx context.Context, subreddit string) ([]Widget, error) {
	var out struct {
		Items map[string]struct {
			ID        string         `json:"id"`
			Kind      string         `json:"kind"`
			ShortName string         `json:"shortName"`
			Buttons   []WidgetButton `json:"buttons"`
		} `json:"items"`
		Layout struct {
			Sidebar struct {
				Order []string `json:"order"`
			} `json:"sidebar"`
		} `json:"layout"`
	}
	if err := c.do(ctx, http.MethodGet, "/r/"+subreddit+"/api/widgets", nil, &out); err != nil {
		return nil, err
	}
	var widgets []Widget
	for _, id := range out.Layout.Sidebar.Order {
		item, ok := out.Items[id]
		if !ok {
			continue
		}
		widgets = append(widgets, Widget{
			ID:        item.ID,
			ShortName: item.ShortName,
			Buttons:   item.Buttons,
		})
	}
	return widgets, nil
}

func (c *HTTPClient) UpdateWidgetButtons(ctx context.Context, subreddit, widgetID string, buttons []WidgetButton) error {
	payload, err := json.Marshal(map[string]any{
		"kind":    "button",
		"buttons": buttons,
	})
	if err != nil {
		return err
	}
	form := url.Values{}
	form.Set("json", string(payload))
	return c.do(ctx, http.MethodPut, "/r/"+subreddit+"/api/widget/"+widgetID, form, nil)
}

func (c *HTTPClient) SendMessage(ctx context.Context, user, subject, body string) error {
	form := url.Values{}
	form.Set("api_type", "json")
	form.Set("to", user)
	form.Set("subject", subject)
	form.Set("text", body)
	return c.do(ctx, http.MethodPost, "/api/compose", form, nil)
}
