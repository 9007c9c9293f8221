// Package youtube resolves external link URLs to video metadata via the
// YouTube Data API. A lookup has three outcomes: metadata, "this is not a
// recognized video link" (ErrNotVideo), or "the video exists but can not
// be read" (ErrUnreachable). Callers branch on the sentinel errors rather
// than on response shape.
package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

var (
	// the URL is not a recognized youtube video link
	ErrNotVideo = errors.New("link is not a youtube video")
	// the video ID is valid but the lookup returned nothing (blocked,
	// private, or deleted video)
	ErrUnreachable = errors.New("youtube video is blocked or unreachable")
)

type VideoInfo struct {
	ID string
	// duration in seconds
	Duration int
}

type Resolver interface {
	Resolve(ctx context.Context, rawURL string) (*VideoInfo, error)
}

const dataAPIHost = "https://www.googleapis.com"

// APIResolver looks up video durations via the Data API v3 videos.list
// endpoint (part=contentDetails).
type APIResolver struct {
	APIKey string
	Client *http.Client
	// overridable for tests; defaults to the googleapis host
	Host string
}

func NewAPIResolver(apiKey string, client *http.Client) *APIResolver {
	if client == nil {
		client = http.DefaultClient
	}
	return &APIResolver{APIKey: apiKey, Client: client, Host: dataAPIHost}
}

// Pulls a video ID out of the two supported URL forms:
// youtu.be/<id> and youtube.com/watch?v=<id>.
func ExtractVideoID(rawURL string) (string, bool) {
	if _, after, found := strings.Cut(rawURL, "//youtu.be/"); found {
		id, _, _ := strings.Cut(after, "?")
		if id != "" {
			return id, true
		}
		return "", false
	}
	if strings.Contains(rawURL, "youtube") {
		if _, after, found := strings.Cut(rawURL, "v="); found {
			id, _, _ := strings.Cut(after, "&")
			if id != "" {
				return id, true
			}
		}
		return "", false
	}
	return "", false
}

func (r *APIResolver) Resolve(ctx context.Context, rawURL string) (*VideoInfo, error) {
	videoID, ok := ExtractVideoID(rawURL)
	if !ok {
		return nil, ErrNotVideo
	}

	q := url.Values{}
	q.Set("part", "contentDetails")
	q.Set("id", videoID)
	q.Set("key", r.APIKey)
	endpoint := r.Host + "/youtube/v3/videos?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := r.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("youtube API request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("youtube API error: status=%d", resp.StatusCode)
	}

	var out struct {
		Items []struct {
			ContentDetails struct {
				Duration string `json:"duration"`
			} `json:"contentDetails"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding youtube API response: %w", err)
	}
	// an empty item list means the video can not be read at all
	if len(out.Items) == 0 {
		return nil, ErrUnreachable
	}

	seconds, err := ParseISODuration(out.Items[0].ContentDetails.Duration)
	if err != nil {
		return nil, fmt.Errorf("parsing video duration: %w", err)
	}
	return &VideoInfo{ID: videoID, Duration: seconds}, nil
}

var _ Resolver = (*APIResolver)(nil)
