package youtube

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractVideoID(t *testing.T) {
	assert := assert.New(t)

	fixtures := []struct {
		url string
		id  string
		ok  bool
	}{
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://youtu.be/dQw4w9WgXcQ?t=42", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PLx", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/feed/subscriptions", "", false},
		{"https://vimeo.com/12345", "", false},
		{"https://example.com/video.mp4", "", false},
	}
	for _, fix := range fixtures {
		id, ok := ExtractVideoID(fix.url)
		assert.Equal(fix.ok, ok, fix.url)
		assert.Equal(fix.id, id, fix.url)
	}
}

func TestParseISODuration(t *testing.T) {
	assert := assert.New(t)

	fixtures := []struct {
		raw     string
		seconds int
		wantErr bool
	}{
		{"PT59S", 59, false},
		{"PT1M", 60, false},
		{"PT3M25S", 205, false},
		{"PT1H2M3S", 3723, false},
		{"PT1H", 3600, false},
		{"PT", 0, false},
		{"P1DT1M", 0, true},
		{"1:02:03", 0, true},
		{"", 0, true},
	}
	for _, fix := range fixtures {
		seconds, err := ParseISODuration(fix.raw)
		if fix.wantErr {
			assert.Error(err, fix.raw)
			continue
		}
		assert.NoError(err, fix.raw)
		assert.Equal(fix.seconds, seconds, fix.raw)
	}
}

func TestResolve(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("id") {
		case "longvid":
			w.Write([]byte(`{"items":[{"contentDetails":{"duration":"PT3M25S"}}]}`))
		case "shortvid":
			w.Write([]byte(`{"items":[{"contentDetails":{"duration":"PT45S"}}]}`))
		default:
			w.Write([]byte(`{"items":[]}`))
		}
	}))
	defer srv.Close()

	r := NewAPIResolver("test-key", srv.Client())
	r.Host = srv.URL

	info, err := r.Resolve(ctx, "https://youtu.be/longvid")
	assert.NoError(err)
	assert.Equal(205, info.Duration)

	info, err = r.Resolve(ctx, "https://www.youtube.com/watch?v=shortvid")
	assert.NoError(err)
	assert.Equal(45, info.Duration)

	_, err = r.Resolve(ctx, "https://youtu.be/blockedvid")
	assert.ErrorIs(err, ErrUnreachable)

	_, err = r.Resolve(ctx, "https://vimeo.com/12345")
	assert.ErrorIs(err, ErrNotVideo)
}
