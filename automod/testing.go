package automod

import (
	"context"
	"log/slog"

	"github.com/amv-mods/mastereditor/automod/countstore"
	"github.com/amv-mods/mastereditor/reddit"
	"github.com/amv-mods/mastereditor/youtube"
)

// Resolver backed by fixture data. Unrecognized URLs resolve to
// ErrNotVideo; recognized IDs missing from Durations resolve to
// ErrUnreachable, matching the live resolver's empty-lookup behavior.
type MockResolver struct {
	Durations map[string]int
}

func (r *MockResolver) Resolve(ctx context.Context, rawURL string) (*youtube.VideoInfo, error) {
	id, ok := youtube.ExtractVideoID(rawURL)
	if !ok {
		return nil, youtube.ErrNotVideo
	}
	d, ok := r.Durations[id]
	if !ok {
		return nil, youtube.ErrUnreachable
	}
	return &youtube.VideoInfo{ID: id, Duration: d}, nil
}

var _ youtube.Resolver = (*MockResolver)(nil)

// Engine wired against in-memory stores and mocks, for tests. Callers
// attach a RuleSet (the rules package has the default one).
func EngineTestFixture(gateway *reddit.MockClient, resolver youtube.Resolver) Engine {
	logger := slog.Default()
	if resolver == nil {
		resolver = &MockResolver{Durations: map[string]int{}}
	}
	eng := Engine{
		Logger:      logger,
		Gateway:     gateway,
		Resolver:    resolver,
		Counters:    countstore.NewMemCountStore(),
		Subreddit:   "amv",
		SubredditID: "t5_2qpg3",
	}
	eng.Actor = &ActionExecutor{
		Gateway: gateway,
		Logger:  logger,
	}
	return eng
}
