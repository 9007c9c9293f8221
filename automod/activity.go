package automod

import (
	"context"
	"errors"
	"time"

	"github.com/amv-mods/mastereditor/reddit"
)

const (
	// matching comments needed to count as an active author
	ActivityCommentThreshold = 6
	// scan cutoff: roughly six months (184.5 days)
	ActivityWindow = 15778800 * time.Second
)

// HasSufficientActivity scans an author's comments, newest first, counting
// those posted in the monitored subreddit. It returns true as soon as the
// count reaches the threshold, and false as soon as it reaches a comment
// outside the subreddit that is older than the activity window: the scan
// assumes newest-first order, so no later comment can help. Exhausting the
// sequence without reaching the threshold also returns false.
func HasSufficientActivity(ctx context.Context, comments reddit.CommentIterator, subredditID string, now time.Time) (bool, error) {
	count := 0
	for {
		c, err := comments.Next(ctx)
		if errors.Is(err, reddit.ErrExhausted) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		if c.SubredditID == subredditID {
			count++
			if count >= ActivityCommentThreshold {
				return true, nil
			}
			continue
		}
		if now.Sub(c.CreatedAt) >= ActivityWindow {
			return false, nil
		}
	}
}
