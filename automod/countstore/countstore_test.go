package countstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemCountStore(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	s := NewMemCountStore()

	for _, period := range []string{PeriodTotal, PeriodDay, PeriodHour} {
		c, err := s.GetCount(ctx, "decision", "remove", period)
		assert.NoError(err)
		assert.Equal(0, c)
	}

	assert.NoError(s.Increment(ctx, "decision", "remove"))
	assert.NoError(s.Increment(ctx, "decision", "remove"))
	assert.NoError(s.Increment(ctx, "decision", "allow"))

	for _, period := range []string{PeriodTotal, PeriodDay, PeriodHour} {
		c, err := s.GetCount(ctx, "decision", "remove", period)
		assert.NoError(err)
		assert.Equal(2, c, period)

		c, err = s.GetCount(ctx, "decision", "allow", period)
		assert.NoError(err)
		assert.Equal(1, c, period)
	}

	// unknown period falls back to the total bucket
	c, err := s.GetCount(ctx, "decision", "remove", "fortnight")
	assert.NoError(err)
	assert.Equal(2, c)
}
