package forex

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	worth "go-btc-worth"
)

type mock struct {
	count int32
	rate  worth.Rate
}

func (m *mock) Rate(_ context.Context, _ time.Time) (worth.Rate, error) {
	atomic.AddInt32(&m.count, 1)
	return m.rate, nil
}

func TestCachingService_PastDayCached(t *testing.T) {
	ctx := context.Background()
	underlying := &mock{rate: 71.38}

	s := NewCachingService(underlying).(*cachingService)
	s.now = func() time.Time { return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC) }

	day := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	rate, err := s.Rate(ctx, day)
	assert.Nil(t, err)
	assert.Equal(t, worth.Rate(71.38), rate)
	assert.Equal(t, int32(1), underlying.count)

	rate, err = s.Rate(ctx, day)
	assert.Nil(t, err)
	assert.Equal(t, worth.Rate(71.38), rate)
	assert.Equal(t, int32(1), underlying.count)
}

func TestCachingService_TodayNeverCached(t *testing.T) {
	ctx := context.Background()
	underlying := &mock{rate: 83.12}

	s := NewCachingService(underlying).(*cachingService)
	today := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return today }

	_, _ = s.Rate(ctx, today)
	_, _ = s.Rate(ctx, today)

	assert.Equal(t, int32(2), underlying.count)
}

func TestCachingService_DistinctDaysDistinctEntries(t *testing.T) {
	ctx := context.Background()
	underlying := &mock{rate: 70}

	s := NewCachingService(underlying).(*cachingService)
	s.now = func() time.Time { return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC) }

	_, _ = s.Rate(ctx, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
	_, _ = s.Rate(ctx, time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC))
	_, _ = s.Rate(ctx, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, int32(2), underlying.count)
}
