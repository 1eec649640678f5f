package forex

import (
	"context"
	"sync"
	"time"

	worth "go-btc-worth"
)

// cachingService decorates a forex.Service with a cache of rates for past
// days. Past fixings never change, so cached entries never expire. The
// current day's rate still moves intraday and is always fetched live.
// The cachingService is concurrency safe.
type cachingService struct {
	// next the service being decorated with a cache
	next Service

	// cache maps a YYYY-MM-DD date to its fixing
	cache map[string]worth.Rate

	// lock synchronizes access to cache to make it concurrency safe
	lock sync.RWMutex

	// now injectable clock for tests
	now func() time.Time
}

// NewCachingService returns a new caching Service
func NewCachingService(s Service) Service {
	return &cachingService{
		next:  s,
		cache: map[string]worth.Rate{},
		now:   time.Now,
	}
}

// Rate looks up a conversion rate, serving past days from cache.
func (s *cachingService) Rate(ctx context.Context, day time.Time) (worth.Rate, error) {
	date := day.UTC().Format(time.DateOnly)
	today := s.now().UTC().Format(time.DateOnly)

	if date >= today {
		return s.next.Rate(ctx, day)
	}

	s.lock.RLock()
	rate, ok := s.cache[date]
	s.lock.RUnlock()
	if ok {
		return rate, nil
	}

	// Concurrent misses for the same date may each hit the upstream; the
	// last write wins and all writes carry the same immutable fixing.
	rate, err := s.next.Rate(ctx, day)
	if err != nil {
		return 0, err
	}

	s.lock.Lock()
	s.cache[date] = rate
	s.lock.Unlock()
	return rate, nil
}
