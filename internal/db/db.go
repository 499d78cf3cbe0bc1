package db

import (
	"context"
	"time"
)

// Store is the database facade used by the service.
type Store interface {
	Pinger
	SortedSetStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ScoredMember is one sorted-set member with its score.
type ScoredMember struct {
	Member string
	Score  float64
}

// SortedSetStore provides sorted-set counters.
type SortedSetStore interface {
	ZIncrBy(ctx context.Context, key, member string, incr float64) error
	// ZTop returns up to n members ordered by descending score.
	ZTop(ctx context.Context, key string, n int) ([]ScoredMember, error)
	Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error
}
