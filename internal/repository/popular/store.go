package popular

import (
	"context"
	"fmt"
	"time"

	"github.com/translate/ptlsearch/internal/db"
)

// store is the consumer interface for popular-search operations (ISP).
type store interface {
	ZIncrBy(ctx context.Context, key, member string, incr float64) error
	ZTop(ctx context.Context, key string, n int) ([]db.ScoredMember, error)
	Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error
}

// Entry is one popular encoded query and how often it was searched.
type Entry struct {
	Query string
	Count int64
}

// Store counts encoded search queries per environment in sorted sets.
type Store struct {
	store  store
	prefix string
	ttl    time.Duration
}

// New creates a popular-searches store.
// Keys are "<prefix>popular:<environment>"; ttl is applied once per key (recommended: 30 days).
func New(s store, prefix string, ttl time.Duration) *Store {
	return &Store{store: s, prefix: prefix, ttl: ttl}
}

// Record counts one search for encoded in environment.
func (s *Store) Record(ctx context.Context, environment, encoded string) error {
	key := s.key(environment)
	if err := s.store.ZIncrBy(ctx, key, encoded, 1); err != nil {
		return fmt.Errorf("popular ZINCRBY %s: %w", key, err)
	}

	// Set TTL only if the key has no expiry yet, so a busy key still ages out.
	if s.ttl > 0 {
		if err := s.store.Expire(ctx, key, s.ttl, true); err != nil {
			return fmt.Errorf("popular EXPIRE %s: %w", key, err)
		}
	}
	return nil
}

// Top returns up to limit most searched queries in environment.
func (s *Store) Top(ctx context.Context, environment string, limit int) ([]Entry, error) {
	key := s.key(environment)
	members, err := s.store.ZTop(ctx, key, limit)
	if err != nil {
		return nil, fmt.Errorf("popular ZRANGE %s: %w", key, err)
	}

	entries := make([]Entry, len(members))
	for i, m := range members {
		entries[i] = Entry{Query: m.Member, Count: int64(m.Score)}
	}
	return entries, nil
}

func (s *Store) key(environment string) string {
	return s.prefix + "popular:" + environment
}
