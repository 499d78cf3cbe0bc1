package redis

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/rueidis"

	"github.com/translate/ptlsearch/internal/db"
)

// ZIncrBy increments member's score in the sorted set at key.
func (s *Store) ZIncrBy(ctx context.Context, key, member string, incr float64) error {
	cmd := s.b().Zincrby().Key(key).Increment(incr).Member(member).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpZIncrBy, Err: err}
	}
	return nil
}

// ZTop returns up to n members with the highest scores, best first.
// A missing key yields an empty result.
func (s *Store) ZTop(ctx context.Context, key string, n int) ([]db.ScoredMember, error) {
	if n <= 0 {
		return nil, nil
	}
	cmd := s.b().Zrange().Key(key).Min("0").Max(strconv.Itoa(n - 1)).Rev().Withscores().Build()
	scores, err := s.do(ctx, cmd).AsZScores()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, nil
		}
		return nil, &db.Error{Op: db.OpZRange, Err: err}
	}

	out := make([]db.ScoredMember, len(scores))
	for i, z := range scores {
		out[i] = db.ScoredMember{Member: z.Member, Score: z.Score}
	}
	return out, nil
}

// Expire sets TTL on a key. When nx=true, sets TTL only if the key has no expiry yet (EXPIRE NX).
func (s *Store) Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error {
	var cmd rueidis.Completed
	if nx {
		cmd = s.b().Expire().Key(key).Seconds(int64(ttl.Seconds())).Nx().Build()
	} else {
		cmd = s.b().Expire().Key(key).Seconds(int64(ttl.Seconds())).Build()
	}
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpExpire, Err: err}
	}
	return nil
}
