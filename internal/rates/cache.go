package rates

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"homeloans_backend/platform/logger"

	"github.com/redis/go-redis/v9"
)

const cacheKey = "rates:sheet"

// CachedStore is a read-through Redis cache in front of another Store.
// Redis failures degrade to the underlying store.
type CachedStore struct {
	next Store
	rdb  *redis.Client
	ttl  time.Duration
	log  *logger.Logger
}

func NewCachedStore(next Store, rdb *redis.Client, ttl time.Duration, log *logger.Logger) *CachedStore {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedStore{next: next, rdb: rdb, ttl: ttl, log: log}
}

func (s *CachedStore) Read(ctx context.Context) (RateSheet, error) {
	raw, err := s.rdb.Get(ctx, cacheKey).Bytes()
	switch {
	case err == nil:
		var sheet RateSheet
		if jsonErr := json.Unmarshal(raw, &sheet); jsonErr == nil {
			return sheet, nil
		}
		s.log.Warn("discarding unreadable cached rate sheet")
	case !errors.Is(err, redis.Nil):
		s.log.Warn("rates cache read failed", "error", err)
	}

	sheet, err := s.next.Read(ctx)
	if err != nil {
		return RateSheet{}, err
	}

	if payload, err := json.Marshal(sheet); err == nil {
		if err := s.rdb.Set(ctx, cacheKey, payload, s.ttl).Err(); err != nil {
			s.log.Warn("rates cache write failed", "error", err)
		}
	}
	return sheet, nil
}

func (s *CachedStore) Write(ctx context.Context, sheet RateSheet) (RateSheet, error) {
	stored, err := s.next.Write(ctx, sheet)
	if err != nil {
		return RateSheet{}, err
	}
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.log.Warn("rates cache invalidation failed", "error", err)
	}
	return stored, nil
}

var _ Store = (*CachedStore)(nil)
