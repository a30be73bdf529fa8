package weather

import (
	"context"
	"errors"
	"time"

	"todo_expert/internal/platform/logging"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "weather:"

// Store is the slice of the redis client the cache needs.
type Store interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// CachedProvider keeps one weather value per calendar day in redis. A cache
// outage degrades to calling the next provider.
type CachedProvider struct {
	next   Provider
	store  Store
	ttl    time.Duration
	now    func() time.Time
	logger logging.Logger
}

func NewCachedProvider(next Provider, store Store, ttl time.Duration, logger logging.Logger) *CachedProvider {
	return &CachedProvider{next: next, store: store, ttl: ttl, now: time.Now, logger: logger}
}

func (p *CachedProvider) TodayWeather(ctx context.Context) (string, error) {
	key := cacheKeyPrefix + p.now().Format(dateLayout)

	cached, err := p.store.Get(ctx, key).Result()
	switch {
	case err == nil:
		return cached, nil
	case errors.Is(err, redis.Nil):
	default:
		p.logger.Warn(ctx, "weather cache read failed", "key", key, "error", err)
	}

	w, err := p.next.TodayWeather(ctx)
	if err != nil {
		return "", err
	}

	if err := p.store.Set(ctx, key, w, p.ttl).Err(); err != nil {
		p.logger.Warn(ctx, "weather cache write failed", "key", key, "error", err)
	}
	return w, nil
}
