package projectx

import (
	"context"
	"strings"
	"time"

	"BarPulse/internal/domain/repository"
	"BarPulse/pkg/cache"
	applogger "BarPulse/pkg/logger"
)

// CachedResolver caches resolved contract IDs in front of the upstream
// resolver. Resolution is expensive (up to six search calls per symbol) and
// the front contract changes rarely, so a generous TTL is safe.
type CachedResolver struct {
	inner  repository.ContractResolver
	cache  cache.Service
	ttl    time.Duration
	logger *applogger.Logger
}

// NewCachedResolver wraps a contract resolver with a cache layer.
func NewCachedResolver(inner repository.ContractResolver, c cache.Service, ttl time.Duration, logger *applogger.Logger) *CachedResolver {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &CachedResolver{inner: inner, cache: c, ttl: ttl, logger: logger}
}

func (r *CachedResolver) ResolveContract(ctx context.Context, symbolOrID string, live bool) (string, error) {
	key := cache.GenerateKeyWithParams("contract", strings.ToUpper(strings.TrimSpace(symbolOrID)), live)

	var id string
	if err := r.cache.Get(ctx, key, &id); err == nil && id != "" {
		return id, nil
	}

	id, err := r.inner.ResolveContract(ctx, symbolOrID, live)
	if err != nil {
		return "", err
	}

	if err := r.cache.Set(ctx, key, id, r.ttl); err != nil {
		r.logger.Warn("contract cache write failed", applogger.Error(err))
	}
	return id, nil
}
