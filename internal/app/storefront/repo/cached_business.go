package repo

import (
	"context"
	"time"

	"github.com/light-bringer/storefront-service/internal/app/storefront/contracts"
	"github.com/light-bringer/storefront-service/internal/app/storefront/domain"
	"github.com/light-bringer/storefront-service/internal/cache"
	"github.com/light-bringer/storefront-service/internal/pkg/logger"
)

var businessKey = cache.Key("business")

// CachedBusiness serves the store configuration from the cache and falls
// back to the store API on a miss. Cache failures only cost a remote call.
type CachedBusiness struct {
	source contracts.BusinessSource
	cache  cache.Cache
	ttl    time.Duration
	log    *logger.Logger
}

// NewCachedBusiness wraps source with a read-through cache.
func NewCachedBusiness(source contracts.BusinessSource, c cache.Cache, ttl time.Duration) *CachedBusiness {
	return &CachedBusiness{
		source: source,
		cache:  c,
		ttl:    ttl,
		log:    logger.With(logger.String("component", "business.cache")),
	}
}

func (b *CachedBusiness) Business(ctx context.Context) (domain.Business, error) {
	var cached domain.Business
	found, err := b.cache.Get(ctx, businessKey, &cached)
	if err != nil {
		b.log.Warn(ctx, "business cache read failed", logger.ErrorF(err))
	}
	if found {
		return cached, nil
	}

	fresh, err := b.source.Business(ctx)
	if err != nil {
		return domain.Business{}, err
	}
	if err := b.cache.Set(ctx, businessKey, fresh, b.ttl); err != nil {
		b.log.Warn(ctx, "business cache write failed", logger.ErrorF(err))
	}
	return fresh, nil
}

// Invalidate drops the cached configuration.
func (b *CachedBusiness) Invalidate(ctx context.Context) error {
	return b.cache.Delete(ctx, businessKey)
}
