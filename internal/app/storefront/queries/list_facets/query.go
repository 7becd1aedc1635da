package list_facets

import (
	"context"
	"fmt"
	"time"

	"github.com/light-bringer/storefront-service/internal/app/storefront/contracts"
	"github.com/light-bringer/storefront-service/internal/app/storefront/domain"
	"github.com/light-bringer/storefront-service/internal/cache"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
	"github.com/light-bringer/storefront-service/internal/pkg/logger"
)

// Source selects where facets come from.
type Source string

const (
	// SourceServer asks the store API for pre-aggregated facets.
	SourceServer Source = "server"
	// SourceLocal computes facets from the loaded catalog.
	SourceLocal Source = "local"
)

// ParseSource maps anything but "local" to SourceServer.
func ParseSource(s string) Source {
	if Source(s) == SourceLocal {
		return SourceLocal
	}
	return SourceServer
}

// Request contains the facet source and, for the server, the facets wanted.
type Request struct {
	Source Source
	Flags  domain.FacetFlags
}

// FilterOptions is the store API call behind server facets.
type FilterOptions interface {
	FilterOptions(ctx context.Context, flags domain.FacetFlags) (domain.Facets, error)
}

// Query handles the list facets query use case.
type Query struct {
	api   FilterOptions
	feed  contracts.ProductFeed
	cache cache.Cache
	ttl   time.Duration
	clock clock.Clock
	log   *logger.Logger
}

// NewQuery creates a new list facets query.
func NewQuery(api FilterOptions, feed contracts.ProductFeed, c cache.Cache, ttl time.Duration, clock clock.Clock) *Query {
	return &Query{
		api:   api,
		feed:  feed,
		cache: c,
		ttl:   ttl,
		clock: clock,
		log:   logger.With(logger.String("op", "list_facets")),
	}
}

// Execute returns the facets of the requested source.
func (q *Query) Execute(ctx context.Context, req *Request) (*domain.Facets, error) {
	if req.Source == SourceLocal {
		facets := domain.ComputeFacets(q.feed.Snapshot(), q.clock.Now())
		return &facets, nil
	}

	key := cache.Key("facets", flagsKey(req.Flags))
	var cached domain.Facets
	found, err := q.cache.Get(ctx, key, &cached)
	if err != nil {
		q.log.Warn(ctx, "facet cache read failed", logger.String("key", key), logger.ErrorF(err))
	}
	if found {
		return &cached, nil
	}

	facets, err := q.api.FilterOptions(ctx, req.Flags)
	if err != nil {
		return nil, fmt.Errorf("fetch filter options: %w", err)
	}
	if err := q.cache.Set(ctx, key, facets, q.ttl); err != nil {
		q.log.Warn(ctx, "facet cache write failed", logger.String("key", key), logger.ErrorF(err))
	}
	return &facets, nil
}

func flagsKey(f domain.FacetFlags) string {
	bit := func(b bool) string {
		if b {
			return "1"
		}
		return "0"
	}
	return bit(f.Categories) + bit(f.PriceRange) + bit(f.VariantValues) + bit(f.Conditions) + bit(f.Tags)
}
