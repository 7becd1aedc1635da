package filter_products

import (
	"context"
	"errors"
	"fmt"

	"github.com/light-bringer/storefront-service/internal/app/storefront/contracts"
	"github.com/light-bringer/storefront-service/internal/app/storefront/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
)

// ScopeKind selects the default category scope of a listing page.
type ScopeKind int

const (
	// ScopeAll lists every product.
	ScopeAll ScopeKind = iota
	// ScopeCategory lists a category and all of its descendants.
	ScopeCategory
	// ScopeMainCategory lists the direct children of a main category.
	ScopeMainCategory
)

// Request contains the listing selection.
type Request struct {
	State   domain.FilterState
	Scope   ScopeKind
	ScopeID string
	Search  domain.SearchFields
	// LoadMore fetches the next upstream page before filtering.
	LoadMore bool
}

// Response is one page of the filtered listing.
type Response struct {
	Products  []domain.ProductSummary `json:"products"`
	Total     int                     `json:"total"`
	Page      int                     `json:"page"`
	PageSize  int                     `json:"pageSize"`
	PageCount int                     `json:"pageCount"`
	HasMore   bool                    `json:"hasMore"`
}

// Query handles the filter products query use case.
type Query struct {
	feed     contracts.ProductFeed
	business contracts.BusinessSource
	clock    clock.Clock
}

// NewQuery creates a new filter products query.
func NewQuery(feed contracts.ProductFeed, business contracts.BusinessSource, clock clock.Clock) *Query {
	return &Query{
		feed:     feed,
		business: business,
		clock:    clock,
	}
}

// Execute runs the filter pipeline over the loaded catalog.
func (q *Query) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := q.ensureLoaded(ctx, req.LoadMore); err != nil {
		return nil, err
	}

	scope, err := q.scope(ctx, req.Scope, req.ScopeID)
	if err != nil {
		return nil, err
	}

	state := req.State
	if state.Page == 0 {
		state.Page = 1
	}
	if state.PageSize <= 0 {
		state.PageSize = domain.DefaultPageSize
	}

	result := domain.FilterProducts(q.feed.Snapshot(), state, domain.PipelineOptions{
		Scope:  scope,
		Search: req.Search,
		Now:    q.clock.Now(),
	})

	return &Response{
		Products:  domain.SummarizeAll(result.Page, q.clock.Now()),
		Total:     len(result.Filtered),
		Page:      state.Page,
		PageSize:  state.PageSize,
		PageCount: result.PageCount,
		HasMore:   q.feed.HasMore(),
	}, nil
}

// ensureLoaded fetches the first page of an empty feed, and the next page
// when asked. A page already in flight is not an error for the reader.
func (q *Query) ensureLoaded(ctx context.Context, more bool) error {
	if !more && (len(q.feed.Snapshot()) > 0 || !q.feed.HasMore()) {
		return nil
	}
	if _, err := q.feed.LoadMore(ctx); err != nil && !errors.Is(err, domain.ErrLoadInProgress) {
		return fmt.Errorf("load products: %w", err)
	}
	return nil
}

func (q *Query) scope(ctx context.Context, kind ScopeKind, id string) (domain.Scope, error) {
	if kind == ScopeAll {
		return domain.Scope{}, nil
	}

	b, err := q.business.Business(ctx)
	if err != nil {
		return domain.Scope{}, fmt.Errorf("load categories: %w", err)
	}
	if kind == ScopeMainCategory {
		return b.Categories.ChildScope(id)
	}
	return b.Categories.Scope(id)
}
