// Package catalog keeps the in-memory product list that backs every
// listing page. Products arrive in server-paginated batches.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/light-bringer/storefront-service/internal/app/storefront/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/debounce"
	"github.com/light-bringer/storefront-service/internal/pkg/logger"
)

const (
	defaultPageSize        = 20
	defaultRefreshDebounce = 300 * time.Millisecond
	defaultLoadTimeout     = time.Minute
)

// Source fetches one page of products.
type Source interface {
	ListProducts(ctx context.Context, page, limit int, category string) ([]domain.Product, error)
}

// Option configures a Feed.
type Option func(*Feed)

// WithPageSize sets the number of products requested per page.
func WithPageSize(n int) Option {
	return func(f *Feed) {
		if n > 0 {
			f.pageSize = n
		}
	}
}

// WithCategory restricts the feed to one upstream category.
func WithCategory(id string) Option {
	return func(f *Feed) { f.category = id }
}

// WithRefreshDebounce sets the quiet period of ScheduleRefresh.
func WithRefreshDebounce(d time.Duration) Option {
	return func(f *Feed) { f.refreshDelay = d }
}

// WithLoadTimeout bounds the background reload started by ScheduleRefresh.
func WithLoadTimeout(d time.Duration) Option {
	return func(f *Feed) { f.loadTimeout = d }
}

// Feed merges product pages, dropping ids it has already seen. At most one
// page request is in flight at a time.
type Feed struct {
	source       Source
	pageSize     int
	category     string
	refreshDelay time.Duration
	loadTimeout  time.Duration
	log          *logger.Logger

	mu       sync.RWMutex
	products []domain.Product
	seen     map[string]struct{}
	nextPage int
	hasMore  bool
	loading  bool
	// done is closed when the request in flight finishes or is abandoned.
	done chan struct{}
	// gen changes on Reset so responses of an abandoned request are dropped.
	gen uint64

	refresh *debounce.Debouncer
}

// NewFeed creates an empty feed positioned at page 1.
func NewFeed(source Source, opts ...Option) *Feed {
	f := &Feed{
		source:       source,
		pageSize:     defaultPageSize,
		refreshDelay: defaultRefreshDebounce,
		loadTimeout:  defaultLoadTimeout,
		log:          logger.With(logger.String("component", "catalog.feed")),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.reset()
	f.refresh = debounce.New(f.refreshDelay, f.reload)
	return f
}

// LoadMore fetches the next page and merges it. It returns the number of
// new products, zero when there is nothing more to load.
func (f *Feed) LoadMore(ctx context.Context) (int, error) {
	f.mu.Lock()
	if f.loading {
		f.mu.Unlock()
		return 0, domain.ErrLoadInProgress
	}
	if !f.hasMore {
		f.mu.Unlock()
		return 0, nil
	}
	f.startLoad()
	page, gen := f.nextPage, f.gen
	f.mu.Unlock()

	batch, err := f.source.ListProducts(ctx, page, f.pageSize, f.category)

	f.mu.Lock()
	defer f.mu.Unlock()

	if gen != f.gen {
		return 0, nil
	}
	f.finishLoad()

	if err != nil {
		return 0, fmt.Errorf("load page %d: %w", page, err)
	}

	added := 0
	for _, p := range batch {
		if _, dup := f.seen[p.ID]; dup {
			continue
		}
		f.seen[p.ID] = struct{}{}
		f.products = append(f.products, p)
		added++
	}

	f.hasMore = len(batch) == f.pageSize && added > 0
	f.nextPage++
	return added, nil
}

// LoadAll keeps loading until the source is exhausted. A request already in
// flight is waited for, not reported.
func (f *Feed) LoadAll(ctx context.Context) error {
	for f.HasMore() {
		if err := ctx.Err(); err != nil {
			return err
		}
		_, err := f.LoadMore(ctx)
		if errors.Is(err, domain.ErrLoadInProgress) {
			if err := f.Wait(ctx); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Wait blocks until no page request is in flight.
func (f *Feed) Wait(ctx context.Context) error {
	f.mu.RLock()
	loading, done := f.loading, f.done
	f.mu.RUnlock()
	if !loading {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// HasMore reports whether another page may hold new products.
func (f *Feed) HasMore() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.hasMore
}

// Loading reports whether a page request is in flight.
func (f *Feed) Loading() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.loading
}

// Snapshot returns a copy of the merged list in load order.
func (f *Feed) Snapshot() []domain.Product {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]domain.Product, len(f.products))
	copy(out, f.products)
	return out
}

// Find returns a loaded product by id.
func (f *Feed) Find(productID string) (domain.Product, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, p := range f.products {
		if p.ID == productID {
			return p, true
		}
	}
	return domain.Product{}, false
}

// Reset drops every loaded product and rewinds to page 1. A request in
// flight completes but its result is discarded.
func (f *Feed) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reset()
}

func (f *Feed) reset() {
	f.products = nil
	f.seen = make(map[string]struct{})
	f.nextPage = 1
	f.hasMore = true
	if f.loading {
		f.finishLoad()
	}
	f.gen++
}

// startLoad and finishLoad bracket a request in flight. Callers hold mu.
func (f *Feed) startLoad() {
	f.loading = true
	f.done = make(chan struct{})
}

func (f *Feed) finishLoad() {
	f.loading = false
	close(f.done)
}

// acquire waits for the request in flight, if any, and claims the loading
// flag. It returns the generation the claim belongs to.
func (f *Feed) acquire(ctx context.Context) (uint64, error) {
	for {
		f.mu.Lock()
		if !f.loading {
			f.startLoad()
			gen := f.gen
			f.mu.Unlock()
			return gen, nil
		}
		done := f.done
		f.mu.Unlock()

		select {
		case <-done:
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
}

// ScheduleRefresh reloads the feed once calls stop arriving for the refresh
// debounce period. The current list keeps serving readers until the new one
// is complete.
func (f *Feed) ScheduleRefresh() {
	f.refresh.Trigger()
}

// Close cancels a pending refresh and waits for a running one.
func (f *Feed) Close() {
	f.refresh.Stop()
}

func (f *Feed) reload() {
	ctx, cancel := context.WithTimeout(context.Background(), f.loadTimeout)
	defer cancel()

	gen, err := f.acquire(ctx)
	if err != nil {
		f.log.Error(ctx, "catalog refresh failed", logger.ErrorF(err))
		return
	}

	products, seen, pages, err := f.fetchAll(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.gen {
		// Reset ran meanwhile and already released the claim.
		return
	}
	f.finishLoad()

	if err != nil {
		f.log.Error(ctx, "catalog refresh failed", logger.ErrorF(err))
		return
	}
	f.products = products
	f.seen = seen
	f.nextPage = pages + 1
	f.hasMore = false
	f.log.Info(ctx, "catalog refreshed", logger.Int("products", len(products)))
}

// fetchAll reads every page into a new list without touching the live one.
func (f *Feed) fetchAll(ctx context.Context) ([]domain.Product, map[string]struct{}, int, error) {
	var products []domain.Product
	seen := make(map[string]struct{})

	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, 0, err
		}
		batch, err := f.source.ListProducts(ctx, page, f.pageSize, f.category)
		if err != nil {
			return nil, nil, 0, fmt.Errorf("load page %d: %w", page, err)
		}

		added := 0
		for _, p := range batch {
			if _, dup := seen[p.ID]; dup {
				continue
			}
			seen[p.ID] = struct{}{}
			products = append(products, p)
			added++
		}
		if len(batch) != f.pageSize || added == 0 {
			return products, seen, page, nil
		}
	}
}
