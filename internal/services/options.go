package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/storefront-service/internal/app/storefront/catalog"
	"github.com/light-bringer/storefront-service/internal/app/storefront/contracts"
	"github.com/light-bringer/storefront-service/internal/app/storefront/domain"
	"github.com/light-bringer/storefront-service/internal/app/storefront/queries/filter_products"
	"github.com/light-bringer/storefront-service/internal/app/storefront/queries/get_cart"
	"github.com/light-bringer/storefront-service/internal/app/storefront/queries/get_product"
	"github.com/light-bringer/storefront-service/internal/app/storefront/queries/get_wishlist"
	"github.com/light-bringer/storefront-service/internal/app/storefront/queries/list_events"
	"github.com/light-bringer/storefront-service/internal/app/storefront/queries/list_facets"
	"github.com/light-bringer/storefront-service/internal/app/storefront/repo"
	"github.com/light-bringer/storefront-service/internal/app/storefront/tracking"
	"github.com/light-bringer/storefront-service/internal/app/storefront/usecases/add_to_cart"
	"github.com/light-bringer/storefront-service/internal/app/storefront/usecases/place_order"
	"github.com/light-bringer/storefront-service/internal/app/storefront/usecases/remove_cart_item"
	"github.com/light-bringer/storefront-service/internal/app/storefront/usecases/toggle_wishlist"
	"github.com/light-bringer/storefront-service/internal/app/storefront/usecases/update_cart_item"
	"github.com/light-bringer/storefront-service/internal/cache"
	"github.com/light-bringer/storefront-service/internal/clients/storeapi"
	"github.com/light-bringer/storefront-service/internal/config"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
	"github.com/light-bringer/storefront-service/internal/pkg/committer"
	"github.com/light-bringer/storefront-service/internal/pkg/logger"
	httptransport "github.com/light-bringer/storefront-service/internal/transport/http"
)

// Settings is the subset of configuration the container needs.
type Settings struct {
	Spanner  config.Spanner
	Redis    config.Redis
	StoreAPI config.StoreAPI
	Checkout config.Checkout
	Catalog  config.Catalog
}

// FromConfig reads Settings from the loaded configuration.
func FromConfig() Settings {
	c := config.C()
	return Settings{
		Spanner:  c.Spanner,
		Redis:    c.Redis,
		StoreAPI: c.StoreAPI,
		Checkout: c.Checkout,
		Catalog:  c.Catalog,
	}
}

// Storage holds the stateful adapters. Tests build it from in-memory parts.
type Storage struct {
	Carts     contracts.CartRepository
	Wishlists contracts.WishlistRepository
	Tracker   contracts.Tracker
	Events    list_events.EventsReadModel
	Cache     cache.Cache
}

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	SpannerClient *spanner.Client
	RedisCache    *cache.RedisCache
	Feed          *catalog.Feed
	Recorder      *tracking.Recorder
	Handler       *httptransport.Handler
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, s Settings) (*ServiceOptions, error) {
	opts := &ServiceOptions{}
	clk := clock.NewRealClock()

	// 1. Remote store API
	api, err := storeapi.New(s.StoreAPI.BaseURL(), s.StoreAPI.Timeout())
	if err != nil {
		return nil, fmt.Errorf("failed to create store API client: %w", err)
	}

	// 2. Storage: Spanner when enabled, in-memory otherwise
	storage := Storage{
		Carts:     repo.NewMemoryCartRepo(),
		Wishlists: repo.NewMemoryWishlistRepo(),
	}
	if s.Spanner.Enabled() {
		client, err := spanner.NewClient(ctx, s.Spanner.Database())
		if err != nil {
			return nil, fmt.Errorf("failed to create Spanner client: %w", err)
		}
		opts.SpannerClient = client

		comm := committer.NewCommitter(client)
		storage.Carts = repo.NewSpannerCartRepo(client, comm)
		storage.Wishlists = repo.NewSpannerWishlistRepo(client, comm)
		storage.Tracker = repo.NewOutboxTracker(comm)
		storage.Events = repo.NewEventsReadModel(client)
	} else {
		outbox := repo.NewMemoryOutbox(clk)
		storage.Tracker = outbox
		storage.Events = outbox
	}

	// 3. Cache: Redis when enabled, process memory otherwise
	storage.Cache = cache.NewMemoryCache(clk)
	if s.Redis.Enabled() {
		rc, err := cache.NewRedisCache(ctx, s.Redis.URL())
		if err != nil {
			opts.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		opts.RedisCache = rc
		storage.Cache = rc
	}

	logger.Info(ctx, "storage selected",
		logger.Bool("spanner", s.Spanner.Enabled()),
		logger.Bool("redis", s.Redis.Enabled()),
	)

	// 4. Catalog feed
	opts.Feed = catalog.NewFeed(api,
		catalog.WithPageSize(s.Catalog.PageSize()),
		catalog.WithRefreshDebounce(s.Catalog.RefreshDebounce()),
		catalog.WithLoadTimeout(s.Catalog.LoadTimeout()),
	)

	// 5. Tracking writes, drained on Close
	opts.Recorder = tracking.NewRecorder(storage.Tracker, s.Checkout.TrackingTimeout())

	opts.Handler = NewHandler(api, opts.Feed, storage, opts.Recorder, s, clk)
	if opts.RedisCache != nil {
		opts.Handler.AddHealthCheck("redis", opts.RedisCache.Ping)
	}
	return opts, nil
}

// NewHandler wires use cases and queries over api, feed and storage.
func NewHandler(
	api contracts.StoreAPI,
	feed contracts.ProductFeed,
	storage Storage,
	recorder *tracking.Recorder,
	s Settings,
	clk clock.Clock,
) *httptransport.Handler {
	business := repo.NewCachedBusiness(api, storage.Cache, s.Redis.TTL())
	promo := domain.Promotion{
		Method: s.Checkout.PromoMethod(),
		Amount: domain.MoneyFromDecimal(s.Checkout.PromoDiscount()),
	}

	// Command use cases (write operations)
	addToCart := add_to_cart.NewInteractor(feed, storage.Carts, recorder, clk)
	updateCartItem := update_cart_item.NewInteractor(storage.Carts)
	removeCartItem := remove_cart_item.NewInteractor(storage.Carts)
	toggleWishlist := toggle_wishlist.NewInteractor(feed, storage.Wishlists, clk)
	placeOrder := place_order.NewInteractor(
		place_order.NewFlowRegistry(),
		storage.Carts,
		business,
		api,
		recorder,
		clk,
		place_order.Config{
			OrderStatusURL: s.Checkout.OrderStatusURL(),
			Promotion:      promo,
		},
	)

	// Query use cases (read operations)
	filterProducts := filter_products.NewQuery(feed, business, clk)
	getProduct := get_product.NewQuery(feed, clk)
	listFacets := list_facets.NewQuery(api, feed, storage.Cache, s.Redis.TTL(), clk)
	getCart := get_cart.NewQuery(storage.Carts, business, promo)
	getWishlist := get_wishlist.NewQuery(storage.Wishlists)
	listEvents := list_events.NewQuery(storage.Events)

	return httptransport.NewHandler(
		feed,
		addToCart,
		updateCartItem,
		removeCartItem,
		toggleWishlist,
		placeOrder,
		filterProducts,
		getProduct,
		listFacets,
		getCart,
		getWishlist,
		listEvents,
	)
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.Feed != nil {
		s.Feed.Close()
	}
	s.Recorder.Wait()
	if s.RedisCache != nil {
		if err := s.RedisCache.Close(); err != nil {
			logger.Warn(context.Background(), "redis close failed", logger.ErrorF(err))
		}
	}
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
}
