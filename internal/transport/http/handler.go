package http

import (
	"context"

	"github.com/light-bringer/storefront-service/internal/app/storefront/contracts"
	"github.com/light-bringer/storefront-service/internal/app/storefront/queries/filter_products"
	"github.com/light-bringer/storefront-service/internal/app/storefront/queries/get_cart"
	"github.com/light-bringer/storefront-service/internal/app/storefront/queries/get_product"
	"github.com/light-bringer/storefront-service/internal/app/storefront/queries/get_wishlist"
	"github.com/light-bringer/storefront-service/internal/app/storefront/queries/list_events"
	"github.com/light-bringer/storefront-service/internal/app/storefront/queries/list_facets"
	"github.com/light-bringer/storefront-service/internal/app/storefront/usecases/add_to_cart"
	"github.com/light-bringer/storefront-service/internal/app/storefront/usecases/place_order"
	"github.com/light-bringer/storefront-service/internal/app/storefront/usecases/remove_cart_item"
	"github.com/light-bringer/storefront-service/internal/app/storefront/usecases/toggle_wishlist"
	"github.com/light-bringer/storefront-service/internal/app/storefront/usecases/update_cart_item"
)

// Handler serves the storefront REST API.
// It's a thin coordinator that delegates to use cases and queries.
type Handler struct {
	feed contracts.ProductFeed

	// Commands
	addToCart      *add_to_cart.Interactor
	updateCartItem *update_cart_item.Interactor
	removeCartItem *remove_cart_item.Interactor
	toggleWishlist *toggle_wishlist.Interactor
	placeOrder     *place_order.Interactor

	// Queries
	filterProducts *filter_products.Query
	getProduct     *get_product.Query
	listFacets     *list_facets.Query
	getCart        *get_cart.Query
	getWishlist    *get_wishlist.Query
	listEvents     *list_events.Query

	checks map[string]HealthCheck
}

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

// NewHandler creates a new HTTP storefront handler.
func NewHandler(
	feed contracts.ProductFeed,
	addToCart *add_to_cart.Interactor,
	updateCartItem *update_cart_item.Interactor,
	removeCartItem *remove_cart_item.Interactor,
	toggleWishlist *toggle_wishlist.Interactor,
	placeOrder *place_order.Interactor,
	filterProducts *filter_products.Query,
	getProduct *get_product.Query,
	listFacets *list_facets.Query,
	getCart *get_cart.Query,
	getWishlist *get_wishlist.Query,
	listEvents *list_events.Query,
) *Handler {
	return &Handler{
		feed:           feed,
		addToCart:      addToCart,
		updateCartItem: updateCartItem,
		removeCartItem: removeCartItem,
		toggleWishlist: toggleWishlist,
		placeOrder:     placeOrder,
		filterProducts: filterProducts,
		getProduct:     getProduct,
		listFacets:     listFacets,
		getCart:        getCart,
		getWishlist:    getWishlist,
		listEvents:     listEvents,
		checks:         make(map[string]HealthCheck),
	}
}

// AddHealthCheck registers a dependency probed by GET /healthz.
func (h *Handler) AddHealthCheck(name string, check HealthCheck) {
	h.checks[name] = check
}
