package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/light-bringer/storefront-service/internal/pkg/logger"
)

const healthTimeout = 2 * time.Second

// Routes builds the chi router of the storefront API.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		requestLogger,
		middleware.Recoverer,
	)

	r.Get("/healthz", h.health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(session)

		r.Get("/products", h.listProducts)
		r.Get("/products/{id}", h.productDetail)
		r.Get("/categories/{id}/products", h.categoryProducts)
		r.Get("/maincategories/{id}/products", h.mainCategoryProducts)
		r.Get("/facets", h.facets)
		r.Post("/catalog/refresh", h.refreshCatalog)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.cart)
			r.Post("/items", h.addCartItem)
			r.Patch("/items/{id}", h.updateCartItemQuantity)
			r.Delete("/items/{id}", h.deleteCartItem)
		})

		r.Get("/wishlist", h.wishlist)
		r.Post("/wishlist/toggle", h.toggleWishlistItem)

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/", h.checkoutView)
			r.Patch("/form", h.editCheckoutField)
			r.Get("/quote", h.checkoutQuote)
			r.Get("/payment-methods", h.paymentMethods)
			r.Post("/", h.submitOrder)
		})

		r.Get("/events", h.events)
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	status, code := "ok", http.StatusOK
	deps := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			logger.Warn(ctx, "health check failed", logger.String("dependency", name), logger.ErrorF(err))
			deps[name] = err.Error()
			status, code = "degraded", http.StatusServiceUnavailable
			continue
		}
		deps[name] = "ok"
	}
	respond(w, code, map[string]any{"status": status, "dependencies": deps})
}
