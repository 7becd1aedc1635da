package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/light-bringer/storefront-service/internal/app/storefront/domain"
	"github.com/light-bringer/storefront-service/internal/app/storefront/queries/get_cart"
	"github.com/light-bringer/storefront-service/internal/app/storefront/usecases/add_to_cart"
	"github.com/light-bringer/storefront-service/internal/app/storefront/usecases/remove_cart_item"
	"github.com/light-bringer/storefront-service/internal/app/storefront/usecases/toggle_wishlist"
	"github.com/light-bringer/storefront-service/internal/app/storefront/usecases/update_cart_item"
)

type addCartItemRequest struct {
	ProductID     string   `json:"product_id"`
	VariantID     string   `json:"variant_id"`
	VariantValues []string `json:"variant_values"`
	Quantity      int      `json:"quantity"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type toggleWishlistRequest struct {
	ProductID     string   `json:"product_id"`
	VariantID     string   `json:"variant_id"`
	VariantValues []string `json:"variant_values"`
}

func (h *Handler) cart(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	resp, err := h.getCart.Execute(r.Context(), &get_cart.Request{
		SessionID:     sessionID(r),
		DeliveryArea:  domain.DeliveryArea(q.Get("delivery_area")),
		PaymentMethod: q.Get("payment_method"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, http.StatusOK, resp)
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var body addCartItemRequest
	if err := decodeBody(r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	cart, err := h.addToCart.Execute(r.Context(), &add_to_cart.Request{
		SessionID:     sessionID(r),
		ProductID:     body.ProductID,
		VariantID:     body.VariantID,
		VariantValues: body.VariantValues,
		Quantity:      body.Quantity,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, http.StatusCreated, cart)
}

func (h *Handler) updateCartItemQuantity(w http.ResponseWriter, r *http.Request) {
	var body updateCartItemRequest
	if err := decodeBody(r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	cart, err := h.updateCartItem.Execute(r.Context(), &update_cart_item.Request{
		SessionID: sessionID(r),
		ItemID:    chi.URLParam(r, "id"),
		Quantity:  body.Quantity,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, http.StatusOK, cart)
}

func (h *Handler) deleteCartItem(w http.ResponseWriter, r *http.Request) {
	cart, err := h.removeCartItem.Execute(r.Context(), &remove_cart_item.Request{
		SessionID: sessionID(r),
		ItemID:    chi.URLParam(r, "id"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, http.StatusOK, cart)
}

func (h *Handler) wishlist(w http.ResponseWriter, r *http.Request) {
	resp, err := h.getWishlist.Execute(r.Context(), sessionID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, http.StatusOK, resp)
}

func (h *Handler) toggleWishlistItem(w http.ResponseWriter, r *http.Request) {
	var body toggleWishlistRequest
	if err := decodeBody(r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := h.toggleWishlist.Execute(r.Context(), &toggle_wishlist.Request{
		SessionID:     sessionID(r),
		ProductID:     body.ProductID,
		VariantID:     body.VariantID,
		VariantValues: body.VariantValues,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, http.StatusOK, resp)
}
