package http

import (
	"net/http"

	"github.com/light-bringer/storefront-service/internal/app/storefront/domain"
	"github.com/light-bringer/storefront-service/internal/app/storefront/usecases/place_order"
)

type editFieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type submitOrderRequest struct {
	Form          *domain.CheckoutForm `json:"form,omitempty"`
	PaymentMethod string               `json:"payment_method"`
}

func (h *Handler) checkoutView(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, h.placeOrder.View(sessionID(r)))
}

func (h *Handler) editCheckoutField(w http.ResponseWriter, r *http.Request) {
	var body editFieldRequest
	if err := decodeBody(r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	view, err := h.placeOrder.Edit(sessionID(r), domain.CheckoutField(body.Field), body.Value)
	if err != nil {
		writeErrorWithFlow(w, r, err, &view)
		return
	}
	respond(w, http.StatusOK, view)
}

func (h *Handler) checkoutQuote(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	quote, err := h.placeOrder.Quote(r.Context(), &place_order.QuoteRequest{
		SessionID:     sessionID(r),
		DeliveryArea:  domain.DeliveryArea(q.Get("delivery_area")),
		PaymentMethod: q.Get("payment_method"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, http.StatusOK, quote)
}

func (h *Handler) paymentMethods(w http.ResponseWriter, r *http.Request) {
	methods, err := h.placeOrder.PaymentMethods(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"payment_methods": methods})
}

func (h *Handler) submitOrder(w http.ResponseWriter, r *http.Request) {
	var body submitOrderRequest
	if err := decodeBody(r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	sid := sessionID(r)
	resp, err := h.placeOrder.Submit(r.Context(), &place_order.Request{
		SessionID:     sid,
		Form:          body.Form,
		PaymentMethod: body.PaymentMethod,
	})
	if err != nil {
		view := h.placeOrder.View(sid)
		writeErrorWithFlow(w, r, err, &view)
		return
	}
	respond(w, http.StatusCreated, resp)
}
