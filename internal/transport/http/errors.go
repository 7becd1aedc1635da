package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/light-bringer/storefront-service/internal/app/storefront/domain"
	"github.com/light-bringer/storefront-service/internal/app/storefront/usecases/place_order"
	"github.com/light-bringer/storefront-service/internal/pkg/logger"
)

// errBadRequest marks malformed input that never reached a use case.
var errBadRequest = errors.New("bad request")

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error        string                          `json:"error"`
	Fields       map[domain.CheckoutField]string `json:"fields,omitempty"`
	FirstInvalid domain.CheckoutField            `json:"first_invalid,omitempty"`
	Flow         *place_order.View               `json:"flow,omitempty"`
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity

	case errors.Is(err, errBadRequest),
		errors.Is(err, domain.ErrInvalidPaymentMethod),
		errors.Is(err, domain.ErrUnknownField):
		return http.StatusBadRequest

	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrVariantNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrCartItemNotFound):
		return http.StatusNotFound

	case errors.Is(err, domain.ErrOutOfStock),
		errors.Is(err, domain.ErrPreorderSlotTaken),
		errors.Is(err, domain.ErrCartNotEmpty),
		errors.Is(err, domain.ErrPreorderNotWishlistable),
		errors.Is(err, domain.ErrSubmissionInFlight),
		errors.Is(err, domain.ErrConcurrentModification),
		errors.Is(err, domain.ErrLoadInProgress):
		return http.StatusConflict

	case errors.Is(err, domain.ErrEmptyCart):
		return http.StatusUnprocessableEntity

	case errors.Is(err, domain.ErrOrderRejected),
		errors.Is(err, domain.ErrGatewayUnavailable):
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	writeErrorWithFlow(w, r, err, nil)
}

// writeErrorWithFlow writes err, attaching the checkout flow when given.
// Internal errors are logged and replaced by a generic message.
func writeErrorWithFlow(w http.ResponseWriter, r *http.Request, err error, flow *place_order.View) {
	status := statusFor(err)
	body := errorBody{Error: err.Error(), Flow: flow}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		body.Fields = verr.Fields
		body.FirstInvalid = verr.First
	}
	if status == http.StatusInternalServerError {
		logger.Error(r.Context(), "request failed",
			logger.String("path", r.URL.Path),
			logger.ErrorF(err),
		)
		body.Error = "internal server error"
	}

	respond(w, status, body)
}

func respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
