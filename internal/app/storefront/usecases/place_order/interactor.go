package place_order

import (
	"context"
	"errors"
	"fmt"

	"github.com/light-bringer/storefront-service/internal/app/storefront/contracts"
	"github.com/light-bringer/storefront-service/internal/app/storefront/domain"
	"github.com/light-bringer/storefront-service/internal/app/storefront/tracking"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
	"github.com/light-bringer/storefront-service/internal/pkg/logger"
)

// Config holds the checkout settings.
type Config struct {
	// OrderStatusURL is where cash-on-delivery orders are sent after
	// creation.
	OrderStatusURL string
	Promotion      domain.Promotion
}

// Request is a submit action. A nil Form submits the form built with Edit.
type Request struct {
	SessionID     string
	Form          *domain.CheckoutForm
	PaymentMethod string
}

// Response describes a successful submission.
type Response struct {
	View           View         `json:"flow"`
	RedirectURL    string       `json:"redirect_url"`
	OrderID        string       `json:"order_id"`
	BackendOrderID string       `json:"backend_order_id"`
	Quote          domain.Quote `json:"quote"`
}

// QuoteRequest prices the session's checkout.
type QuoteRequest struct {
	SessionID     string
	DeliveryArea  domain.DeliveryArea
	PaymentMethod string
}

// userMessage is implemented by API errors that carry a customer-facing
// message.
type userMessage interface {
	UserMessage() string
}

// Interactor drives the checkout flow of every session.
type Interactor struct {
	flows    *FlowRegistry
	carts    contracts.CartRepository
	business contracts.BusinessSource
	orders   contracts.OrderAPI
	recorder *tracking.Recorder
	clock    clock.Clock
	cfg      Config
	log      *logger.Logger
}

// NewInteractor creates a new place order interactor.
func NewInteractor(
	flows *FlowRegistry,
	carts contracts.CartRepository,
	business contracts.BusinessSource,
	orders contracts.OrderAPI,
	recorder *tracking.Recorder,
	clock clock.Clock,
	cfg Config,
) *Interactor {
	return &Interactor{
		flows:    flows,
		carts:    carts,
		business: business,
		orders:   orders,
		recorder: recorder,
		clock:    clock,
		cfg:      cfg,
		log:      logger.With(logger.String("op", "place_order")),
	}
}

// View returns the session's flow state.
func (i *Interactor) View(sessionID string) View {
	return i.flows.Get(sessionID).View()
}

// Edit sets one form field and clears its error.
func (i *Interactor) Edit(sessionID string, field domain.CheckoutField, value string) (View, error) {
	flow := i.flows.Get(sessionID)
	if err := flow.edit(field, value); err != nil {
		return flow.View(), err
	}
	return flow.View(), nil
}

// PaymentMethods lists the payment options of the store.
func (i *Interactor) PaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error) {
	b, err := i.business.Business(ctx)
	if err != nil {
		return nil, fmt.Errorf("load business: %w", err)
	}
	return domain.AvailablePaymentMethods(b), nil
}

// Quote prices what the session would check out and records a
// begin_checkout event when there is something to buy.
func (i *Interactor) Quote(ctx context.Context, req *QuoteRequest) (*domain.Quote, error) {
	cart, err := i.carts.Load(ctx, req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	b, err := i.business.Business(ctx)
	if err != nil {
		return nil, fmt.Errorf("load business: %w", err)
	}

	quote := domain.NewQuote(cart, b, req.DeliveryArea, req.PaymentMethod, i.cfg.Promotion)
	if req.PaymentMethod != "" {
		i.flows.Get(req.SessionID).setMethod(req.PaymentMethod)
	}

	if len(quote.Items) > 0 {
		i.recorder.Record(ctx, &domain.BeginCheckoutEvent{
			SessionID: req.SessionID,
			Items:     domain.TrackedItems(quote.Items),
			Value:     quote.Total,
			Currency:  quote.Currency,
			At:        i.clock.Now(),
		})
	}
	return &quote, nil
}

// Submit validates the form, creates the order once and branches on the
// payment method. A second Submit while one is in flight fails with
// ErrSubmissionInFlight.
func (i *Interactor) Submit(ctx context.Context, req *Request) (*Response, error) {
	flow := i.flows.Get(req.SessionID)
	ctx = logger.WithContext(ctx, logger.String("session_id", req.SessionID))

	form, method, err := flow.begin(req.Form, req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	if err := form.Validate(); err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			flow.invalid(verr)
		} else {
			flow.abort(err.Error())
		}
		return nil, err
	}
	flow.validated()

	cart, err := i.carts.Load(ctx, req.SessionID)
	if err != nil {
		flow.abort(MsgUnexpectedError)
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if cart.IsEmpty() {
		i.log.Warn(ctx, "checkout submitted with an empty cart")
		flow.abort(domain.ErrEmptyCart.Error())
		return nil, domain.ErrEmptyCart
	}

	code, err := domain.BackendPaymentCode(method)
	if err != nil {
		flow.abort(err.Error())
		return nil, err
	}

	b, err := i.business.Business(ctx)
	if err != nil {
		flow.abort(MsgUnexpectedError)
		return nil, fmt.Errorf("load business: %w", err)
	}

	quote := domain.NewQuote(cart, b, form.DeliveryArea, method, i.cfg.Promotion)
	payload := domain.NewOrderPayload(form, quote, code)

	flow.submitting()
	result, err := i.orders.CreateOrder(ctx, payload)
	if err != nil {
		message := MsgUnexpectedError
		var um userMessage
		if errors.As(err, &um) && um.UserMessage() != "" {
			message = um.UserMessage()
		}
		i.log.Error(ctx, "order creation failed", logger.ErrorF(err))
		flow.failed(message)
		return nil, fmt.Errorf("%w: %w", domain.ErrOrderRejected, err)
	}
	if !result.Success {
		message := result.Message
		if message == "" {
			message = MsgOrderFailed
		}
		i.log.Warn(ctx, "order rejected", logger.String("message", result.Message))
		flow.failed(message)
		return nil, fmt.Errorf("%w: %s", domain.ErrOrderRejected, message)
	}

	resp := &Response{
		OrderID:        result.Data.OrderID,
		BackendOrderID: result.Data.ID,
		Quote:          quote,
	}
	ctx = logger.WithContext(ctx,
		logger.String("order_id", resp.OrderID),
		logger.String("backend_order_id", resp.BackendOrderID),
	)

	outcome := OutcomeGateway
	if method == domain.MethodCashOnDelivery {
		outcome = OutcomeCashOnDelivery
		resp.RedirectURL, err = domain.OrderStatusURL(i.cfg.OrderStatusURL, result, form, quote)
		if err != nil {
			// The order exists; fall back to the bare status page.
			i.log.Error(ctx, "failed to build order status url", logger.ErrorF(err))
			resp.RedirectURL = i.cfg.OrderStatusURL
		}
	} else {
		resp.RedirectURL = result.GatewayURL()
		if resp.RedirectURL == "" {
			i.log.Error(ctx, "order created without a gateway url")
			i.recorder.Record(ctx, &domain.GatewayUnavailableEvent{
				SessionID:      req.SessionID,
				OrderID:        resp.OrderID,
				BackendOrderID: resp.BackendOrderID,
				PaymentMethod:  method,
				Value:          quote.Total,
				At:             i.clock.Now(),
			})
			flow.failed(MsgGatewayUnavailable)
			return nil, domain.ErrGatewayUnavailable
		}
	}

	cart.ClearActive()
	if err := i.carts.Save(ctx, cart); err != nil {
		i.log.Error(ctx, "failed to clear cart after order", logger.ErrorF(err))
	}

	i.recorder.Record(ctx, &domain.PurchaseEvent{
		SessionID:      req.SessionID,
		OrderID:        resp.OrderID,
		BackendOrderID: resp.BackendOrderID,
		Items:          domain.TrackedItems(quote.Items),
		Value:          quote.Total,
		DeliveryCharge: quote.DeliveryCharge,
		Discount:       quote.Discount,
		Currency:       quote.Currency,
		PaymentMethod:  method,
		DeliveryArea:   form.DeliveryArea,
		CustomerName:   form.Name,
		CustomerPhone:  form.Phone,
		At:             i.clock.Now(),
	})

	i.log.Info(ctx, "order placed", logger.String("outcome", string(outcome)))
	flow.succeeded(outcome, resp.RedirectURL)
	resp.View = flow.View()
	return resp, nil
}
