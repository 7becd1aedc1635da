package place_order

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-service/internal/app/storefront/contracts"
	"github.com/light-bringer/storefront-service/internal/app/storefront/domain"
	"github.com/light-bringer/storefront-service/internal/app/storefront/repo"
	"github.com/light-bringer/storefront-service/internal/app/storefront/tracking"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

type mockOrderAPI struct {
	mock.Mock
}

func (m *mockOrderAPI) CreateOrder(ctx context.Context, payload domain.OrderPayload) (domain.OrderResult, error) {
	args := m.Called(ctx, payload)
	return args.Get(0).(domain.OrderResult), args.Error(1)
}

type mockTracker struct {
	mock.Mock
}

func (m *mockTracker) Track(ctx context.Context, event domain.TrackingEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type staticBusiness struct {
	b domain.Business
}

func (s staticBusiness) Business(context.Context) (domain.Business, error) { return s.b, nil }

type messageErr struct{ msg string }

func (e messageErr) Error() string       { return "api: " + e.msg }
func (e messageErr) UserMessage() string { return e.msg }

func business() domain.Business {
	courier := "pathao"
	return domain.Business{
		InsideDhaka:    domain.NewMoney(60),
		SubDhaka:       domain.NewMoney(100),
		OutsideDhaka:   domain.NewMoney(120),
		DefaultCourier: &courier,
	}
}

func validForm() *domain.CheckoutForm {
	return &domain.CheckoutForm{
		Name:         "Rahim Uddin",
		Phone:        "+880 1712-345678",
		Address:      "House 12, Road 5, Dhanmondi",
		DeliveryArea: domain.AreaInsideDhaka,
	}
}

type deps struct {
	orders  *mockOrderAPI
	tracker *mockTracker
	carts   contracts.CartRepository
}

func newDeps(t *testing.T, fill func(c *domain.Cart)) deps {
	t.Helper()
	carts := repo.NewMemoryCartRepo()
	if fill != nil {
		cart := domain.NewCart("s1")
		fill(cart)
		require.NoError(t, carts.Save(context.Background(), cart))
	}
	return deps{orders: new(mockOrderAPI), tracker: new(mockTracker), carts: carts}
}

func (d deps) interactor() *Interactor {
	return NewInteractor(
		NewFlowRegistry(),
		d.carts,
		staticBusiness{b: business()},
		d.orders,
		tracking.NewRecorder(d.tracker, time.Second, tracking.WithBudget(time.Second)),
		clock.NewMockClock(now),
		Config{
			OrderStatusURL: "/orderstatus",
			Promotion:      domain.Promotion{Method: "bKash", Amount: domain.NewMoney(100)},
		},
	)
}

func twoLines(c *domain.Cart) {
	_ = c.Add(domain.CartItem{ID: "v1", Name: "Shirt", Price: domain.NewMoney(200), Quantity: 2, MaxStock: 5})
	_ = c.Add(domain.CartItem{ID: "v2", Name: "Cap", Price: domain.NewMoney(100), Quantity: 1, MaxStock: 5})
}

func accepted(gateway string) domain.OrderResult {
	return domain.OrderResult{
		Success: true,
		Data:    domain.OrderData{ID: "b-77", OrderID: "ORD-1", SelectedGatewayURL: gateway},
	}
}

func TestInteractor_Submit(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		fill   func(c *domain.Cart)
		req    func() *Request
		setup  func(d deps)
		assert func(t *testing.T, d deps, resp *Response, err error, view View)
	}{
		{
			name: "cash on delivery clears the cart and redirects to order status",
			fill: twoLines,
			req: func() *Request {
				return &Request{SessionID: "s1", Form: validForm(), PaymentMethod: domain.MethodCashOnDelivery}
			},
			setup: func(d deps) {
				d.orders.On("CreateOrder", mock.Anything, mock.MatchedBy(func(p domain.OrderPayload) bool {
					return p.PaymentMethod == domain.CodeCashOnDelivery && p.Due == "560" &&
						p.CustomerPhone == "01712345678" && len(p.Products) == 2 && p.AdditionalDiscountType == ""
				})).Return(accepted(""), nil).Once()
				d.tracker.On("Track", mock.Anything, mock.MatchedBy(func(e *domain.PurchaseEvent) bool {
					return e.BackendOrderID == "b-77" && e.Value.Equals(domain.NewMoney(560))
				})).Return(nil).Once()
			},
			assert: func(t *testing.T, d deps, resp *Response, err error, view View) {
				require.NoError(t, err)
				u, perr := url.Parse(resp.RedirectURL)
				require.NoError(t, perr)
				assert.Equal(t, "/orderstatus", u.Path)
				assert.Equal(t, "ORD-1", u.Query().Get("orderId"))
				assert.Equal(t, "560", u.Query().Get("total"))
				assert.Equal(t, "2", u.Query().Get("itemCount"))
				assert.Equal(t, "Cap", u.Query().Get("itemName1"))

				assert.Equal(t, StateSucceeded, view.State)
				assert.Equal(t, OutcomeCashOnDelivery, view.Outcome)
				assert.False(t, view.Busy)

				cart, lerr := d.carts.Load(context.Background(), "s1")
				require.NoError(t, lerr)
				assert.True(t, cart.IsEmpty())
			},
		},
		{
			name: "promoted method gets the discount and the gateway url",
			fill: twoLines,
			req: func() *Request {
				return &Request{SessionID: "s1", Form: validForm(), PaymentMethod: "bKash"}
			},
			setup: func(d deps) {
				d.orders.On("CreateOrder", mock.Anything, mock.MatchedBy(func(p domain.OrderPayload) bool {
					return p.PaymentMethod == "bKash" && p.Due == "460" &&
						p.AdditionalDiscountType == domain.DiscountTypeFixed && p.AdditionalDiscountAmount == "100"
				})).Return(accepted("https://pay.example/s/abc"), nil).Once()
				d.tracker.On("Track", mock.Anything, mock.AnythingOfType("*domain.PurchaseEvent")).Return(nil).Once()
			},
			assert: func(t *testing.T, d deps, resp *Response, err error, view View) {
				require.NoError(t, err)
				assert.Equal(t, "https://pay.example/s/abc", resp.RedirectURL)
				assert.Equal(t, OutcomeGateway, view.Outcome)
			},
		},
		{
			name: "preorder checkout clears only the preorder slot",
			fill: func(c *domain.Cart) {
				_ = c.AddPreorder(domain.CartItem{ID: "pre", Name: "Drone", Price: domain.NewMoney(900), Quantity: 1})
			},
			req: func() *Request {
				return &Request{SessionID: "s1", Form: validForm(), PaymentMethod: domain.MethodCashOnDelivery}
			},
			setup: func(d deps) {
				d.orders.On("CreateOrder", mock.Anything, mock.MatchedBy(func(p domain.OrderPayload) bool {
					return len(p.Products) == 1 && p.Products[0].ProductID == "pre" && p.Due == "960"
				})).Return(accepted(""), nil).Once()
				d.tracker.On("Track", mock.Anything, mock.Anything).Return(nil).Once()
			},
			assert: func(t *testing.T, d deps, resp *Response, err error, view View) {
				require.NoError(t, err)
				assert.True(t, resp.Quote.Preorder)
				cart, lerr := d.carts.Load(context.Background(), "s1")
				require.NoError(t, lerr)
				assert.Nil(t, cart.Preorder)
			},
		},
		{
			name: "missing gateway url fails and keeps the cart",
			fill: twoLines,
			req: func() *Request {
				return &Request{SessionID: "s1", Form: validForm(), PaymentMethod: domain.MethodPayNow}
			},
			setup: func(d deps) {
				d.orders.On("CreateOrder", mock.Anything, mock.Anything).Return(accepted(""), nil).Once()
				d.tracker.On("Track", mock.Anything, mock.MatchedBy(func(e *domain.GatewayUnavailableEvent) bool {
					return e.BackendOrderID == "b-77" && e.OrderID == "ORD-1"
				})).Return(nil).Once()
			},
			assert: func(t *testing.T, d deps, resp *Response, err error, view View) {
				assert.ErrorIs(t, err, domain.ErrGatewayUnavailable)
				assert.Nil(t, resp)
				assert.Equal(t, StateEditing, view.State)
				assert.Equal(t, OutcomeFailed, view.Outcome)
				assert.Equal(t, MsgGatewayUnavailable, view.Message)

				cart, lerr := d.carts.Load(context.Background(), "s1")
				require.NoError(t, lerr)
				assert.Len(t, cart.Items, 2)
			},
		},
		{
			name: "invalid form reports every field and focuses the first",
			fill: twoLines,
			req: func() *Request {
				return &Request{SessionID: "s1", Form: &domain.CheckoutForm{Name: "Jo", Phone: "017123"}, PaymentMethod: domain.MethodCashOnDelivery}
			},
			assert: func(t *testing.T, d deps, resp *Response, err error, view View) {
				var verr *domain.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, StateEditing, view.State)
				assert.Equal(t, domain.FieldName, view.FirstInvalid)
				assert.Len(t, view.Errors, 4)
				assert.False(t, view.Busy)
			},
		},
		{
			name: "empty cart is blocked",
			req: func() *Request {
				return &Request{SessionID: "s1", Form: validForm(), PaymentMethod: domain.MethodCashOnDelivery}
			},
			assert: func(t *testing.T, d deps, resp *Response, err error, view View) {
				assert.ErrorIs(t, err, domain.ErrEmptyCart)
				assert.Equal(t, StateEditing, view.State)
			},
		},
		{
			name: "missing payment method is blocked",
			fill: twoLines,
			req: func() *Request {
				return &Request{SessionID: "s1", Form: validForm()}
			},
			assert: func(t *testing.T, d deps, resp *Response, err error, view View) {
				assert.ErrorIs(t, err, domain.ErrInvalidPaymentMethod)
			},
		},
		{
			name: "api rejection surfaces its message",
			fill: twoLines,
			req: func() *Request {
				return &Request{SessionID: "s1", Form: validForm(), PaymentMethod: domain.MethodCashOnDelivery}
			},
			setup: func(d deps) {
				d.orders.On("CreateOrder", mock.Anything, mock.Anything).
					Return(domain.OrderResult{Success: false, Message: "Stock changed"}, nil).Once()
			},
			assert: func(t *testing.T, d deps, resp *Response, err error, view View) {
				assert.ErrorIs(t, err, domain.ErrOrderRejected)
				assert.Equal(t, StateEditing, view.State)
				assert.Equal(t, OutcomeFailed, view.Outcome)
				assert.Equal(t, "Stock changed", view.Message)
			},
		},
		{
			name: "transport error uses the api message or the fallback",
			fill: twoLines,
			req: func() *Request {
				return &Request{SessionID: "s1", Form: validForm(), PaymentMethod: domain.MethodCashOnDelivery}
			},
			setup: func(d deps) {
				d.orders.On("CreateOrder", mock.Anything, mock.Anything).
					Return(domain.OrderResult{}, messageErr{msg: "Phone is blocked"}).Once()
			},
			assert: func(t *testing.T, d deps, resp *Response, err error, view View) {
				assert.ErrorIs(t, err, domain.ErrOrderRejected)
				assert.Equal(t, "Phone is blocked", view.Message)
			},
		},
		{
			name: "tracking failure does not fail the order",
			fill: twoLines,
			req: func() *Request {
				return &Request{SessionID: "s1", Form: validForm(), PaymentMethod: domain.MethodCashOnDelivery}
			},
			setup: func(d deps) {
				d.orders.On("CreateOrder", mock.Anything, mock.Anything).Return(accepted(""), nil).Once()
				d.tracker.On("Track", mock.Anything, mock.Anything).Return(errors.New("spanner down")).Once()
			},
			assert: func(t *testing.T, d deps, resp *Response, err error, view View) {
				require.NoError(t, err)
				assert.Equal(t, StateSucceeded, view.State)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDeps(t, tt.fill)
			if tt.setup != nil {
				tt.setup(d)
			}
			uc := d.interactor()

			resp, err := uc.Submit(ctx, tt.req())
			tt.assert(t, d, resp, err, uc.View("s1"))

			d.orders.AssertExpectations(t)
			d.tracker.AssertExpectations(t)
		})
	}
}

func TestInteractor_SubmitInFlight(t *testing.T) {
	ctx := context.Background()
	d := newDeps(t, twoLines)

	release := make(chan struct{})
	entered := make(chan struct{})
	d.orders.On("CreateOrder", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).
		Return(accepted(""), nil).Once()
	d.tracker.On("Track", mock.Anything, mock.Anything).Return(nil)

	uc := d.interactor()
	req := &Request{SessionID: "s1", Form: validForm(), PaymentMethod: domain.MethodCashOnDelivery}

	var wg sync.WaitGroup
	var firstErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, firstErr = uc.Submit(ctx, req)
	}()

	<-entered
	assert.True(t, uc.View("s1").Busy)
	assert.Equal(t, StateSubmitting, uc.View("s1").State)

	_, err := uc.Submit(ctx, req)
	assert.ErrorIs(t, err, domain.ErrSubmissionInFlight)

	close(release)
	wg.Wait()
	require.NoError(t, firstErr)
	d.orders.AssertNumberOfCalls(t, "CreateOrder", 1)
}

func TestInteractor_RetryAfterFailure(t *testing.T) {
	ctx := context.Background()
	d := newDeps(t, twoLines)
	d.orders.On("CreateOrder", mock.Anything, mock.Anything).
		Return(domain.OrderResult{Success: false, Message: "Stock changed"}, nil).Once()
	d.orders.On("CreateOrder", mock.Anything, mock.Anything).Return(accepted(""), nil).Once()
	d.tracker.On("Track", mock.Anything, mock.Anything).Return(nil)

	uc := d.interactor()
	req := &Request{SessionID: "s1", Form: validForm(), PaymentMethod: domain.MethodCashOnDelivery}

	_, err := uc.Submit(ctx, req)
	require.ErrorIs(t, err, domain.ErrOrderRejected)
	view := uc.View("s1")
	assert.Equal(t, StateEditing, view.State)
	assert.Equal(t, OutcomeFailed, view.Outcome)
	assert.Equal(t, "Stock changed", view.Message)

	resp, err := uc.Submit(ctx, &Request{SessionID: "s1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.RedirectURL)

	view = uc.View("s1")
	assert.Equal(t, StateSucceeded, view.State)
	assert.Equal(t, OutcomeCashOnDelivery, view.Outcome)
	assert.Empty(t, view.Message)
	d.orders.AssertNumberOfCalls(t, "CreateOrder", 2)
}

func TestInteractor_Edit(t *testing.T) {
	d := newDeps(t, twoLines)
	uc := d.interactor()

	_, err := uc.Submit(context.Background(), &Request{SessionID: "s1", Form: &domain.CheckoutForm{}, PaymentMethod: domain.MethodCashOnDelivery})
	require.Error(t, err)
	require.Contains(t, uc.View("s1").Errors, domain.FieldName)

	view, err := uc.Edit("s1", domain.FieldName, "Rahim")
	require.NoError(t, err)
	assert.NotContains(t, view.Errors, domain.FieldName)
	assert.Contains(t, view.Errors, domain.FieldPhone)
	assert.Equal(t, "Rahim", view.Form.Name)

	view, err = uc.Edit("s1", domain.FieldPhone, "880-1712-345678")
	require.NoError(t, err)
	assert.Equal(t, "01712345678", view.Form.Phone)

	_, err = uc.Edit("s1", "email", "x@example.com")
	assert.ErrorIs(t, err, domain.ErrUnknownField)
}

func TestInteractor_Quote(t *testing.T) {
	ctx := context.Background()

	t.Run("records begin_checkout for a non-empty cart", func(t *testing.T) {
		d := newDeps(t, twoLines)
		d.tracker.On("Track", mock.Anything, mock.MatchedBy(func(e *domain.BeginCheckoutEvent) bool {
			return len(e.Items) == 2 && e.Value.Equals(domain.NewMoney(620)) && e.Currency == "BDT"
		})).Return(nil).Once()

		q, err := d.interactor().Quote(ctx, &QuoteRequest{SessionID: "s1", DeliveryArea: domain.AreaOutsideDhaka})
		require.NoError(t, err)
		assert.Equal(t, "120", q.DeliveryCharge.String())
		assert.Equal(t, "620", q.Total.String())
		d.tracker.AssertExpectations(t)
	})

	t.Run("empty cart is priced without tracking", func(t *testing.T) {
		d := newDeps(t, nil)

		q, err := d.interactor().Quote(ctx, &QuoteRequest{SessionID: "s1"})
		require.NoError(t, err)
		assert.True(t, q.Total.IsZero())
		d.tracker.AssertNotCalled(t, "Track", mock.Anything, mock.Anything)
	})
}

func TestInteractor_PaymentMethods(t *testing.T) {
	d := newDeps(t, nil)
	methods, err := d.interactor().PaymentMethods(context.Background())
	require.NoError(t, err)
	require.Len(t, methods, 1)
	assert.Equal(t, domain.MethodCashOnDelivery, methods[0].Name)
}

func TestFlowRegistry(t *testing.T) {
	r := NewFlowRegistry()
	a := r.Get("s1")
	assert.Same(t, a, r.Get("s1"))
	assert.NotSame(t, a, r.Get("s2"))

	r.Drop("s1")
	assert.NotSame(t, a, r.Get("s1"))
	assert.Equal(t, StateEditing, r.Get("s1").View().State)
}
