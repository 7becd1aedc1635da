package domain

import "time"

// TrackingEvent is an analytics event recorded in the outbox.
type TrackingEvent interface {
	EventType() string
	AggregateID() string
}

// Event type names.
const (
	EventAddToCart          = "add_to_cart"
	EventBeginCheckout      = "begin_checkout"
	EventPurchase           = "purchase"
	EventGatewayUnavailable = "order.gateway_unavailable"
)

// TrackedItem is the analytics view of a cart line.
type TrackedItem struct {
	ID       string `json:"item_id"`
	Name     string `json:"item_name"`
	Price    Money  `json:"price"`
	Quantity int    `json:"quantity"`
}

// TrackedItems converts cart lines.
func TrackedItems(items []CartItem) []TrackedItem {
	out := make([]TrackedItem, 0, len(items))
	for _, item := range items {
		out = append(out, TrackedItem{ID: item.ID, Name: item.Name, Price: item.Price, Quantity: item.Quantity})
	}
	return out
}

// AddToCartEvent is recorded when a line is added to the cart or the
// preorder slot.
type AddToCartEvent struct {
	SessionID string    `json:"session_id"`
	ProductID string    `json:"product_id"`
	VariantID string    `json:"variant_id"`
	Quantity  int       `json:"quantity"`
	Price     Money     `json:"price"`
	PreOrder  bool      `json:"preorder"`
	At        time.Time `json:"at"`
}

func (e *AddToCartEvent) EventType() string   { return EventAddToCart }
func (e *AddToCartEvent) AggregateID() string { return e.SessionID }

// BeginCheckoutEvent is recorded when a session prices its checkout.
type BeginCheckoutEvent struct {
	SessionID string        `json:"session_id"`
	Items     []TrackedItem `json:"items"`
	Value     Money         `json:"value"`
	Currency  string        `json:"currency"`
	At        time.Time     `json:"at"`
}

func (e *BeginCheckoutEvent) EventType() string   { return EventBeginCheckout }
func (e *BeginCheckoutEvent) AggregateID() string { return e.SessionID }

// PurchaseEvent is recorded after the order API accepted an order.
type PurchaseEvent struct {
	SessionID      string        `json:"session_id"`
	OrderID        string        `json:"order_id"`
	BackendOrderID string        `json:"backend_order_id"`
	Items          []TrackedItem `json:"items"`
	Value          Money         `json:"value"`
	DeliveryCharge Money         `json:"delivery_charge"`
	Discount       Money         `json:"discount"`
	Currency       string        `json:"currency"`
	PaymentMethod  string        `json:"payment_method"`
	DeliveryArea   DeliveryArea  `json:"delivery_area"`
	CustomerName   string        `json:"customer_name"`
	CustomerPhone  string        `json:"customer_phone"`
	At             time.Time     `json:"at"`
}

func (e *PurchaseEvent) EventType() string   { return EventPurchase }
func (e *PurchaseEvent) AggregateID() string { return e.BackendOrderID }

// GatewayUnavailableEvent is recorded when an online-payment order was
// created but no gateway URL came back. The order may need manual
// reconciliation.
type GatewayUnavailableEvent struct {
	SessionID      string    `json:"session_id"`
	OrderID        string    `json:"order_id"`
	BackendOrderID string    `json:"backend_order_id"`
	PaymentMethod  string    `json:"payment_method"`
	Value          Money     `json:"value"`
	At             time.Time `json:"at"`
}

func (e *GatewayUnavailableEvent) EventType() string   { return EventGatewayUnavailable }
func (e *GatewayUnavailableEvent) AggregateID() string { return e.BackendOrderID }
