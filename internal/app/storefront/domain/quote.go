package domain

// Promotion is a flat discount granted for one payment method.
type Promotion struct {
	Method string
	Amount Money
}

// DiscountFor returns the promotion amount when method qualifies.
func (p Promotion) DiscountFor(method string) Money {
	if p.Method != "" && method == p.Method {
		return p.Amount
	}
	return Zero
}

// Quote is the price breakdown of a checkout.
type Quote struct {
	Items          []CartItem   `json:"items"`
	Preorder       bool         `json:"preorder"`
	DeliveryArea   DeliveryArea `json:"delivery_area,omitempty"`
	PaymentMethod  string       `json:"payment_method,omitempty"`
	Currency       string       `json:"currency"`
	Subtotal       Money        `json:"subtotal"`
	DeliveryCharge Money        `json:"delivery_charge"`
	Discount       Money        `json:"discount"`
	Total          Money        `json:"total"`
	// RawTotal is subtotal + delivery − discount before clamping at zero.
	RawTotal Money `json:"raw_total"`
}

// NewQuote prices the active lines of cart.
func NewQuote(cart *Cart, b Business, area DeliveryArea, method string, promo Promotion) Quote {
	items, preorder := cart.Active()

	subtotal := Subtotal(items)
	delivery := b.DeliveryCharge(area)
	discount := promo.DiscountFor(method)
	raw := subtotal.Add(delivery).Subtract(discount)

	return Quote{
		Items:          items,
		Preorder:       preorder,
		DeliveryArea:   area,
		PaymentMethod:  method,
		Currency:       b.CurrencyCode(),
		Subtotal:       subtotal,
		DeliveryCharge: delivery,
		Discount:       discount,
		Total:          raw.NonNegative(),
		RawTotal:       raw,
	}
}

// ItemCount is the number of lines.
func (q Quote) ItemCount() int { return len(q.Items) }
