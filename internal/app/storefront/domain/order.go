package domain

import (
	"fmt"
	"net/url"
	"strconv"
)

// OrderLine is one product line of an order.
type OrderLine struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// DiscountTypeFixed marks a flat additional discount.
const DiscountTypeFixed = "fixed"

// OrderPayload is the body of the order creation call.
type OrderPayload struct {
	CustomerName             string       `json:"customer_name"`
	CustomerPhone            string       `json:"customer_phone"`
	CustomerAddress          string       `json:"customer_address"`
	DeliveryArea             DeliveryArea `json:"delivery_area"`
	CustomerNote             string       `json:"customer_note,omitempty"`
	Products                 []OrderLine  `json:"products"`
	AdditionalDiscountType   string       `json:"additional_discount_type,omitempty"`
	AdditionalDiscountAmount string       `json:"additional_discount_amount,omitempty"`
	Due                      string       `json:"due"`
	PaymentMethod            string       `json:"payment_method"`
}

// NewOrderPayload builds the payload for a validated form and a quote.
func NewOrderPayload(form CheckoutForm, quote Quote, paymentCode string) OrderPayload {
	lines := make([]OrderLine, 0, len(quote.Items))
	for _, item := range quote.Items {
		lines = append(lines, OrderLine{ProductID: item.ID, Quantity: item.Quantity})
	}

	payload := OrderPayload{
		CustomerName:    form.Name,
		CustomerPhone:   form.Phone,
		CustomerAddress: form.Address,
		DeliveryArea:    form.DeliveryArea,
		CustomerNote:    form.Note,
		Products:        lines,
		Due:             quote.Total.String(),
		PaymentMethod:   paymentCode,
	}
	if quote.Discount.IsPositive() {
		payload.AdditionalDiscountType = DiscountTypeFixed
		payload.AdditionalDiscountAmount = quote.Discount.String()
	}
	return payload
}

// OrderData is the payload of a successful order creation.
type OrderData struct {
	ID                 string `json:"_id"`
	OrderID            string `json:"orderId"`
	SelectedGatewayURL string `json:"selectedGatewayUrl,omitempty"`
	AllGatewayURL      string `json:"allGatewayUrl,omitempty"`
}

// OrderResult is the order API response.
type OrderResult struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Data    OrderData `json:"data"`
}

// GatewayURL is the selected gateway URL, falling back to the generic one.
func (r OrderResult) GatewayURL() string {
	if r.Data.SelectedGatewayURL != "" {
		return r.Data.SelectedGatewayURL
	}
	return r.Data.AllGatewayURL
}

// OrderStatusURL builds the cash-on-delivery confirmation URL. base may be
// absolute or a path.
func OrderStatusURL(base string, result OrderResult, form CheckoutForm, quote Quote) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid order status url %q: %w", base, err)
	}

	q := u.Query()
	q.Set("status", "success")
	q.Set("orderId", result.Data.OrderID)
	q.Set("_id", result.Data.ID)
	q.Set("customerName", form.Name)
	q.Set("customerPhone", form.Phone)
	q.Set("customerAddress", form.Address)
	q.Set("total", quote.Total.String())
	q.Set("deliveryCharge", quote.DeliveryCharge.String())
	q.Set("itemCount", strconv.Itoa(quote.ItemCount()))
	q.Set("paymentMethod", MethodCashOnDelivery)
	q.Set("additionalDiscount", quote.Discount.String())
	for n, item := range quote.Items {
		idx := strconv.Itoa(n)
		q.Set("itemName"+idx, item.Name)
		q.Set("itemPrice"+idx, item.Price.String())
		q.Set("itemQty"+idx, strconv.Itoa(item.Quantity))
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
