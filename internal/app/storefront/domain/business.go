package domain

import "slices"

// OfficeDelivery is the courier value meaning the customer collects the
// order, so no delivery is charged.
const OfficeDelivery = "office-delivery"

// DeliveryArea is a delivery zone code.
type DeliveryArea string

const (
	AreaInsideDhaka  DeliveryArea = "inside_dhaka"
	AreaSubDhaka     DeliveryArea = "sub_dhaka"
	AreaOutsideDhaka DeliveryArea = "outside_dhaka"
)

// DeliveryAreas lists the valid zone codes.
var DeliveryAreas = []DeliveryArea{AreaInsideDhaka, AreaSubDhaka, AreaOutsideDhaka}

// Valid reports whether a is a known zone code.
func (a DeliveryArea) Valid() bool {
	return slices.Contains(DeliveryAreas, a)
}

// PaymentMethod is a checkout option shown to the customer.
type PaymentMethod struct {
	Name string `json:"name"`
	Logo string `json:"logo,omitempty"`
}

// OnlineGateway is the online payment configuration of the store.
type OnlineGateway struct {
	AccountID      string          `json:"account_id"`
	Active         bool            `json:"isActive_SSLCommerz"`
	PaymentMethods []PaymentMethod `json:"payment_methods"`
}

// Enabled reports whether online payment can be offered.
func (g *OnlineGateway) Enabled() bool {
	return g != nil && g.AccountID != "" && g.Active
}

// Business is the store configuration served by the store API.
type Business struct {
	ID             string         `json:"_id,omitempty"`
	Name           string         `json:"name,omitempty"`
	InsideDhaka    Money          `json:"insideDhaka"`
	SubDhaka       Money          `json:"subDhaka"`
	OutsideDhaka   Money          `json:"outsideDhaka"`
	DefaultCourier *string        `json:"defaultCourier"`
	Gateway        *OnlineGateway `json:"ssl_commerz,omitempty"`
	Currency       []string       `json:"currency,omitempty"`
	Categories     CategoryTree   `json:"categories,omitempty"`
}

// DeliveryCharge is the fee for area. No courier, or office delivery,
// means no fee; so does an unknown area.
func (b Business) DeliveryCharge(area DeliveryArea) Money {
	if b.DefaultCourier == nil || *b.DefaultCourier == OfficeDelivery {
		return Zero
	}
	switch area {
	case AreaInsideDhaka:
		return b.InsideDhaka
	case AreaSubDhaka:
		return b.SubDhaka
	case AreaOutsideDhaka:
		return b.OutsideDhaka
	default:
		return Zero
	}
}

// CurrencyCode is the first configured currency, BDT when none is set.
func (b Business) CurrencyCode() string {
	if len(b.Currency) > 0 && b.Currency[0] != "" {
		return b.Currency[0]
	}
	return "BDT"
}
