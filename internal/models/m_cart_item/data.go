package m_cart_item

import (
	"math/big"

	"cloud.google.com/go/spanner"
)

// Data is a row of the cart_items table, interleaved in carts.
type Data struct {
	SessionID      string             `spanner:"session_id"`
	Slot           string             `spanner:"slot"`
	VariantID      string             `spanner:"variant_id"`
	ProductID      string             `spanner:"product_id"`
	Name           string             `spanner:"name"`
	Price          big.Rat            `spanner:"price"`
	SellingPrice   big.Rat            `spanner:"selling_price"`
	Image          spanner.NullString `spanner:"image"`
	Quantity       int64              `spanner:"quantity"`
	MaxStock       int64              `spanner:"max_stock"`
	Currency       spanner.NullString `spanner:"currency"`
	VariantValues  []string           `spanner:"variant_values"`
	DiscountActive bool               `spanner:"discount_active"`
	Position       int64              `spanner:"position"`
}
