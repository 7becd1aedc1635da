package m_cart_item

// Table name constant
const TableName = "cart_items"

// Field name constants for type-safe database access
const (
	SessionID      = "session_id"
	Slot           = "slot"
	VariantID      = "variant_id"
	ProductID      = "product_id"
	Name           = "name"
	Price          = "price"
	SellingPrice   = "selling_price"
	Image          = "image"
	Quantity       = "quantity"
	MaxStock       = "max_stock"
	Currency       = "currency"
	VariantValues  = "variant_values"
	DiscountActive = "discount_active"
	Position       = "position"
)

// Slot values. A cart holds any number of regular lines and at most one
// preorder line.
const (
	SlotCart     = "cart"
	SlotPreorder = "preorder"
)
