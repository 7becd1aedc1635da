package m_wishlist_item

const TableName = "wishlist_items"

const (
	SessionID      = "session_id"
	VariantID      = "variant_id"
	ProductID      = "product_id"
	Name           = "name"
	Price          = "price"
	SellingPrice   = "selling_price"
	Image          = "image"
	VariantValues  = "variant_values"
	DiscountActive = "discount_active"
	AddedAt        = "added_at"
)
