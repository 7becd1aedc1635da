package domain

import "errors"

// Domain errors as sentinel values
var (
	// Catalog errors
	ErrProductNotFound  = errors.New("product not found")
	ErrVariantNotFound  = errors.New("variant not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrLoadInProgress   = errors.New("a catalog page is already loading")

	// Cart errors
	ErrOutOfStock        = errors.New("variant is out of stock")
	ErrCartItemNotFound  = errors.New("cart item not found")
	ErrPreorderSlotTaken = errors.New("a preorder item is already held")
	ErrCartNotEmpty      = errors.New("cart must be empty to place a preorder")

	// Wishlist errors
	ErrPreorderNotWishlistable = errors.New("pre-order items cannot be added to wishlist")

	// Checkout errors
	ErrEmptyCart            = errors.New("your cart is empty")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrSubmissionInFlight   = errors.New("an order submission is already in progress")
	ErrOrderRejected        = errors.New("order creation failed")
	ErrGatewayUnavailable   = errors.New("payment gateway unavailable")
	ErrUnknownField         = errors.New("unknown checkout field")

	// Persistence errors
	ErrConcurrentModification = errors.New("state was modified concurrently")
)
