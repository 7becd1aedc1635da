package m_cart

import "time"

// Data is a row of the carts table. The row only carries the version used
// for optimistic locking; lines live in cart_items.
type Data struct {
	SessionID string    `spanner:"session_id"`
	Version   int64     `spanner:"version"`
	CreatedAt time.Time `spanner:"created_at"`
	UpdatedAt time.Time `spanner:"updated_at"`
}
