package m_wishlist

// Field name constants for the wishlists table.
const (
	TableName = "wishlists"

	SessionID = "session_id"
	Version   = "version"
	CreatedAt = "created_at"
	UpdatedAt = "updated_at"
)
