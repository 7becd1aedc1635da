package m_cart

// Field name constants for the carts table.
const (
	TableName = "carts"

	SessionID = "session_id"
	Version   = "version"
	CreatedAt = "created_at"
	UpdatedAt = "updated_at"
)
