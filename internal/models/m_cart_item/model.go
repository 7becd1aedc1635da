package m_cart_item

import (
	"cloud.google.com/go/spanner"
)

// Model provides type-safe database operations for cart lines.
type Model struct{}

// NewModel creates a new cart item model.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a mutation for inserting a cart line.
func (m *Model) InsertMut(data *Data) (*spanner.Mutation, error) {
	return spanner.InsertStruct(TableName, data)
}

// DeleteAllMut removes every line of a cart.
func (m *Model) DeleteAllMut(sessionID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{sessionID}.AsPrefix())
}

// ReadColumns returns the column names for reading cart lines.
func (m *Model) ReadColumns() []string {
	return []string{
		SessionID,
		Slot,
		VariantID,
		ProductID,
		Name,
		Price,
		SellingPrice,
		Image,
		Quantity,
		MaxStock,
		Currency,
		VariantValues,
		DiscountActive,
		Position,
	}
}
