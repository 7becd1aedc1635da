package m_wishlist_item

import (
	"math/big"
	"time"

	"cloud.google.com/go/spanner"
)

// Data is a row of the wishlist_items table, interleaved in wishlists.
type Data struct {
	SessionID      string             `spanner:"session_id"`
	VariantID      string             `spanner:"variant_id"`
	ProductID      string             `spanner:"product_id"`
	Name           string             `spanner:"name"`
	Price          big.Rat            `spanner:"price"`
	SellingPrice   big.Rat            `spanner:"selling_price"`
	Image          spanner.NullString `spanner:"image"`
	VariantValues  []string           `spanner:"variant_values"`
	DiscountActive bool               `spanner:"discount_active"`
	AddedAt        time.Time          `spanner:"added_at"`
}

type Model struct{}

func NewModel() *Model {
	return &Model{}
}

func (m *Model) InsertMut(data *Data) (*spanner.Mutation, error) {
	return spanner.InsertStruct(TableName, data)
}

// DeleteAllMut removes every item of a wishlist.
func (m *Model) DeleteAllMut(sessionID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{sessionID}.AsPrefix())
}

func (m *Model) ReadColumns() []string {
	return []string{
		SessionID,
		VariantID,
		ProductID,
		Name,
		Price,
		SellingPrice,
		Image,
		VariantValues,
		DiscountActive,
		AddedAt,
	}
}
