package m_wishlist

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the wishlists table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates the row of a new wishlist.
func (m *Model) InsertMut(sessionID string, version int64) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		[]string{SessionID, Version, CreatedAt, UpdatedAt},
		[]interface{}{sessionID, version, spanner.CommitTimestamp, spanner.CommitTimestamp},
	)
}

// BumpVersionMut sets the version of an existing wishlist.
func (m *Model) BumpVersionMut(sessionID string, version int64) *spanner.Mutation {
	return spanner.Update(
		TableName,
		[]string{SessionID, Version, UpdatedAt},
		[]interface{}{sessionID, version, spanner.CommitTimestamp},
	)
}

// Key is the primary key of a wishlist.
func (m *Model) Key(sessionID string) spanner.Key {
	return spanner.Key{sessionID}
}
