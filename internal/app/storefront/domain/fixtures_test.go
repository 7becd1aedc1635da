package domain

import (
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func ptrTime(t time.Time) *time.Time { return &t }

func ptrMoney(m Money) *Money { return &m }

// variant builds an in-stock variant priced at selling with no discount.
func variant(selling int64, values ...string) Variant {
	return Variant{
		ID:           gofakeit.UUID(),
		SellingPrice: NewMoney(selling),
		Stock:        5,
		Values:       values,
	}
}

// product builds a product with the given id, name and variants.
func product(id, name string, variants ...Variant) Product {
	return Product{
		ID:               id,
		Name:             name,
		ShortDescription: "About " + name,
		Variants:         variants,
	}
}

func ids(products []Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}
