package domain

import "time"

// ProductSummary is the listing card of a product, priced at one instant.
type ProductSummary struct {
	ID              string        `json:"_id"`
	Name            string        `json:"name"`
	Image           string        `json:"image,omitempty"`
	Price           Money         `json:"price"`
	SellingPrice    Money         `json:"sellingPrice"`
	DiscountActive  bool          `json:"isDiscountActive"`
	DiscountPercent int           `json:"discountPercent,omitempty"`
	InStock         bool          `json:"inStock"`
	PreOrder        bool          `json:"isPreOrder"`
	Categories      []SubCategory `json:"sub_category,omitempty"`
	Tags            []string      `json:"tags,omitempty"`
}

// Summarize prices p through its default variant.
func Summarize(p Product, now time.Time) ProductSummary {
	s := ProductSummary{
		ID:         p.ID,
		Name:       p.Name,
		InStock:    p.InStock(),
		PreOrder:   p.IsPreOrder,
		Categories: p.SubCategories,
		Tags:       p.Tags,
		Price:      Zero,
	}
	v, ok := p.DefaultVariant()
	if !ok {
		if len(p.Images) > 0 {
			s.Image = p.Images[0]
		}
		return s
	}
	s.Image = p.Image(v)
	s.Price = v.EffectivePrice(now)
	s.SellingPrice = v.SellingPrice
	s.DiscountActive = v.DiscountActive(now)
	s.DiscountPercent = v.DiscountPercent(now)
	s.PreOrder = p.PreOrder(v)
	return s
}

// SummarizeAll maps Summarize over products.
func SummarizeAll(products []Product, now time.Time) []ProductSummary {
	out := make([]ProductSummary, 0, len(products))
	for _, p := range products {
		out = append(out, Summarize(p, now))
	}
	return out
}
