package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// SubCategory is a category reference carried on a product.
type SubCategory struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// Variant is one purchasable option of a product.
type Variant struct {
	ID            string     `json:"_id"`
	SellingPrice  Money      `json:"selling_price"`
	OfferPrice    Money      `json:"offer_price"`
	DiscountStart *time.Time `json:"discount_start_date,omitempty"`
	DiscountEnd   *time.Time `json:"discount_end_date,omitempty"`
	Stock         int        `json:"variants_stock"`
	Values        []string   `json:"variants_values"`
	Condition     string     `json:"condition,omitempty"`
	IsPreOrder    bool       `json:"isPreOrder"`
	Image         string     `json:"image,omitempty"`
}

// Product is a catalog entry as served by the store API. Every field except
// ID may be absent upstream.
type Product struct {
	ID               string        `json:"_id"`
	Name             string        `json:"name"`
	ShortDescription string        `json:"short_description"`
	LongDescription  string        `json:"long_description"`
	SubCategories    []SubCategory `json:"sub_category"`
	Tags             []string      `json:"tags"`
	Variants         []Variant     `json:"variantsId"`
	Images           []string      `json:"images,omitempty"`
	IsPreOrder       bool          `json:"isPreOrder"`
	Currency         string        `json:"currency,omitempty"`
	TotalStock       int           `json:"total_stock"`
}

// UnmarshalJSON tolerates empty-string and null discount dates.
func (v *Variant) UnmarshalJSON(data []byte) error {
	type plain Variant
	var raw struct {
		plain
		DiscountStart json.RawMessage `json:"discount_start_date"`
		DiscountEnd   json.RawMessage `json:"discount_end_date"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	start, err := parseOptionalTime(raw.DiscountStart)
	if err != nil {
		return fmt.Errorf("variant %s discount_start_date: %w", raw.ID, err)
	}
	end, err := parseOptionalTime(raw.DiscountEnd)
	if err != nil {
		return fmt.Errorf("variant %s discount_end_date: %w", raw.ID, err)
	}

	*v = Variant(raw.plain)
	v.DiscountStart = start
	v.DiscountEnd = end
	return nil
}

func parseOptionalTime(raw json.RawMessage) (*time.Time, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// InStock reports whether the variant has stock left.
func (v Variant) InStock() bool { return v.Stock > 0 }

// Label joins the value labels, e.g. "XL / Red".
func (v Variant) Label() string { return strings.Join(v.Values, " / ") }

// HasValue reports whether any value label equals value, ignoring case.
func (v Variant) HasValue(value string) bool {
	for _, candidate := range v.Values {
		if strings.EqualFold(candidate, value) {
			return true
		}
	}
	return false
}

// DefaultVariant is the first in-stock variant, else the first variant.
// ok is false for a product without variants.
func (p Product) DefaultVariant() (Variant, bool) {
	if len(p.Variants) == 0 {
		return Variant{}, false
	}
	for _, v := range p.Variants {
		if v.InStock() {
			return v, true
		}
	}
	return p.Variants[0], true
}

// FindVariant looks a variant up by id.
func (p Product) FindVariant(id string) (Variant, bool) {
	for _, v := range p.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}

// VariantByValues finds the variant whose value labels equal values as a
// set, ignoring case and order.
func (p Product) VariantByValues(values []string) (Variant, error) {
	want := make(map[string]struct{}, len(values))
	for _, v := range values {
		want[strings.ToLower(strings.TrimSpace(v))] = struct{}{}
	}

	for _, variant := range p.Variants {
		have := make(map[string]struct{}, len(variant.Values))
		for _, v := range variant.Values {
			have[strings.ToLower(strings.TrimSpace(v))] = struct{}{}
		}
		if len(have) != len(want) {
			continue
		}
		match := true
		for k := range want {
			if _, ok := have[k]; !ok {
				match = false
				break
			}
		}
		if match {
			return variant, nil
		}
	}
	return Variant{}, ErrVariantNotFound
}

// InStock reports whether any variant has stock.
func (p Product) InStock() bool {
	for _, v := range p.Variants {
		if v.InStock() {
			return true
		}
	}
	return false
}

// PreOrder reports whether the variant is sold as a preorder.
func (p Product) PreOrder(v Variant) bool {
	return p.IsPreOrder || v.IsPreOrder
}

// Image returns the variant image, falling back to the first product image.
func (p Product) Image(v Variant) string {
	if v.Image != "" {
		return v.Image
	}
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return ""
}

// Conditions lists the non-empty variant conditions in variant order.
func (p Product) Conditions() []string {
	out := make([]string, 0, len(p.Variants))
	for _, v := range p.Variants {
		if v.Condition != "" {
			out = append(out, v.Condition)
		}
	}
	return out
}
