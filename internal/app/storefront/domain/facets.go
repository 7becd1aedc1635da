package domain

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"
)

// Default price bounds when no product has a price.
var (
	DefaultPriceMin = Zero
	DefaultPriceMax = NewMoney(10000)
)

// VariantGroup is one attribute of the variant-value catalog.
type VariantGroup struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// FacetCategory is a category with the number of products in it.
type FacetCategory struct {
	ID       string          `json:"_id"`
	Name     string          `json:"name"`
	Products int             `json:"products"`
	Children []FacetCategory `json:"children,omitempty"`
}

// FacetPriceRange is the observed effective price span.
type FacetPriceRange struct {
	Min Money `json:"min"`
	Max Money `json:"max"`
}

// Facets are the aggregated filter options of a product list.
type Facets struct {
	Tags          []string        `json:"tags"`
	Conditions    []string        `json:"conditions"`
	PriceRange    FacetPriceRange `json:"priceRange"`
	VariantValues []VariantGroup  `json:"variantsValues"`
	Categories    []FacetCategory `json:"categories"`
}

// FacetFlags selects which facets the server computes.
type FacetFlags struct {
	Categories    bool
	PriceRange    bool
	VariantValues bool
	Conditions    bool
	Tags          bool
}

// AllFacets requests every facet.
var AllFacets = FacetFlags{Categories: true, PriceRange: true, VariantValues: true, Conditions: true, Tags: true}

// LocalVariantGroup names the single group used when facets are computed
// from products, which carry value labels without attribute names.
const LocalVariantGroup = "Variant"

// ComputeFacets derives facets from products. Categories are counted per
// sub-category id and returned flat, sorted by name.
func ComputeFacets(products []Product, now time.Time) Facets {
	tags := lo.Uniq(lo.FlatMap(products, func(p Product, _ int) []string { return p.Tags }))
	slices.Sort(tags)

	conditions := lo.Uniq(lo.FlatMap(products, func(p Product, _ int) []string { return p.Conditions() }))
	slices.Sort(conditions)

	values := lo.Uniq(lo.FlatMap(products, func(p Product, _ int) []string {
		return lo.FlatMap(p.Variants, func(v Variant, _ int) []string { return v.Values })
	}))
	slices.Sort(values)

	facets := Facets{
		Tags:       tags,
		Conditions: conditions,
		PriceRange: priceSpan(products, now),
		Categories: countCategories(products),
	}
	if len(values) > 0 {
		facets.VariantValues = []VariantGroup{{Name: LocalVariantGroup, Values: values}}
	}
	return facets
}

func priceSpan(products []Product, now time.Time) FacetPriceRange {
	var (
		span FacetPriceRange
		seen bool
	)
	for _, p := range products {
		if len(p.Variants) == 0 {
			continue
		}
		price := p.EffectivePrice(now)
		if !seen || price.LessThan(span.Min) {
			span.Min = price
		}
		if !seen || price.GreaterThan(span.Max) {
			span.Max = price
		}
		seen = true
	}
	if !seen {
		return FacetPriceRange{Min: DefaultPriceMin, Max: DefaultPriceMax}
	}
	return span
}

func countCategories(products []Product) []FacetCategory {
	counts := make(map[string]*FacetCategory)
	for _, p := range products {
		// A product listed twice under one category counts once.
		for _, sc := range lo.UniqBy(p.SubCategories, func(c SubCategory) string { return c.ID }) {
			fc, ok := counts[sc.ID]
			if !ok {
				fc = &FacetCategory{ID: sc.ID, Name: sc.Name}
				counts[sc.ID] = fc
			}
			fc.Products++
		}
	}

	out := make([]FacetCategory, 0, len(counts))
	for _, fc := range counts {
		out = append(out, *fc)
	}
	slices.SortFunc(out, func(a, b FacetCategory) int {
		return cmp.Or(strings.Compare(a.Name, b.Name), strings.Compare(a.ID, b.ID))
	})
	return out
}
