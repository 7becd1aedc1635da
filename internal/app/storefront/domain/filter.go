package domain

import (
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the listing order.
type SortKey string

const (
	SortFeatured  SortKey = "featured"
	SortNewest    SortKey = "newest"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortNameAsc   SortKey = "name-asc"
	SortNameDesc  SortKey = "name-desc"
)

// ParseSortKey maps unknown or empty input to SortFeatured.
func ParseSortKey(s string) SortKey {
	switch k := SortKey(s); k {
	case SortNewest, SortPriceLow, SortPriceHigh, SortNameAsc, SortNameDesc:
		return k
	default:
		return SortFeatured
	}
}

// DefaultPageSize is used when FilterState.PageSize is not positive.
const DefaultPageSize = 12

// PriceRange is an inclusive bound on the effective price. A nil bound is open.
type PriceRange struct {
	Min *Money
	Max *Money
}

// Contains reports whether price lies inside the range.
func (r PriceRange) Contains(price Money) bool {
	if r.Min != nil && price.LessThan(*r.Min) {
		return false
	}
	if r.Max != nil && price.GreaterThan(*r.Max) {
		return false
	}
	return true
}

// FilterState is the user's current listing selection.
type FilterState struct {
	SearchTerm    string
	CategoryIDs   []string
	Sizes         []string
	Conditions    []string
	Tags          []string
	VariantValues map[string][]string
	Price         PriceRange
	Sort          SortKey
	Page          int
	PageSize      int
}

// SearchFields selects the text a search term is matched against.
type SearchFields uint8

const (
	SearchName SearchFields = 1 << iota
	SearchDescriptions
	SearchCategories
	SearchConditions

	// SearchDefault covers name, short and long description.
	SearchDefault = SearchName | SearchDescriptions
	SearchAll     = SearchName | SearchDescriptions | SearchCategories | SearchConditions
)

// Scope is the set of category ids a page lists when the user has not
// picked categories. The zero Scope is unscoped and admits every product.
type Scope struct {
	ids map[string]struct{}
}

// NewScope builds a scope from category ids. Ids compare case-insensitively.
func NewScope(ids ...string) Scope {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[strings.ToLower(id)] = struct{}{}
	}
	return Scope{ids: set}
}

// Unscoped reports whether the scope admits every product.
func (s Scope) Unscoped() bool { return s.ids == nil }

// Has reports whether id belongs to the scope.
func (s Scope) Has(id string) bool {
	if s.ids == nil {
		return true
	}
	_, ok := s.ids[strings.ToLower(id)]
	return ok
}

// IDs returns the scope's ids in no particular order.
func (s Scope) IDs() []string { return lo.Keys(s.ids) }

// PipelineOptions carries the page-dependent pieces of the pipeline.
type PipelineOptions struct {
	Scope  Scope
	Search SearchFields
	Now    time.Time
}

// FilterResult is the pipeline output.
type FilterResult struct {
	Filtered  []Product
	Page      []Product
	PageCount int
}

// FilterProducts filters, sorts and paginates products. It does not modify
// its input and keeps no state, so equal inputs give equal outputs.
//
// Pages are 1-based and not clamped: a page past the end yields an empty
// slice.
func FilterProducts(products []Product, state FilterState, opts PipelineOptions) FilterResult {
	if opts.Search == 0 {
		opts.Search = SearchDefault
	}

	filtered := lo.Filter(products, func(p Product, _ int) bool {
		return matchesCategory(p, state.CategoryIDs, opts.Scope) &&
			matchesSearch(p, state.SearchTerm, opts.Search) &&
			state.Price.Contains(p.EffectivePrice(opts.Now)) &&
			matchesValues(p, state.Sizes) &&
			matchesVariantGroups(p, state.VariantValues) &&
			matchesConditions(p, state.Conditions) &&
			matchesTags(p, state.Tags)
	})

	sortProducts(filtered, state.Sort, opts.Now)

	pageSize := state.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	return FilterResult{
		Filtered:  filtered,
		Page:      paginate(filtered, state.Page, pageSize),
		PageCount: pageCount(len(filtered), pageSize),
	}
}

func pageCount(n, pageSize int) int {
	count := n / pageSize
	if n%pageSize != 0 {
		count++
	}
	return count
}

func matchesCategory(p Product, selected []string, scope Scope) bool {
	if len(selected) > 0 {
		chosen := NewScope(selected...)
		return lo.SomeBy(p.SubCategories, func(c SubCategory) bool { return chosen.Has(c.ID) })
	}
	if scope.Unscoped() {
		return true
	}
	return lo.SomeBy(p.SubCategories, func(c SubCategory) bool { return scope.Has(c.ID) })
}

func matchesSearch(p Product, term string, fields SearchFields) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}

	parts := make([]string, 0, 8)
	if fields&SearchName != 0 {
		parts = append(parts, p.Name)
	}
	if fields&SearchDescriptions != 0 {
		parts = append(parts, p.ShortDescription, p.LongDescription)
	}
	if fields&SearchCategories != 0 {
		for _, c := range p.SubCategories {
			parts = append(parts, c.Name)
		}
	}
	if fields&SearchConditions != 0 {
		parts = append(parts, p.Conditions()...)
	}
	return strings.Contains(strings.ToLower(strings.Join(parts, " ")), term)
}

// matchesValues passes when any variant carries any of the selected labels.
func matchesValues(p Product, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	return lo.SomeBy(p.Variants, func(v Variant) bool {
		return lo.SomeBy(selected, v.HasValue)
	})
}

// matchesVariantGroups requires every non-empty group to be satisfied.
func matchesVariantGroups(p Product, groups map[string][]string) bool {
	for _, values := range groups {
		if !matchesValues(p, values) {
			return false
		}
	}
	return true
}

func matchesConditions(p Product, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	return lo.SomeBy(p.Variants, func(v Variant) bool {
		return v.Condition != "" && lo.SomeBy(selected, func(c string) bool { return strings.EqualFold(c, v.Condition) })
	})
}

func matchesTags(p Product, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	return lo.SomeBy(p.Tags, func(tag string) bool { return lo.Contains(selected, tag) })
}

func sortProducts(products []Product, key SortKey, now time.Time) {
	switch key {
	case SortPriceLow, SortPriceHigh:
		slices.SortStableFunc(products, func(a, b Product) int {
			c := a.EffectivePrice(now).Cmp(b.EffectivePrice(now))
			if key == SortPriceHigh {
				return -c
			}
			return c
		})
	case SortNameAsc, SortNameDesc:
		// Collators are not safe for concurrent use.
		coll := collate.New(language.English, collate.IgnoreCase)
		slices.SortStableFunc(products, func(a, b Product) int {
			c := coll.CompareString(a.Name, b.Name)
			if key == SortNameDesc {
				return -c
			}
			return c
		})
	default:
		// No creation timestamp is modelled; ids descending stand in for
		// recency.
		slices.SortStableFunc(products, func(a, b Product) int {
			return strings.Compare(b.ID, a.ID)
		})
	}
}

func paginate(products []Product, page, pageSize int) []Product {
	// page-1 is compared before multiplying so huge inputs cannot overflow.
	if page < 1 || len(products) == 0 || page-1 > (len(products)-1)/pageSize {
		return []Product{}
	}
	start := (page - 1) * pageSize
	end := start + min(pageSize, len(products)-start)
	return products[start:end]
}
