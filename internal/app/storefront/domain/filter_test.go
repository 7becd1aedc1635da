package domain

import (
	"fmt"
	"math"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogFixture() []Product {
	shirt := product("a1", "Linen Shirt", variant(1200, "M", "White"), variant(1200, "L", "White"))
	shirt.SubCategories = []SubCategory{{ID: "shirts", Name: "Shirts"}}
	shirt.Tags = []string{"summer"}
	shirt.Variants[0].Condition = "new"

	jeans := product("b2", "denim jeans", variant(2500, "32"), variant(2600, "34"))
	jeans.SubCategories = []SubCategory{{ID: "pants", Name: "Pants"}}
	jeans.Tags = []string{"winter", "denim"}
	jeans.Variants[1].Condition = "used"

	phone := product("c3", "Phone Case", variant(300, "Black"))
	phone.SubCategories = []SubCategory{{ID: "ACCESSORIES", Name: "Accessories"}}

	bare := product("d4", "Gift Card")

	return []Product{shirt, jeans, phone, bare}
}

func TestFilterProducts_EmptyStateIsIdentity(t *testing.T) {
	products := catalogFixture()

	res := FilterProducts(products, FilterState{Page: 1, PageSize: 10}, PipelineOptions{Now: testNow})

	assert.Len(t, res.Filtered, len(products))
	// featured sorts by id descending
	assert.Equal(t, []string{"d4", "c3", "b2", "a1"}, ids(res.Filtered))
	assert.Equal(t, 1, res.PageCount)
}

func TestFilterProducts_Predicates(t *testing.T) {
	products := catalogFixture()
	opts := PipelineOptions{Now: testNow}

	tests := []struct {
		name  string
		state FilterState
		opts  *PipelineOptions
		want  []string
	}{
		{"category selection", FilterState{CategoryIDs: []string{"shirts", "accessories"}}, nil, []string{"c3", "a1"}},
		{"search is case insensitive on name", FilterState{SearchTerm: "  DENIM "}, nil, []string{"b2"}},
		{"search ignores category names by default", FilterState{SearchTerm: "pants"}, nil, []string{}},
		{"search includes category names when asked", FilterState{SearchTerm: "pants"}, &PipelineOptions{Now: testNow, Search: SearchAll}, []string{"b2"}},
		{"search includes conditions when asked", FilterState{SearchTerm: "used"}, &PipelineOptions{Now: testNow, Search: SearchName | SearchConditions}, []string{"b2"}},
		{"size matches any variant ignoring case", FilterState{Sizes: []string{"l", "34"}}, nil, []string{"b2", "a1"}},
		{"variant groups are ANDed", FilterState{VariantValues: map[string][]string{"Size": {"M"}, "Color": {"white"}}}, nil, []string{"a1"}},
		{"variant group without match excludes", FilterState{VariantValues: map[string][]string{"Size": {"M"}, "Color": {"black"}}}, nil, []string{}},
		{"condition", FilterState{Conditions: []string{"used"}}, nil, []string{"b2"}},
		{"tags", FilterState{Tags: []string{"denim", "summer"}}, nil, []string{"b2", "a1"}},
		{"fields are ANDed", FilterState{Tags: []string{"denim", "summer"}, Conditions: []string{"new"}}, nil, []string{"a1"}},
		{"price range", FilterState{Price: PriceRange{Min: ptrMoney(NewMoney(1000)), Max: ptrMoney(NewMoney(2000))}}, nil, []string{"a1"}},
		{"max only keeps priceless products", FilterState{Price: PriceRange{Max: ptrMoney(NewMoney(500))}}, nil, []string{"d4", "c3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := opts
			if tt.opts != nil {
				o = *tt.opts
			}
			tt.state.Page, tt.state.PageSize = 1, 50
			res := FilterProducts(products, tt.state, o)
			assert.Equal(t, tt.want, ids(res.Filtered))
		})
	}
}

func TestFilterProducts_DefaultScope(t *testing.T) {
	products := catalogFixture()

	t.Run("scope limits unselected listing", func(t *testing.T) {
		res := FilterProducts(products, FilterState{Page: 1}, PipelineOptions{Now: testNow, Scope: NewScope("Accessories", "shirts")})
		assert.Equal(t, []string{"c3", "a1"}, ids(res.Filtered))
	})

	t.Run("explicit selection overrides scope", func(t *testing.T) {
		res := FilterProducts(products, FilterState{Page: 1, CategoryIDs: []string{"pants"}}, PipelineOptions{Now: testNow, Scope: NewScope("shirts")})
		assert.Equal(t, []string{"b2"}, ids(res.Filtered))
	})

	t.Run("empty scope admits nothing", func(t *testing.T) {
		res := FilterProducts(products, FilterState{Page: 1}, PipelineOptions{Now: testNow, Scope: NewScope()})
		assert.Empty(t, res.Filtered)
	})
}

func TestFilterProducts_PriceBoundaryIsInclusive(t *testing.T) {
	p := product("p1", "Exact", variant(1000))
	cents, err := ParseMoney("999.99")
	require.NoError(t, err)

	res := FilterProducts([]Product{p}, FilterState{Page: 1, Price: PriceRange{Max: ptrMoney(NewMoney(1000))}}, PipelineOptions{Now: testNow})
	assert.Len(t, res.Filtered, 1)

	res = FilterProducts([]Product{p}, FilterState{Page: 1, Price: PriceRange{Max: &cents}}, PipelineOptions{Now: testNow})
	assert.Empty(t, res.Filtered)
}

func TestFilterProducts_Sorting(t *testing.T) {
	products := catalogFixture()

	tests := []struct {
		key  SortKey
		want []string
	}{
		{SortPriceLow, []string{"d4", "c3", "a1", "b2"}},
		{SortPriceHigh, []string{"b2", "a1", "c3", "d4"}},
		{SortNameAsc, []string{"b2", "d4", "a1", "c3"}},
		{SortNameDesc, []string{"c3", "a1", "d4", "b2"}},
		{SortNewest, []string{"d4", "c3", "b2", "a1"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			res := FilterProducts(products, FilterState{Sort: tt.key, Page: 1}, PipelineOptions{Now: testNow})
			assert.Equal(t, tt.want, ids(res.Filtered))
		})
	}
}

func TestFilterProducts_SortIsStable(t *testing.T) {
	products := []Product{
		product("1", "Same"),
		product("2", "same"),
		product("3", "Other"),
		product("4", "Same"),
	}

	asc := FilterProducts(products, FilterState{Sort: SortNameAsc, Page: 1}, PipelineOptions{Now: testNow})
	assert.Equal(t, []string{"3", "1", "2", "4"}, ids(asc.Filtered))

	desc := FilterProducts(asc.Filtered, FilterState{Sort: SortNameDesc, Page: 1}, PipelineOptions{Now: testNow})
	assert.Equal(t, []string{"1", "2", "4", "3"}, ids(desc.Filtered))
}

func TestFilterProducts_Pagination(t *testing.T) {
	products := make([]Product, 0, 23)
	for i := 0; i < 23; i++ {
		products = append(products, product(fmt.Sprintf("p%02d", i), gofakeit.ProductName(), variant(int64(gofakeit.IntRange(1, 5000)))))
	}

	t.Run("pages cover filtered exactly once", func(t *testing.T) {
		first := FilterProducts(products, FilterState{Page: 1, PageSize: 5}, PipelineOptions{Now: testNow})
		require.Equal(t, 5, first.PageCount)

		var joined []Product
		for page := 1; page <= first.PageCount; page++ {
			res := FilterProducts(products, FilterState{Page: page, PageSize: 5}, PipelineOptions{Now: testNow})
			joined = append(joined, res.Page...)
		}
		assert.Equal(t, ids(first.Filtered), ids(joined))
	})

	t.Run("out of range pages are empty", func(t *testing.T) {
		for _, page := range []int{0, -1, 6, 100} {
			res := FilterProducts(products, FilterState{Page: page, PageSize: 5}, PipelineOptions{Now: testNow})
			assert.Empty(t, res.Page, "page %d", page)
			assert.Len(t, res.Filtered, 23)
		}
	})

	t.Run("empty input has zero pages", func(t *testing.T) {
		res := FilterProducts(nil, FilterState{Page: 1}, PipelineOptions{Now: testNow})
		assert.Equal(t, 0, res.PageCount)
		assert.Empty(t, res.Page)
	})

	t.Run("huge page numbers and sizes do not overflow", func(t *testing.T) {
		res := FilterProducts(products[:2], FilterState{Page: 3, PageSize: math.MaxInt}, PipelineOptions{Now: testNow})
		assert.Empty(t, res.Page)
		assert.Equal(t, 1, res.PageCount)

		res = FilterProducts(products[:2], FilterState{Page: 1, PageSize: math.MaxInt}, PipelineOptions{Now: testNow})
		assert.Len(t, res.Page, 2)
		assert.Equal(t, 1, res.PageCount)

		res = FilterProducts(products[:2], FilterState{Page: math.MaxInt/4 + 2, PageSize: 8}, PipelineOptions{Now: testNow})
		assert.Empty(t, res.Page)

		res = FilterProducts(products, FilterState{Page: math.MaxInt, PageSize: math.MaxInt}, PipelineOptions{Now: testNow})
		assert.Empty(t, res.Page)
		assert.GreaterOrEqual(t, res.PageCount, 0)
	})

	t.Run("non-positive page size uses default", func(t *testing.T) {
		res := FilterProducts(products, FilterState{Page: 1}, PipelineOptions{Now: testNow})
		assert.Len(t, res.Page, DefaultPageSize)
	})
}

func TestFilterProducts_PureAndMonotone(t *testing.T) {
	products := catalogFixture()
	original := ids(products)
	state := FilterState{SearchTerm: "e", Sort: SortPriceHigh, Page: 1, PageSize: 2}

	first := FilterProducts(products, state, PipelineOptions{Now: testNow})
	second := FilterProducts(products, state, PipelineOptions{Now: testNow})

	assert.Equal(t, first, second)
	assert.LessOrEqual(t, len(first.Filtered), len(products))
	assert.Equal(t, original, ids(products), "input order must not change")
}

func TestParseSortKey(t *testing.T) {
	assert.Equal(t, SortPriceLow, ParseSortKey("price-low"))
	assert.Equal(t, SortFeatured, ParseSortKey(""))
	assert.Equal(t, SortFeatured, ParseSortKey("random"))
}
