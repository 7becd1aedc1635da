package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/light-bringer/storefront-service/internal/app/storefront/domain"
)

const (
	variantParamPrefix = "variant."
	maxBodyBytes       = 1 << 20
	maxPageSize        = 100
)

// multi returns every value of key, splitting comma-separated lists.
func multi(q url.Values, key string) []string {
	values := lo.FlatMap(q[key], func(v string, _ int) []string { return strings.Split(v, ",") })
	values = lo.Map(values, func(v string, _ int) string { return strings.TrimSpace(v) })
	return lo.Compact(values)
}

func intParam(q url.Values, key string) (int, error) {
	raw := q.Get(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", errBadRequest, key)
	}
	return n, nil
}

func moneyParam(q url.Values, key string) (*domain.Money, error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	m, err := domain.ParseMoney(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errBadRequest, key, err)
	}
	return &m, nil
}

// filterState reads the listing selection from the query string.
func filterState(q url.Values) (domain.FilterState, error) {
	state := domain.FilterState{
		SearchTerm:  strings.TrimSpace(q.Get("q")),
		CategoryIDs: multi(q, "category"),
		Sizes:       multi(q, "size"),
		Conditions:  multi(q, "condition"),
		Tags:        multi(q, "tag"),
		Sort:        domain.ParseSortKey(q.Get("sort")),
	}

	for key := range q {
		name, ok := strings.CutPrefix(key, variantParamPrefix)
		if !ok || name == "" {
			continue
		}
		if state.VariantValues == nil {
			state.VariantValues = make(map[string][]string)
		}
		state.VariantValues[name] = multi(q, key)
	}

	var err error
	if state.Price.Min, err = moneyParam(q, "min_price"); err != nil {
		return state, err
	}
	if state.Price.Max, err = moneyParam(q, "max_price"); err != nil {
		return state, err
	}
	if state.Page, err = intParam(q, "page"); err != nil {
		return state, err
	}
	if state.PageSize, err = intParam(q, "limit"); err != nil {
		return state, err
	}
	state.PageSize = min(state.PageSize, maxPageSize)
	return state, nil
}

func searchFields(q url.Values) domain.SearchFields {
	if q.Get("search") == "all" {
		return domain.SearchAll
	}
	return domain.SearchDefault
}

// facetFlags reads the comma-separated facets parameter. Empty means all.
func facetFlags(q url.Values) domain.FacetFlags {
	names := multi(q, "facets")
	if len(names) == 0 {
		return domain.AllFacets
	}
	return domain.FacetFlags{
		Categories:    lo.Contains(names, "categories"),
		PriceRange:    lo.Contains(names, "price"),
		VariantValues: lo.Contains(names, "variants"),
		Conditions:    lo.Contains(names, "conditions"),
		Tags:          lo.Contains(names, "tags"),
	}
}

func optional(q url.Values, key string) *string {
	if v := q.Get(key); v != "" {
		return &v
	}
	return nil
}

func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}
