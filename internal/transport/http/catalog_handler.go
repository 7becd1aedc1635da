package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/light-bringer/storefront-service/internal/app/storefront/queries/filter_products"
	"github.com/light-bringer/storefront-service/internal/app/storefront/queries/get_product"
	"github.com/light-bringer/storefront-service/internal/app/storefront/queries/list_facets"
)

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	h.serveListing(w, r, filter_products.ScopeAll, "")
}

func (h *Handler) categoryProducts(w http.ResponseWriter, r *http.Request) {
	h.serveListing(w, r, filter_products.ScopeCategory, chi.URLParam(r, "id"))
}

func (h *Handler) mainCategoryProducts(w http.ResponseWriter, r *http.Request) {
	h.serveListing(w, r, filter_products.ScopeMainCategory, chi.URLParam(r, "id"))
}

func (h *Handler) serveListing(w http.ResponseWriter, r *http.Request, scope filter_products.ScopeKind, scopeID string) {
	q := r.URL.Query()
	state, err := filterState(q)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := h.filterProducts.Execute(r.Context(), &filter_products.Request{
		State:    state,
		Scope:    scope,
		ScopeID:  scopeID,
		Search:   searchFields(q),
		LoadMore: q.Get("more") == "true",
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, http.StatusOK, resp)
}

func (h *Handler) productDetail(w http.ResponseWriter, r *http.Request) {
	resp, err := h.getProduct.Execute(r.Context(), &get_product.Request{
		ProductID:     chi.URLParam(r, "id"),
		VariantValues: multi(r.URL.Query(), "variant"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, http.StatusOK, resp)
}

func (h *Handler) facets(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	resp, err := h.listFacets.Execute(r.Context(), &list_facets.Request{
		Source: list_facets.ParseSource(q.Get("source")),
		Flags:  facetFlags(q),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, http.StatusOK, resp)
}

func (h *Handler) refreshCatalog(w http.ResponseWriter, _ *http.Request) {
	h.feed.ScheduleRefresh()
	respond(w, http.StatusAccepted, map[string]string{"status": "scheduled"})
}
