package rest

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/parfumerie-dz/storefront/internal/catalog"
	"github.com/parfumerie-dz/storefront/pkg/web"
)

// ListProducts returns the catalog filtered and sorted by query parameters:
// search, category, brands (comma-separated), min_price, max_price, sort.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	spec, ok := h.parseFilterSpec(w, r)
	if !ok {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to list products", "spec", fmt.Sprintf("%+v", spec))
	list, err := h.products.List(r.Context(), spec)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving product list", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved product list", "count", len(list))
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

// FindProductByID retrieves a product by its ID.
func (h *Handler) FindProductByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	found, err := h.products.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			mLogger.WarnContext(r.Context(), "Product not found", "ID", id)
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Product with ID %s not found", id))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error retrieving product", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve product with ID %s", id))
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// ListBrands returns the distinct brand facet values.
func (h *Handler) ListBrands(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	brands, err := h.products.Brands(r.Context())
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving brand list", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch brands")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, brands)
}

// parseFilterSpec builds a FilterSpec from the request's query parameters.
// Responds with 400 and returns false on a malformed price.
func (h *Handler) parseFilterSpec(w http.ResponseWriter, r *http.Request) (catalog.FilterSpec, bool) {
	mLogger := h.loggerWithReqID(r)
	q := r.URL.Query()

	spec := catalog.FilterSpec{
		Search:   q.Get("search"),
		Category: catalog.Category(q.Get("category")),
		Sort:     catalog.SortKey(q.Get("sort")),
	}
	if brands := q.Get("brands"); brands != "" {
		for _, b := range strings.Split(brands, ",") {
			if b = strings.TrimSpace(b); b != "" {
				spec.Brands = append(spec.Brands, b)
			}
		}
	}

	for param, dst := range map[string]*int64{"min_price": &spec.MinPrice, "max_price": &spec.MaxPrice} {
		raw := q.Get(param)
		if raw == "" {
			continue
		}
		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || value < 0 {
			web.RespondError(w, mLogger, http.StatusBadRequest, fmt.Sprintf("Invalid %s: %s", param, raw))
			return catalog.FilterSpec{}, false
		}
		*dst = value
	}
	return spec, true
}
