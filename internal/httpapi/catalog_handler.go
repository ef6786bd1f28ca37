package httpapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Mbarca89/vete-front-v2/internal/backend"
)

const (
	defaultPage = 1
	defaultSize = 12
	maxPageSize = 60
)

// CatalogSource is implemented by the cached catalog service.
type CatalogSource interface {
	Categories(ctx context.Context) ([]string, error)
	Products(ctx context.Context, page, size int) (*backend.ProductsPage, error)
	ProductsByCategory(ctx context.Context, category string, page, size int) (*backend.ProductsPage, error)
	SearchProducts(ctx context.Context, term string) ([]backend.Product, error)
}

type CatalogHandler struct {
	catalog CatalogSource
}

func NewCatalogHandler(catalog CatalogSource) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.Categories(r.Context())
	if err != nil {
		respondBackendError(w, err)
		return
	}
	if categories == nil {
		categories = []string{}
	}
	respondJSON(w, http.StatusOK, categories)
}

func (h *CatalogHandler) Products(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", defaultPage)
	size := queryInt(r, "size", defaultSize)
	if size > maxPageSize {
		size = maxPageSize
	}

	var (
		result *backend.ProductsPage
		err    error
	)
	if category := r.URL.Query().Get("category"); category != "" {
		result, err = h.catalog.ProductsByCategory(r.Context(), category, page, size)
	} else {
		result, err = h.catalog.Products(r.Context(), page, size)
	}
	if err != nil {
		respondBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("term")
	if term == "" {
		respondError(w, http.StatusBadRequest, "missing_term", "term is required")
		return
	}

	products, err := h.catalog.SearchProducts(r.Context(), term)
	if err != nil {
		respondBackendError(w, err)
		return
	}
	if products == nil {
		products = []backend.Product{}
	}
	respondJSON(w, http.StatusOK, products)
}

// respondBackendError maps a classified backend failure onto this API's
// status codes so the front-end can degrade the affected section.
func respondBackendError(w http.ResponseWriter, err error) {
	be, ok := backend.AsError(err)
	if !ok {
		respondError(w, http.StatusInternalServerError, "internal", "unexpected error")
		return
	}

	switch be.Kind {
	case backend.KindConfig:
		respondError(w, http.StatusServiceUnavailable, "misconfigured", be.Message)
	case backend.KindTransport:
		respondError(w, http.StatusBadGateway, "backend_unreachable", "no se pudo conectar con el servidor")
	case backend.KindForbidden:
		respondJSON(w, http.StatusForbidden, ErrorResponse{Error: "la sesión expiró", Code: "forbidden", Reset: true})
	case backend.KindHTTP:
		if be.Status == http.StatusNotFound {
			respondError(w, http.StatusNotFound, "not_found", be.Message)
			return
		}
		respondError(w, http.StatusBadGateway, "backend_error", be.Message)
	default:
		respondError(w, http.StatusBadGateway, "invalid_response", be.Message)
	}
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return fallback
	}
	return v
}
