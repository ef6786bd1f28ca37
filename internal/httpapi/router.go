package httpapi

import (
	"net/http"
	"time"

	"github.com/Mbarca89/vete-front-v2/internal/cart"
	"github.com/Mbarca89/vete-front-v2/internal/checkout"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Deps bundles everything the router needs. Handlers take narrow interfaces
// so tests can swap in mocks.
type Deps struct {
	Carts          *cart.Manager
	Checkout       *checkout.Service
	Catalog        CatalogSource
	Pets           PetSource
	Mailer         MessageSender
	SiteOrigin     string
	RequestTimeout time.Duration
}

// NewRouter wires the public API of the site.
func NewRouter(deps Deps) http.Handler {
	cartHandler := NewCartHandler(deps.Carts)
	checkoutHandler := NewCheckoutHandler(deps.Carts, deps.Checkout)
	catalogHandler := NewCatalogHandler(deps.Catalog)
	petHandler := NewPetHandler(deps.Pets, deps.SiteOrigin)
	contactHandler := NewContactHandler(deps.Mailer)
	contentHandler := NewContentHandler()

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(deps.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(SessionMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{id}", cartHandler.RemoveItem)
		})

		r.Post("/checkout", checkoutHandler.Submit)

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/categories", catalogHandler.Categories)
			r.Get("/products", catalogHandler.Products)
			r.Get("/search", catalogHandler.Search)
		})

		r.Get("/pets/{publicId}", petHandler.Lookup)

		r.Post("/contact", contactHandler.Submit)

		r.Route("/content", func(r chi.Router) {
			r.Get("/services", contentHandler.Services)
			r.Get("/team", contentHandler.Team)
			r.Get("/testimonials", contentHandler.Testimonials)
		})
	})

	return otelhttp.NewHandler(r, "storefront")
}
