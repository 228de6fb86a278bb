package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jcmexdev/storefront/internal/httpx/middlewares"
)

func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middlewares.AttachRequestMetadata)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", handler.Healthz)
	r.Get("/catalog", handler.ListCatalog)
	r.Get("/view", handler.GetView)

	r.Route("/cart/items", func(r chi.Router) {
		r.Post("/", handler.AddItem)
		r.Put("/{id}", handler.SetQuantity)
		r.Delete("/{id}", handler.RemoveItem)
	})

	r.Post("/navigation", handler.Navigate)
	r.Post("/navigation/back", handler.Back)

	r.Put("/checkout", handler.UpdateCheckout)
	r.Post("/checkout/submit", handler.Submit)

	r.Get("/submissions/{id}", handler.GetSubmission)

	return otelhttp.NewHandler(r, "storefront")
}
