package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"labcatalog-api/internal/config"
	"labcatalog-api/internal/handler"
	"labcatalog-api/internal/middleware"
)

func New(
	cfg *config.Config,
	authMiddleware *middleware.AuthMiddleware,
	authHandler *handler.AuthHandler,
	productHandler *handler.ProductHandler,
	categoryHandler *handler.CategoryHandler,
	quoteHandler *handler.QuoteHandler,
	uploadHandler *handler.UploadHandler,
	healthCheck http.HandlerFunc,
) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", healthCheck)

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		// Public catalog and quote intake.
		api.Get("/products", productHandler.ListPublic)
		api.Get("/products/{slug}", productHandler.GetBySlug)
		api.Get("/categories", categoryHandler.List)
		api.Post("/quotes", quoteHandler.Submit)

		api.Route("/admin", func(admin chi.Router) {
			admin.Post("/login", authHandler.Login)

			admin.Group(func(protected chi.Router) {
				protected.Use(authMiddleware.RequireAuth)

				protected.Get("/products", productHandler.ListAdmin)
				protected.Post("/products", productHandler.Create)
				protected.Put("/products/{id}", productHandler.Update)
				protected.Patch("/products/{id}/toggle", productHandler.Toggle)
				protected.Delete("/products/{id}", productHandler.Delete)

				protected.Get("/categories", categoryHandler.List)
				protected.Post("/categories", categoryHandler.Create)
				protected.Put("/categories/{id}", categoryHandler.Update)
				protected.Delete("/categories/{id}", categoryHandler.Delete)

				protected.Get("/quotes", quoteHandler.List)
				protected.Get("/quotes/{id}", quoteHandler.Get)
				protected.Patch("/quotes/{id}/status", quoteHandler.UpdateStatus)

				// Upload is only wired when object storage is configured.
				if uploadHandler != nil {
					protected.Post("/upload", uploadHandler.Upload)
				}
			})
		})
	})

	return r
}
