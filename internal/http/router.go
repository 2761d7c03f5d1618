package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/sapataria/internal/http/events"
	"github.com/MrJamesThe3rd/sapataria/internal/http/export"
	"github.com/MrJamesThe3rd/sapataria/internal/http/importcsv"
	"github.com/MrJamesThe3rd/sapataria/internal/http/product"
	"github.com/MrJamesThe3rd/sapataria/internal/http/report"
	"github.com/MrJamesThe3rd/sapataria/internal/http/settings"
)

func New(
	allowedOrigins []string,
	productsV1 *product.Handler,
	reportsV1 *report.Handler,
	settingsV1 *settings.Handler,
	importV1 *importcsv.Handler,
	exportV1 *export.Handler,
	eventsV1 *events.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			productsV1.Routes(r)
		})

		r.Group(reportsV1.Routes)

		r.Route("/settings", settingsV1.Routes)

		r.Route("/import", importV1.Routes)

		r.Route("/export", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			exportV1.Routes(r)
		})

		r.Route("/ws", eventsV1.Routes)
	})

	return router
}
