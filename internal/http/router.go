package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/okvann/billdesk/internal/http/auth"
	"github.com/okvann/billdesk/internal/http/bills"
	"github.com/okvann/billdesk/internal/http/products"
)

func New(
	jwtSecret string,
	productsV1 *products.Handler,
	billsV1 *bills.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "deviceId"},
	}))

	router.Route("/api", func(r chi.Router) {
		r.Use(auth.Middleware(jwtSecret))

		r.Route("/products", productsV1.Routes)

		r.Route("/bills", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			billsV1.Routes(r)
		})
	})

	return router
}
