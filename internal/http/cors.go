package http

import (
	"net/http"

	"github.com/go-chi/cors"
)

// WithCORS lets the configured origins call the API with credentials.
// It wraps the whole engine so preflight requests never reach gin routing.
func WithCORS(next http.Handler, origins []string) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	})(next)
}
