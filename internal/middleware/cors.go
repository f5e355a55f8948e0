package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows any origin, as browsers call the truck API directly.
func CORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"ETag"},
		MaxAge:         300,
	})
}
