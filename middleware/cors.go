package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows the web client origins to call the API from the browser.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Location", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
