package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

var defaultCORSOrigins = []string{
	"http://localhost:5173",         // local vite dev
	"http://localhost:3000",         // local dev
	"https://zestraw.in",            // storefront
	"https://www.zestraw.in",        // storefront www
	"https://zestraw.vercel.app",    // Vercel domain
}

// CORS returns middleware that applies the API's allowed origin policy.
func CORS() func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   defaultCORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Cart-Key", "X-Requested-With"},
		ExposedHeaders:   []string{"X-Cart-Key"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
