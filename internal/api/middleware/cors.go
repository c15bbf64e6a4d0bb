package middleware

import (
	"github.com/go-chi/cors"
)

// NewCORS creates the CORS middleware for the dashboard front end.
// The API is read-only apart from POST computations, and carries no credentials.
func NewCORS(allowedOrigins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Content-Type", "Content-Length", "X-Request-Id"},
		MaxAge:         300,
	})
}
