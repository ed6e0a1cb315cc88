package rest

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/Guyuepp/blog-comments/internal/rest/middleware"
)

// NewCORS builds the cross-origin policy for the API. Clients authenticate
// with a bearer header, so cookies are never allowed across origins.
func NewCORS(origins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", middleware.HeaderRequestID},
		ExposedHeaders: []string{middleware.HeaderRequestID},
	})
}
