package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// NewCORS returns a CORS handler for the browser client. An origin of "*"
// allows any origin.
func NewCORS(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{TraceIDHeader},
		MaxAge:         300,
	})
	return c.Handler
}
