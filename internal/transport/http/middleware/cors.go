package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows the configured origins. A single "*" entry allows any origin;
// credentials are then echoed per origin rather than sent with a wildcard.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	opts := cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	for _, origin := range allowedOrigins {
		if origin == "*" {
			opts.AllowedOrigins = nil
			opts.AllowOriginFunc = func(_ *http.Request, _ string) bool { return true }
			break
		}
	}
	return cors.Handler(opts)
}
