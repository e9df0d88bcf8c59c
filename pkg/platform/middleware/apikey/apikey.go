// Package apikey guards routes with a shared secret sent in X-API-KEY.
package apikey

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	request "countryref/pkg/platform/middleware/request"
)

// Header is the request header that carries the key.
const Header = "X-API-KEY"

// Require rejects requests whose X-API-KEY does not match expected. Paths
// starting with any of the exempt prefixes pass through unchecked.
func Require(expected string, logger *slog.Logger, exempt ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, prefix := range exempt {
				if strings.HasPrefix(r.URL.Path, prefix) {
					next.ServeHTTP(w, r)
					return
				}
			}

			key := r.Header.Get(Header)
			// Use constant-time comparison to prevent timing attacks
			if key == "" || subtle.ConstantTimeCompare([]byte(key), []byte(expected)) != 1 {
				ctx := r.Context()
				logger.WarnContext(ctx, "api key rejected",
					"path", r.URL.Path,
					"missing", key == "",
					"request_id", request.GetRequestID(ctx),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"invalid or missing API key"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
