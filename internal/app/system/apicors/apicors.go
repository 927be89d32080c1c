// Package apicors provides CORS middleware for endpoints that authenticate
// with a shared secret header instead of cookies, such as the CMS
// revalidation webhook.
//
// No credentials are involved, so any origin may call; the secret header
// is what authorizes the request.
package apicors

import (
	"net/http"
	"strings"
)

// AllowedHeaders are the request headers a cross-origin caller may send.
var AllowedHeaders = []string{"Content-Type", "Accept", "X-Revalidate-Secret"}

// Middleware returns CORS middleware that allows any origin. Preflight
// OPTIONS requests are answered with 204 and not passed on.
//
// Usage in routes.go:
//
//	r.Route("/api/revalidate", func(sr chi.Router) {
//	    sr.Use(apicors.Middleware())
//	    sr.Mount("/", revalidate.Routes(h))
//	})
func Middleware() func(http.Handler) http.Handler {
	return MiddlewareWithOrigins()
}

// MiddlewareWithOrigins restricts callers to the given origins. With no
// origins every origin is allowed.
func MiddlewareWithOrigins(allowedOrigins ...string) func(http.Handler) http.Handler {
	originSet := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		originSet[o] = struct{}{}
	}
	allowHeaders := strings.Join(AllowedHeaders, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			if len(originSet) == 0 {
				h.Set("Access-Control-Allow-Origin", "*")
			} else if origin := r.Header.Get("Origin"); origin != "" {
				// A disallowed origin gets no CORS headers and the browser blocks it.
				if _, ok := originSet[origin]; ok {
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			h.Set("Access-Control-Allow-Headers", allowHeaders)
			h.Set("Access-Control-Max-Age", "86400")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
