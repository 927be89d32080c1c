// Package revalidate lets the CMS drop cached page content after a publish.
//
// Endpoints:
//   - POST /api/revalidate - invalidate the cached homepage content
//   - GET  /api/revalidate - describe the endpoint
//
// When a secret is configured it must be sent in the X-Revalidate-Secret
// header or the secret query parameter.
package revalidate

import (
	"context"
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/dalemusser/stratapapers/internal/app/system/jsonutil"
	"github.com/dalemusser/stratapapers/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SecretHeader carries the shared secret.
const SecretHeader = "X-Revalidate-Secret"

// Invalidator drops cache entries under a key prefix. rendercache.Cache
// satisfies it.
type Invalidator interface {
	Invalidate(ctx context.Context, parts ...string) (int, error)
}

// Handler handles revalidation requests.
type Handler struct {
	cache  Invalidator
	secret string
	now    func() time.Time
	logger *zap.Logger
}

// NewHandler creates a revalidate Handler. An empty secret accepts every
// request; cache may be nil when no render cache is configured.
func NewHandler(cache Invalidator, secret string, logger *zap.Logger) *Handler {
	return &Handler{
		cache:  cache,
		secret: secret,
		now:    time.Now,
		logger: logger,
	}
}

// Routes returns a chi.Router with the revalidate routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Post("/", h.Revalidate)
	r.Get("/", h.Describe)
	return r
}

// Response is the body of a successful revalidation.
type Response struct {
	Revalidated bool  `json:"revalidated"`
	Now         int64 `json:"now"`
}

// Revalidate invalidates the homepage content. A cache error is logged and
// still reported as revalidated; the entry expires on its own TTL.
func (h *Handler) Revalidate(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		jsonutil.Unauthorized(w, "Invalid secret")
		return
	}

	if h.cache != nil {
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Query())
		defer cancel()

		n, err := h.cache.Invalidate(ctx, "home")
		if err != nil {
			h.logger.Warn("revalidate: cache invalidation failed", zap.Error(err))
		} else {
			h.logger.Info("revalidate: cache invalidated", zap.Int("keys", n))
		}
	}

	jsonutil.OK(w, Response{Revalidated: true, Now: h.now().UnixMilli()})
}

// Describe reports what the endpoint does.
func (h *Handler) Describe(w http.ResponseWriter, r *http.Request) {
	jsonutil.OK(w, map[string]any{
		"message": "Use POST to revalidate cached content",
		"operations": map[string]string{
			"POST": "Invalidate the cached homepage content",
			"GET":  "Describe this endpoint",
		},
		"secretRequired": h.secret != "",
	})
}

func (h *Handler) authorized(r *http.Request) bool {
	if h.secret == "" {
		return true
	}
	got := r.Header.Get(SecretHeader)
	if got == "" {
		got = r.URL.Query().Get("secret")
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(h.secret)) == 1
}
