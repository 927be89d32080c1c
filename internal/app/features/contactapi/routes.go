// internal/app/features/contactapi/routes.go
package contactapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// APIRoutes returns the JSON endpoint, mounted at /api/contact.
func APIRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Post("/", h.Submit)
	return r
}

// FormRoutes returns the form fallback, mounted at /contact.
func FormRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Post("/", h.SubmitForm)
	return r
}
