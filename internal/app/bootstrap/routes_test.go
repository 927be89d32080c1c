package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestCSRFMiddleware(t *testing.T) {
	mw := csrfMiddleware(AppConfig{CSRFKey: "0123456789abcdef0123456789abcdef"}, false, zap.NewNop())
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name   string
		method string
		path   string
		want   int
	}{
		{"safe method passes", http.MethodGet, "/", http.StatusOK},
		{"revalidate webhook is exempt", http.MethodPost, "/api/revalidate", http.StatusOK},
		{"contact api is exempt", http.MethodPost, "/api/contact", http.StatusOK},
		{"contact form needs a token", http.MethodPost, "/contact", http.StatusForbidden},
		{"other unsafe requests need a token", http.MethodPost, "/subjects/maths", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}
