package resources

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssetsHandler(t *testing.T) {
	h := AssetsHandler("/assets")

	tests := []struct {
		path string
		want int
	}{
		{"/assets/css/site.css", http.StatusOK},
		{"/assets/js/site.js", http.StatusOK},
		{"/assets/css/missing.css", http.StatusNotFound},
		{"/assets/", http.StatusNotFound},
		{"/assets/css/", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusOK {
				assert.Equal(t, AssetMaxAge, rec.Header().Get("Cache-Control"))
			}
		})
	}
}

func TestAssetsHandler_ContentType(t *testing.T) {
	rec := httptest.NewRecorder()
	AssetsHandler("/assets").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/css/site.css", nil))
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/css")
	assert.Contains(t, rec.Body.String(), "--brand")
}
