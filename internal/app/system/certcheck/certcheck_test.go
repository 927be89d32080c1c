package certcheck

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestTarget(t *testing.T) {
	tests := []struct {
		in       string
		wantAddr string
		wantHost string
		wantErr  error
	}{
		{"https://example.com", "example.com:443", "example.com", nil},
		{"https://example.com:8443/path", "example.com:8443", "example.com", nil},
		{"example.com", "example.com:443", "example.com", nil},
		{"https://[2001:db8::1]", "[2001:db8::1]:443", "2001:db8::1", nil},
		{"http://localhost:8080", "", "", ErrNoTLS},
	}

	for _, tt := range tests {
		addr, host, err := target(tt.in)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("target(%q) error = %v, want %v", tt.in, err, tt.wantErr)
			continue
		}
		if addr != tt.wantAddr || host != tt.wantHost {
			t.Errorf("target(%q) = %q, %q; want %q, %q", tt.in, addr, host, tt.wantAddr, tt.wantHost)
		}
	}

	if _, _, err := target("https://"); err == nil {
		t.Error("target(https://) should fail")
	}
}

func TestCheck(t *testing.T) {
	srv := httptest.NewTLSServer(http.NotFoundHandler())
	defer srv.Close()

	roots := x509.NewCertPool()
	roots.AddCert(srv.Certificate())

	info, err := Check(context.Background(), srv.URL, &tls.Config{RootCAs: roots, ServerName: "example.com"})
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if !info.ExpiresAt.Equal(srv.Certificate().NotAfter) {
		t.Errorf("ExpiresAt = %v, want %v", info.ExpiresAt, srv.Certificate().NotAfter)
	}
	if !info.Valid(time.Now()) {
		t.Error("test certificate should be valid now")
	}
	if info.DaysLeft(time.Now()) <= 0 {
		t.Errorf("DaysLeft = %d", info.DaysLeft(time.Now()))
	}
}

func TestCheck_UntrustedCertificate(t *testing.T) {
	srv := httptest.NewTLSServer(http.NotFoundHandler())
	defer srv.Close()

	if _, err := Check(context.Background(), srv.URL, &tls.Config{RootCAs: x509.NewCertPool()}); err == nil {
		t.Error("Check() should fail for an untrusted certificate")
	}
}

func TestInfo_DaysLeft(t *testing.T) {
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	info := Info{NotBefore: now.AddDate(0, -1, 0), ExpiresAt: now.Add(10*24*time.Hour + time.Hour)}
	if got := info.DaysLeft(now); got != 10 {
		t.Errorf("DaysLeft = %d, want 10", got)
	}
	if !info.Valid(now) || info.Valid(now.AddDate(0, 1, 0)) {
		t.Error("Valid() wrong around expiry")
	}
}
