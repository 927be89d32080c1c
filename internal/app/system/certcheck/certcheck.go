// internal/app/system/certcheck/certcheck.go
package certcheck

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"
)

// DialTimeout bounds the TLS handshake.
const DialTimeout = 5 * time.Second

// ErrNoTLS is returned for http:// URLs, which have no certificate to check.
var ErrNoTLS = errors.New("certcheck: site is not served over https")

// Info describes the leaf certificate a site presents.
type Info struct {
	Host      string    `json:"host"`
	Issuer    string    `json:"issuer"`
	NotBefore time.Time `json:"not_before"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Valid reports whether the certificate is inside its validity period at now.
func (i Info) Valid(now time.Time) bool {
	return now.After(i.NotBefore) && now.Before(i.ExpiresAt)
}

// DaysLeft is the number of whole days until expiry, negative once expired.
func (i Info) DaysLeft(now time.Time) int {
	return int(i.ExpiresAt.Sub(now).Hours() / 24)
}

// Check connects to siteURL and returns its certificate. A bare host name is
// treated as https on port 443. cfg may be nil; its RootCAs are used to
// verify the chain.
func Check(ctx context.Context, siteURL string, cfg *tls.Config) (Info, error) {
	addr, host, err := target(siteURL)
	if err != nil {
		return Info{}, err
	}

	if cfg == nil {
		cfg = &tls.Config{}
	}
	cfg = cfg.Clone()
	if cfg.ServerName == "" {
		cfg.ServerName = host
	}

	d := &tls.Dialer{NetDialer: &net.Dialer{Timeout: DialTimeout}, Config: cfg}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return Info{Host: host}, fmt.Errorf("certcheck: connect %s: %w", addr, err)
	}
	defer conn.Close()

	certs := conn.(*tls.Conn).ConnectionState().PeerCertificates
	if len(certs) == 0 {
		return Info{Host: host}, fmt.Errorf("certcheck: %s presented no certificate", addr)
	}
	leaf := certs[0]
	return Info{
		Host:      host,
		Issuer:    leaf.Issuer.CommonName,
		NotBefore: leaf.NotBefore,
		ExpiresAt: leaf.NotAfter,
	}, nil
}

// target returns the dial address and host name for siteURL.
func target(siteURL string) (addr, host string, err error) {
	s := strings.TrimSpace(siteURL)
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil || u.Hostname() == "" {
		return "", "", fmt.Errorf("certcheck: invalid site url %q", siteURL)
	}
	if u.Scheme != "https" {
		return "", "", ErrNoTLS
	}
	port := u.Port()
	if port == "" {
		port = "443"
	}
	return net.JoinHostPort(u.Hostname(), port), u.Hostname(), nil
}
