// Package network resolves the client address of a request.
package network

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP returns the client address of r in canonical form.
//
// With trustProxy set, the first X-Forwarded-For entry wins, then X-Real-IP.
// Header values that are not IP addresses are ignored. Without trustProxy
// only the connection's remote address is used, since the headers are
// client-controlled.
func ClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			if ip := canonical(first); ip != "" {
				return ip
			}
		}
		if ip := canonical(r.Header.Get("X-Real-IP")); ip != "" {
			return ip
		}
	}
	return remoteIP(r.RemoteAddr)
}

func canonical(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil {
		return ""
	}
	return ip.String()
}

// remoteIP strips the port from addr. "[::1]:8080" becomes "::1".
func remoteIP(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}
	if ip := canonical(host); ip != "" {
		return ip
	}
	return host
}
