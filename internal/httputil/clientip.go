// Package httputil resolves the client address the stream limiter keys on.
package httputil

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP returns the address to attribute the request to.
//
// The renderer is served either directly or behind a single reverse proxy.
// With trustProxy set, the first X-Forwarded-For entry wins, then X-Real-IP.
// Header values that do not parse as IP addresses are skipped, so a client
// cannot mint fresh limiter buckets by sending garbage headers. Without
// trustProxy only RemoteAddr is consulted.
func ClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if ip := headerIP(r.Header.Get("X-Forwarded-For")); ip != "" {
			return ip
		}
		if ip := headerIP(r.Header.Get("X-Real-IP")); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// headerIP takes the first comma-separated entry of a forwarding header and
// returns it in canonical form, or "" when it is not a valid IP.
func headerIP(v string) string {
	if v == "" {
		return ""
	}
	if i := strings.IndexByte(v, ','); i >= 0 {
		v = v[:i]
	}
	ip := net.ParseIP(strings.TrimSpace(v))
	if ip == nil {
		return ""
	}
	return ip.String()
}
