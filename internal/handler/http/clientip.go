package http

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// TrustedProxies are the reverse proxies whose forwarding headers are believed.
// Requests from any other peer are keyed by their TCP address.
type TrustedProxies []netip.Prefix

// Trusts reports whether remoteAddr ("ip:port" or "ip") is one of the proxies.
func (p TrustedProxies) Trusts(remoteAddr string) bool {
	if len(p) == 0 {
		return false
	}
	addr, err := netip.ParseAddr(hostOf(remoteAddr))
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range p {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// ClientIP returns the address a request is accounted to. X-Forwarded-For
// (first entry) and then X-Real-IP are read only when the peer is trusted.
func (p TrustedProxies) ClientIP(r *http.Request) string {
	if p.Trusts(r.RemoteAddr) {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
				return ip.String()
			}
		}
		if ip := net.ParseIP(strings.TrimSpace(r.Header.Get("X-Real-IP"))); ip != nil {
			return ip.String()
		}
	}
	return hostOf(r.RemoteAddr)
}

func hostOf(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}
