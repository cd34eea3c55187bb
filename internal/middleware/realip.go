package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// ClientIPKey holds the client address resolved by RealIP
const ClientIPKey contextKey = "client_ip"

// RealIP resolves the client address once per request. X-Forwarded-For and
// X-Real-IP are only read when the direct peer is a trusted proxy.
type RealIP struct {
	trusted []*net.IPNet
}

// NewRealIP parses proxies given as single IPs or CIDR ranges
func NewRealIP(proxies []string) (*RealIP, error) {
	nets := make([]*net.IPNet, 0, len(proxies))
	for _, p := range proxies {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !strings.Contains(p, "/") {
			ip := net.ParseIP(p)
			if ip == nil {
				return nil, fmt.Errorf("invalid trusted proxy %q", p)
			}
			bits := 128
			if ip.To4() != nil {
				ip = ip.To4()
				bits = 32
			}
			nets = append(nets, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}
		_, n, err := net.ParseCIDR(p)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", p, err)
		}
		nets = append(nets, n)
	}
	return &RealIP{trusted: nets}, nil
}

// Handler stores the resolved address under ClientIPKey
func (m *RealIP) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), ClientIPKey, m.resolve(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *RealIP) resolve(r *http.Request) string {
	addr := peerIP(r)
	if !m.isTrusted(addr) {
		return addr
	}

	// right to left: the first hop not added by one of our proxies is the client
	if values := r.Header.Values("X-Forwarded-For"); len(values) > 0 {
		hops := strings.Split(strings.Join(values, ","), ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if hop == "" {
				continue
			}
			if !m.isTrusted(hop) {
				return hop
			}
			addr = hop
		}
		return addr
	}

	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}
	return addr
}

func (m *RealIP) isTrusted(addr string) bool {
	ip := net.ParseIP(addr)
	if ip == nil {
		return false
	}
	for _, n := range m.trusted {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

// ClientIP returns the address resolved by RealIP, or the direct peer when
// the request did not pass through it
func ClientIP(r *http.Request) string {
	if ip, ok := r.Context().Value(ClientIPKey).(string); ok && ip != "" {
		return ip
	}
	return peerIP(r)
}

func peerIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
