package metadata

import (
	"net"
	"net/http"
	"net/netip"
	"strings"

	"harborbank/pkg/requestcontext"
)

// maxUserAgentLen bounds what ends up in activity log metadata.
const maxUserAgentLen = 512

// ClientMetadata puts the caller's IP and User-Agent on the context for the
// activity log and location lookup. Apply it early in the chain.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithClientMetadata(r.Context(), ClientIPFromRequest(r), userAgent(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClientIPFromRequest returns the originating client IP in canonical form,
// preferring X-Forwarded-For, then X-Real-IP, then the socket address.
// Candidates that do not parse as an IP are skipped. Returns "" when no
// address is usable, so callers leave the IP out rather than store junk.
func ClientIPFromRequest(r *http.Request) string {
	// X-Forwarded-For: client, proxy1, proxy2
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip, ok := parseIP(first); ok {
			return ip
		}
	}
	if ip, ok := parseIP(r.Header.Get("X-Real-IP")); ok {
		return ip
	}
	if ip, ok := parseIP(r.RemoteAddr); ok {
		return ip
	}
	return ""
}

// parseIP accepts a bare address or host:port, bracketed or not.
func parseIP(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if host, _, err := net.SplitHostPort(raw); err == nil {
		raw = host
	}
	addr, err := netip.ParseAddr(strings.Trim(raw, "[]"))
	if err != nil {
		return "", false
	}
	return addr.Unmap().WithZone("").String(), true
}

func userAgent(r *http.Request) string {
	ua := strings.TrimSpace(r.Header.Get("User-Agent"))
	if len(ua) > maxUserAgentLen {
		ua = ua[:maxUserAgentLen]
	}
	return ua
}
