package common

import (
	"net"
	"net/http"
	"strings"

	"github.com/reviewly/api/internal/domain"
)

// ClientAddress derives the submitter address: X-Real-IP, then the first X-Forwarded-For hop,
// then CF-Connecting-IP, then the peer address without its port.
func ClientAddress(r *http.Request) string {
	candidates := []string{
		r.Header.Get("X-Real-IP"),
		firstForwardedHop(r.Header.Get("X-Forwarded-For")),
		r.Header.Get("CF-Connecting-IP"),
		peerHost(r.RemoteAddr),
	}
	for _, candidate := range candidates {
		if addr := domain.NormalizeAddress(candidate); addr != "" {
			return addr
		}
	}
	return domain.UnknownAddress
}

func firstForwardedHop(header string) string {
	if header == "" {
		return ""
	}
	return strings.TrimSpace(strings.Split(header, ",")[0])
}

func peerHost(remote string) string {
	remote = strings.TrimSpace(remote)
	if remote == "" {
		return ""
	}
	if host, _, err := net.SplitHostPort(remote); err == nil {
		return host
	}
	return remote
}
