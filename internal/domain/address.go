package domain

import "strings"

const (
	mappedIPv4Prefix = "::ffff:"
	// UnknownAddress is stored when no source address can be derived.
	UnknownAddress = "unknown"
)

// NormalizeAddress trims whitespace and unwraps IPv4-mapped IPv6 notation.
func NormalizeAddress(raw string) string {
	addr := strings.TrimSpace(raw)
	if len(addr) >= len(mappedIPv4Prefix) && strings.EqualFold(addr[:len(mappedIPv4Prefix)], mappedIPv4Prefix) {
		addr = addr[len(mappedIPv4Prefix):]
	}
	return strings.TrimSpace(addr)
}
