package utils

import (
	"net/netip"
	"strings"
	"unicode/utf8"
)

// MaxUserAgentLength bounds the user agent stored in audit events.
const MaxUserAgentLength = 512

// NormalizeIP takes either a bare IP string or an address that may include a
// port (e.g. "192.0.2.4:1234" or "[2001:db8::1]:443") and returns the
// canonical IP without zone identifiers. The second return value reports
// whether raw was parsed as an IP address.
func NormalizeIP(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if addrPort, err := netip.ParseAddrPort(raw); err == nil {
		return addrPort.Addr().WithZone("").Unmap().String(), true
	}
	if addr, err := netip.ParseAddr(raw); err == nil {
		return addr.WithZone("").Unmap().String(), true
	}
	// bracketed IPv6 without a numeric port, e.g. "[::1]:port"
	if strings.HasPrefix(raw, "[") {
		if end := strings.LastIndex(raw, "]"); end > 0 {
			if addr, err := netip.ParseAddr(raw[1:end]); err == nil {
				return addr.WithZone("").String(), true
			}
		}
	}
	return "", false
}

// ClientIP returns the normalized form of raw, or raw itself when it is not
// an IP address.
func ClientIP(raw string) string {
	if ip, ok := NormalizeIP(raw); ok {
		return ip
	}
	return strings.TrimSpace(raw)
}

// TruncateUserAgent cuts ua to [MaxUserAgentLength] runes.
func TruncateUserAgent(ua string) string {
	ua = strings.TrimSpace(ua)
	if utf8.RuneCountInString(ua) <= MaxUserAgentLength {
		return ua
	}
	runes := []rune(ua)
	return string(runes[:MaxUserAgentLength])
}
