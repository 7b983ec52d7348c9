package geoenrich

import (
	"net"
	"net/netip"
	"strings"
)

// parseCell extracts an IP address from a raw CSV cell. Cells exported from
// logging pipelines are messy, so common decorations are stripped first:
//
//   - Leading/trailing whitespace: "  192.0.2.1  "
//   - Port suffixes: "192.0.2.1:8080" or "[2001:db8::1]:8080"
//   - Quoted values: "\"192.0.2.1\"" or "'192.0.2.1'"
//   - IPv6 brackets: "[2001:db8::1]"
//
// The actual parsing is left to netip.ParseAddr. Whether the address is
// publicly geolocatable is decided separately by classifyAddr.
//
// Returns an invalid netip.Addr (IsValid() == false) when parsing fails.
func parseCell(s string) netip.Addr {
	s = strings.TrimSpace(s)
	if s == "" {
		return netip.Addr{}
	}

	s = trimMatchedChar(s, '"')
	s = trimMatchedChar(s, '\'')
	if s == "" {
		return netip.Addr{}
	}

	if host, _, err := net.SplitHostPort(s); err == nil {
		s = host
	}

	s = trimMatchedPair(s, '[', ']')

	ip, _ := netip.ParseAddr(s)
	return ip
}

// normalizeAddr unmaps IPv4-mapped IPv6 addresses so range checks and
// database lookups see the underlying IPv4 address.
func normalizeAddr(ip netip.Addr) netip.Addr {
	if ip.Is4In6() {
		return ip.Unmap()
	}
	return ip
}

// trimMatchedPair removes one leading and trailing delimiter when both match.
func trimMatchedPair(s string, start, end byte) string {
	if len(s) < 2 {
		return s
	}

	if s[0] != start || s[len(s)-1] != end {
		return s
	}

	return s[1 : len(s)-1]
}

// trimMatchedChar removes one matching leading and trailing character.
func trimMatchedChar(s string, ch byte) string {
	return trimMatchedPair(s, ch, ch)
}
