package geoenrich

import (
	"fmt"
	"net/netip"
)

// Classification categorizes an address cell into routable classes. Only
// ClassPublic addresses are candidates for a database lookup; every other
// class short-circuits to an empty or marker cell.
type Classification int

const (
	// Start at 1 to avoid zero-value confusion.
	//
	// ClassMalformed covers unparsable cells, including empty ones.
	ClassMalformed Classification = iota + 1
	// ClassLoopback covers 127.0.0.0/8 and ::1.
	ClassLoopback
	// ClassLinkLocal covers link-local unicast and multicast ranges.
	ClassLinkLocal
	// ClassPrivate covers RFC 1918 and ULA ranges.
	ClassPrivate
	// ClassReserved covers multicast, unspecified, and special-use ranges
	// that never appear as routable endpoints.
	ClassReserved
	// ClassPublic marks an address as publicly geolocatable.
	ClassPublic
)

// String returns the canonical text representation of c.
func (c Classification) String() string {
	switch c {
	case ClassMalformed:
		return "malformed"
	case ClassLoopback:
		return "loopback"
	case ClassLinkLocal:
		return "link_local"
	case ClassPrivate:
		return "private"
	case ClassReserved:
		return "reserved"
	case ClassPublic:
		return "public"
	default:
		return "unknown"
	}
}

// Public reports whether c is eligible for a database lookup.
func (c Classification) Public() bool {
	return c == ClassPublic
}

var (
	reservedIPv4Prefixes = []netip.Prefix{
		mustParsePrefix("0.0.0.0/8"),
		mustParsePrefix("100.64.0.0/10"),
		mustParsePrefix("192.0.0.0/24"),
		mustParsePrefix("192.0.2.0/24"),
		mustParsePrefix("198.18.0.0/15"),
		mustParsePrefix("198.51.100.0/24"),
		mustParsePrefix("203.0.113.0/24"),
		mustParsePrefix("240.0.0.0/4"),
	}

	reservedIPv6Prefixes = []netip.Prefix{
		mustParsePrefix("64:ff9b::/96"),
		mustParsePrefix("64:ff9b:1::/48"),
		mustParsePrefix("100::/64"),
		mustParsePrefix("2001:2::/48"),
		mustParsePrefix("2001:db8::/32"),
		mustParsePrefix("2001:20::/28"),
	}
)

// Classify parses raw as an IPv4 or IPv6 address and classifies it. It never
// fails: unparsable input classifies as ClassMalformed.
func Classify(raw string) Classification {
	return classifyAddr(parseCell(raw))
}

// classifyAddr applies the classification precedence: malformed, loopback,
// link-local, private, reserved/multicast, public.
func classifyAddr(ip netip.Addr) Classification {
	if !ip.IsValid() {
		return ClassMalformed
	}

	ip = normalizeAddr(ip)

	switch {
	case ip.IsLoopback():
		return ClassLoopback
	case ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast():
		return ClassLinkLocal
	case ip.IsPrivate():
		return ClassPrivate
	case ip.IsMulticast() || ip.IsUnspecified() || isReservedAddr(ip):
		return ClassReserved
	}

	return ClassPublic
}

// isReservedAddr checks special-use ranges not covered by the netip
// predicates above.
func isReservedAddr(ip netip.Addr) bool {
	prefixes := reservedIPv6Prefixes
	if ip.Is4() {
		prefixes = reservedIPv4Prefixes
	}

	for _, prefix := range prefixes {
		if prefix.Contains(ip) {
			return true
		}
	}

	return false
}

func mustParsePrefix(cidr string) netip.Prefix {
	prefix, err := netip.ParsePrefix(cidr)
	if err != nil {
		panic(fmt.Sprintf("invalid built-in CIDR %q: %v", cidr, err))
	}
	return prefix
}
