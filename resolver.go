package geoenrich

import (
	"errors"
	"net/netip"
)

var (
	// ErrNotFound reports that a valid address is outside database coverage.
	// It is a normal lookup outcome, not a failure.
	ErrNotFound = errors.New("address not found in database")

	// ErrNoASNDatabase reports that no ASN database was configured.
	ErrNoASNDatabase = errors.New("no ASN database configured")
)

// CityResolver looks up geographic metadata for an address.
//
// Implementations must be read-only and reuse their database handle across
// calls; the driver queries once per public row.
type CityResolver interface {
	// City returns the geographic record for addr, or ErrNotFound when addr
	// is outside database coverage.
	City(addr netip.Addr) (*GeoRecord, error)
}

// ASNResolver looks up autonomous-system ownership for an address.
type ASNResolver interface {
	// ASN returns the ownership record for addr. It returns ErrNotFound for
	// addresses outside coverage and ErrNoASNDatabase when the resolver has
	// no ASN side configured.
	ASN(addr netip.Addr) (*ASNRecord, error)
}

// Resolver combines both lookup capabilities. The concrete on-disk database
// format stays swappable behind this interface.
type Resolver interface {
	CityResolver
	ASNResolver
}

// CombineResolvers builds a Resolver from independent city and ASN halves,
// allowing the two databases to use different backends. A nil asn half
// reports ErrNoASNDatabase for every ASN lookup.
func CombineResolvers(city CityResolver, asn ASNResolver) Resolver {
	return &combinedResolver{city: city, asn: asn}
}

type combinedResolver struct {
	city CityResolver
	asn  ASNResolver
}

func (r *combinedResolver) City(addr netip.Addr) (*GeoRecord, error) {
	return r.city.City(addr)
}

func (r *combinedResolver) ASN(addr netip.Addr) (*ASNRecord, error) {
	if r.asn == nil {
		return nil, ErrNoASNDatabase
	}
	return r.asn.ASN(addr)
}
