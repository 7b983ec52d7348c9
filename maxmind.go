package geoenrich

import (
	"errors"
	"fmt"
	"net"
	"net/netip"

	"github.com/oschwald/geoip2-golang"
)

// MaxMindResolver resolves addresses against MaxMind GeoLite2/GeoIP2
// databases in mmdb format. The City database is required; the ASN database
// is optional.
//
// Both handles are opened once and held read-only for the resolver lifetime.
// MaxMindResolver is safe for concurrent use.
type MaxMindResolver struct {
	city *geoip2.Reader
	asn  *geoip2.Reader
}

// OpenMaxMind opens the City database at cityPath and, when asnPath is
// non-empty, the ASN database at asnPath. A missing or corrupt database file
// is a configuration error reported here, before any row processing.
func OpenMaxMind(cityPath, asnPath string) (*MaxMindResolver, error) {
	city, err := geoip2.Open(cityPath)
	if err != nil {
		return nil, fmt.Errorf("open city database %q: %w", cityPath, err)
	}

	resolver := &MaxMindResolver{city: city}

	if asnPath != "" {
		asn, err := geoip2.Open(asnPath)
		if err != nil {
			city.Close()
			return nil, fmt.Errorf("open ASN database %q: %w", asnPath, err)
		}
		resolver.asn = asn
	}

	return resolver, nil
}

// City implements CityResolver.
func (r *MaxMindResolver) City(addr netip.Addr) (*GeoRecord, error) {
	record, err := r.city.City(net.IP(addr.AsSlice()))
	if err != nil {
		return nil, fmt.Errorf("city lookup %s: %w", addr, err)
	}

	// The mmdb reader reports a miss as an all-zero record, not an error.
	if record.Country.IsoCode == "" && len(record.City.Names) == 0 &&
		len(record.Subdivisions) == 0 &&
		record.Location.Latitude == 0 && record.Location.Longitude == 0 {
		return nil, ErrNotFound
	}

	geo := &GeoRecord{
		CountryISO: record.Country.IsoCode,
		City:       record.City.Names["en"],
	}

	// Prefer the most specific subdivision name, falling back to its ISO code.
	if n := len(record.Subdivisions); n > 0 {
		sub := record.Subdivisions[n-1]
		geo.Region = sub.Names["en"]
		if geo.Region == "" {
			geo.Region = sub.IsoCode
		}
	}

	lat, lon := record.Location.Latitude, record.Location.Longitude
	geo.Latitude = &lat
	geo.Longitude = &lon

	return geo, nil
}

// ASN implements ASNResolver.
func (r *MaxMindResolver) ASN(addr netip.Addr) (*ASNRecord, error) {
	if r.asn == nil {
		return nil, ErrNoASNDatabase
	}
	return asnLookup(r.asn, addr)
}

// Close releases both database handles.
func (r *MaxMindResolver) Close() error {
	err := r.city.Close()
	if r.asn != nil {
		err = errors.Join(err, r.asn.Close())
	}
	return err
}

// MaxMindASNResolver resolves only the ASN capability from an mmdb database.
// Combine it with a city backend of a different format through
// CombineResolvers.
type MaxMindASNResolver struct {
	db *geoip2.Reader
}

// OpenMaxMindASN opens a standalone ASN database at path.
func OpenMaxMindASN(path string) (*MaxMindASNResolver, error) {
	db, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ASN database %q: %w", path, err)
	}
	return &MaxMindASNResolver{db: db}, nil
}

// ASN implements ASNResolver.
func (r *MaxMindASNResolver) ASN(addr netip.Addr) (*ASNRecord, error) {
	return asnLookup(r.db, addr)
}

// Close releases the database handle.
func (r *MaxMindASNResolver) Close() error {
	return r.db.Close()
}

func asnLookup(db *geoip2.Reader, addr netip.Addr) (*ASNRecord, error) {
	record, err := db.ASN(net.IP(addr.AsSlice()))
	if err != nil {
		return nil, fmt.Errorf("asn lookup %s: %w", addr, err)
	}

	if record.AutonomousSystemNumber == 0 {
		return nil, ErrNotFound
	}

	return &ASNRecord{
		Number:       record.AutonomousSystemNumber,
		Organization: record.AutonomousSystemOrganization,
	}, nil
}
