package geoenrich

import (
	"fmt"
	"net/netip"
	"strings"

	"github.com/ip2location/ip2location-go/v9"
)

// IP2LocationResolver resolves addresses against an IP2Location BIN database.
// The format carries city-level data only, so the ASN capability always
// reports ErrNoASNDatabase; pair it with a MaxMind ASN database through
// CombineResolvers when ownership data is needed.
type IP2LocationResolver struct {
	db *ip2location.DB
}

// OpenIP2Location opens the BIN database at path. The handle is held open
// and reused for every lookup.
func OpenIP2Location(path string) (*IP2LocationResolver, error) {
	db, err := ip2location.OpenDB(path)
	if err != nil {
		return nil, fmt.Errorf("open ip2location database %q: %w", path, err)
	}
	return &IP2LocationResolver{db: db}, nil
}

// City implements CityResolver.
func (r *IP2LocationResolver) City(addr netip.Addr) (*GeoRecord, error) {
	record, err := r.db.Get_all(addr.String())
	if err != nil {
		return nil, fmt.Errorf("ip2location lookup %s: %w", addr, err)
	}

	country := binField(record.Country_short)
	if country == "" {
		return nil, ErrNotFound
	}

	geo := &GeoRecord{
		CountryISO: country,
		Region:     binField(record.Region),
		City:       binField(record.City),
	}

	if record.Latitude != 0 || record.Longitude != 0 {
		lat, lon := float64(record.Latitude), float64(record.Longitude)
		geo.Latitude = &lat
		geo.Longitude = &lon
	}

	return geo, nil
}

// ASN implements ASNResolver.
func (r *IP2LocationResolver) ASN(netip.Addr) (*ASNRecord, error) {
	return nil, ErrNoASNDatabase
}

// Close releases the database handle.
func (r *IP2LocationResolver) Close() error {
	r.db.Close()
	return nil
}

// binField normalizes IP2Location placeholder values to empty strings. The
// library reports misses as "-" and fields missing from the database tier as
// a literal "This parameter is unavailable..." message.
func binField(v string) string {
	if v == "-" || v == "" || strings.HasPrefix(v, "This parameter is unavailable") {
		return ""
	}
	return v
}
