package geoenrich

import (
	"strconv"
	"strings"
)

// GeoRecord is the result of a successful City-database lookup. Every field
// is independently optional: databases have partial coverage and a record may
// carry only country-level data. Absent string fields are empty; absent
// coordinates are nil.
type GeoRecord struct {
	CountryISO string
	Region     string
	City       string
	Latitude   *float64
	Longitude  *float64
}

// ASNRecord is the result of a successful ASN-database lookup.
type ASNRecord struct {
	Number       uint
	Organization string
}

// FormatCell renders a lookup result as the derived cell value:
//
//	country_iso|region|city|lat|lon|ASn|org
//
// The output always has exactly 7 fields (6 pipe separators); fields with no
// source value render as empty substrings so delimiter positions stay stable
// under partial coverage. Coordinates use fixed 6-decimal precision. The AS
// number renders with an "AS" prefix; when asn is nil or carries no number,
// both ASN fields render empty.
//
// Pass nil for a record that was not found or whose database is not
// configured. FormatCell(nil, nil) renders "||||||", the value for a public
// address outside database coverage.
func FormatCell(geo *GeoRecord, asn *ASNRecord) string {
	var country, region, city, lat, lon, number, org string

	if geo != nil {
		country = geo.CountryISO
		region = geo.Region
		city = geo.City
		if geo.Latitude != nil {
			lat = formatCoordinate(*geo.Latitude)
		}
		if geo.Longitude != nil {
			lon = formatCoordinate(*geo.Longitude)
		}
	}

	if asn != nil && asn.Number > 0 {
		number = "AS" + strconv.FormatUint(uint64(asn.Number), 10)
		org = asn.Organization
	}

	return strings.Join([]string{country, region, city, lat, lon, number, org}, "|")
}

func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
