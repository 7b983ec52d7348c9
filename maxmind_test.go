package geoenrich

import (
	"net/netip"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpenMaxMind_MissingCityDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.mmdb")

	_, err := OpenMaxMind(path, "")
	if err == nil {
		t.Fatal("OpenMaxMind() succeeded for a missing file, want error")
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error %q does not name the database path", err)
	}
}

func TestOpenMaxMind_MissingASNDatabase(t *testing.T) {
	dir := t.TempDir()

	_, err := OpenMaxMind(filepath.Join(dir, "city.mmdb"), filepath.Join(dir, "asn.mmdb"))
	if err == nil {
		t.Fatal("OpenMaxMind() succeeded for missing files, want error")
	}
}

func TestOpenMaxMindASN_MissingDatabase(t *testing.T) {
	_, err := OpenMaxMindASN(filepath.Join(t.TempDir(), "asn.mmdb"))
	if err == nil {
		t.Fatal("OpenMaxMindASN() succeeded for a missing file, want error")
	}
}

func TestCombineResolvers(t *testing.T) {
	addr := netip.MustParseAddr("8.8.8.8")

	t.Run("nil asn half reports no database", func(t *testing.T) {
		resolver := CombineResolvers(newTestResolver(), nil)

		if _, err := resolver.City(addr); err != nil {
			t.Errorf("City() error: %v", err)
		}

		_, err := resolver.ASN(addr)
		if err != ErrNoASNDatabase {
			t.Errorf("ASN() error = %v, want ErrNoASNDatabase", err)
		}
	})

	t.Run("both halves wired", func(t *testing.T) {
		backing := newTestResolver()
		resolver := CombineResolvers(backing, backing)

		asn, err := resolver.ASN(addr)
		if err != nil {
			t.Fatalf("ASN() error: %v", err)
		}
		if asn.Number != 15169 {
			t.Errorf("ASN().Number = %d, want 15169", asn.Number)
		}
	})
}
