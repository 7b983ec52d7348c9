package geoenrich

import (
	"testing"
)

func FuzzClassify_NormalizationStability(f *testing.F) {
	for _, seed := range []string{
		"8.8.8.8",
		"  8.8.8.8  ",
		"8.8.8.8:443",
		"[2606:4700:4700::1111]:443",
		`"1.1.1.1"`,
		"'1.1.1.1'",
		"::ffff:192.168.0.1",
		"192.168.56.300",
		"not-an-ip",
		"",
	} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, raw string) {
		class := Classify(raw)
		if class.String() == "unknown" {
			t.Fatalf("Classify(%q) returned out-of-range classification %d", raw, class)
		}

		parsed := parseCell(raw)
		if !parsed.IsValid() {
			if class != ClassMalformed {
				t.Fatalf("unparsable %q classified as %v, want malformed", raw, class)
			}
			return
		}

		// Classification must be stable under canonical re-rendering.
		roundTrip := Classify(parsed.String())
		if roundTrip != class {
			t.Fatalf("classification changed across round-trip for %q: %v then %v", raw, class, roundTrip)
		}
	})
}
