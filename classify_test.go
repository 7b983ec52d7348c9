package geoenrich

import (
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Classification
	}{
		{
			name:  "public IPv4",
			input: "8.8.8.8",
			want:  ClassPublic,
		},
		{
			name:  "public IPv6",
			input: "2606:4700:4700::1111",
			want:  ClassPublic,
		},
		{
			name:  "public IPv4 with surrounding whitespace",
			input: "  8.8.8.8  ",
			want:  ClassPublic,
		},
		{
			name:  "public IPv4 with quotes",
			input: `"8.8.8.8"`,
			want:  ClassPublic,
		},
		{
			name:  "public IPv4 with port",
			input: "8.8.8.8:443",
			want:  ClassPublic,
		},
		{
			name:  "private 10/8",
			input: "10.0.0.1",
			want:  ClassPrivate,
		},
		{
			name:  "private 172.16/12",
			input: "172.16.0.1",
			want:  ClassPrivate,
		},
		{
			name:  "private 192.168/16",
			input: "192.168.0.10",
			want:  ClassPrivate,
		},
		{
			name:  "private ULA",
			input: "fd00::1",
			want:  ClassPrivate,
		},
		{
			name:  "private IPv4-mapped IPv6",
			input: "::ffff:192.168.0.1",
			want:  ClassPrivate,
		},
		{
			name:  "loopback IPv4",
			input: "127.0.0.1",
			want:  ClassLoopback,
		},
		{
			name:  "loopback IPv6",
			input: "::1",
			want:  ClassLoopback,
		},
		{
			name:  "link-local unicast IPv4",
			input: "169.254.1.1",
			want:  ClassLinkLocal,
		},
		{
			name:  "link-local unicast IPv6",
			input: "fe80::1",
			want:  ClassLinkLocal,
		},
		{
			name:  "link-local multicast IPv4",
			input: "224.0.0.251",
			want:  ClassLinkLocal,
		},
		{
			name:  "multicast IPv4",
			input: "239.1.1.1",
			want:  ClassReserved,
		},
		{
			name:  "unspecified IPv4",
			input: "0.0.0.0",
			want:  ClassReserved,
		},
		{
			name:  "shared address space 100.64/10",
			input: "100.64.0.1",
			want:  ClassReserved,
		},
		{
			name:  "TEST-NET-1",
			input: "192.0.2.1",
			want:  ClassReserved,
		},
		{
			name:  "TEST-NET-2",
			input: "198.51.100.7",
			want:  ClassReserved,
		},
		{
			name:  "TEST-NET-3",
			input: "203.0.113.9",
			want:  ClassReserved,
		},
		{
			name:  "class E",
			input: "240.0.0.1",
			want:  ClassReserved,
		},
		{
			name:  "IPv6 documentation range",
			input: "2001:db8::1",
			want:  ClassReserved,
		},
		{
			name:  "IPv6 documentation range with brackets and port",
			input: "[2001:db8::1]:443",
			want:  ClassReserved,
		},
		{
			name:  "empty cell",
			input: "",
			want:  ClassMalformed,
		},
		{
			name:  "whitespace only",
			input: "   ",
			want:  ClassMalformed,
		},
		{
			name:  "not an address",
			input: "not-an-ip",
			want:  ClassMalformed,
		},
		{
			name:  "octet out of range",
			input: "192.168.56.300",
			want:  ClassMalformed,
		},
		{
			name:  "hostname",
			input: "example.com",
			want:  ClassMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.input); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestClassificationString(t *testing.T) {
	tests := []struct {
		class Classification
		want  string
	}{
		{ClassMalformed, "malformed"},
		{ClassLoopback, "loopback"},
		{ClassLinkLocal, "link_local"},
		{ClassPrivate, "private"},
		{ClassReserved, "reserved"},
		{ClassPublic, "public"},
		{Classification(0), "unknown"},
		{Classification(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.class.String(); got != tt.want {
			t.Errorf("Classification(%d).String() = %q, want %q", tt.class, got, tt.want)
		}
	}
}

func TestClassificationPublic(t *testing.T) {
	if !ClassPublic.Public() {
		t.Error("ClassPublic.Public() = false, want true")
	}
	for _, class := range []Classification{ClassMalformed, ClassLoopback, ClassLinkLocal, ClassPrivate, ClassReserved} {
		if class.Public() {
			t.Errorf("%v.Public() = true, want false", class)
		}
	}
}
