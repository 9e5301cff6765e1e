package zone

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHostFQDN(t *testing.T) {
	tests := []struct {
		name, zone, want string
	}{
		{"www", "example.com.", "www.example.com."},
		{"@", "example.com.", "example.com."},
		{"www.example.com.", "example.com.", "www.example.com."},
		{"mail.other.net.", "example.com.", "mail.other.net."},
		{"  www  ", "example.com.", "www.example.com."},
		{"a.b", "example.com.", "a.b.example.com."},
	}
	for _, tc := range tests {
		got, err := hostFQDN(tc.name, tc.zone)
		require.NoError(t, err)
		require.Equal(t, tc.want, got, "hostFQDN(%q, %q)", tc.name, tc.zone)
	}

	_, err := hostFQDN("www", "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "must be a FQDN")
}

func TestRname(t *testing.T) {
	require.Equal(t, "hostmaster.example.com.", rname("hostmaster@example.com"))
	require.Equal(t, `john\.doe.example.com.`, rname("john.doe@example.com"))
	require.Equal(t, "noc.example.com.", rname("noc@example.com."))
}

func TestReverseZoneName(t *testing.T) {
	tests := []struct {
		prefix string
		want   string
		split  int
	}{
		{"192.168.1.0/24", "1.168.192.in-addr.arpa.", 1},
		{"10.0.0.0/16", "0.10.in-addr.arpa.", 2},
		{"10.0.0.0/8", "10.in-addr.arpa.", 3},
		{"2001:db8::/32", "8.b.d.0.1.0.0.2.ip6.arpa.", 24},
		{"2001:db8:1::/48", "1.0.0.0.8.b.d.0.1.0.0.2.ip6.arpa.", 20},
	}
	for _, tc := range tests {
		name, split := reverseZoneName(netip.MustParsePrefix(tc.prefix))
		require.Equal(t, tc.want, name, "prefix %s", tc.prefix)
		require.Equal(t, tc.split, split, "prefix %s", tc.prefix)
	}
}

func TestReverseName(t *testing.T) {
	require.Equal(t, "10.2.0.192.in-addr.arpa.", ReverseName(netip.MustParseAddr("192.0.2.10")))
	require.Equal(t,
		"1.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.8.b.d.0.1.0.0.2.ip6.arpa.",
		ReverseName(netip.MustParseAddr("2001:db8::1")))
}

func TestPtrOwner(t *testing.T) {
	require.Equal(t, "10", PtrOwner(netip.MustParseAddr("192.168.1.10"), 1))
	require.Equal(t, "10.1", PtrOwner(netip.MustParseAddr("192.168.1.10"), 2))
}
