package output

import (
	"net/netip"
	"strings"
	"testing"

	"github.com/henrikvtcodes/osmium/zone"
	"github.com/stretchr/testify/require"
)

func testModel() *zone.Model {
	header := zone.Header{
		Name:    "example.com.",
		Email:   "hostmaster.example.com.",
		Serial:  2025083000,
		Refresh: 10800,
		Retry:   3600,
		Expire:  604800,
		NrcTTL:  3600,
		TTL:     3600,
		Nameservers: []zone.NsRecord{
			{Name: "ns1.example.com.", TTL: 3600},
		},
	}

	fz := &zone.Forward{
		Header: header,
		MX:     []zone.MxRecord{{Name: "mail.example.com.", TTL: 3600, Prio: 10}},
		Hosts: []zone.AddressRecord{
			{Name: "www.example.com.", Addr: netip.MustParseAddr("192.0.2.10"), TTL: 3600},
			{Name: "www.example.com.", Addr: netip.MustParseAddr("2001:db8::10"), TTL: 3600},
			{Name: "mail.example.com.", Addr: netip.MustParseAddr("192.0.2.20"), TTL: 60},
		},
		CNAME: []zone.CnameRecord{{Name: "blog.example.com.", Target: "www.example.com.", TTL: 3600}},
		SRV: []zone.SrvRecord{
			{Name: "_http._tcp.example.com.", Target: "www.example.com.", TTL: 3600, Prio: 0, Weight: 5, Port: 80},
		},
	}

	rheader := header
	rheader.Name = "1.168.192.in-addr.arpa."
	rz := &zone.Reverse{
		Header: rheader,
		Split:  1,
		PTR: []zone.PtrRecord{
			{Name: "alpha.example.com.", Addr: netip.MustParseAddr("192.168.1.10"), TTL: 3600},
		},
	}

	return &zone.Model{Forward: []*zone.Forward{fz}, Reverse: []*zone.Reverse{rz}}
}

func TestUnbound(t *testing.T) {
	out := Unbound(testModel())

	require.True(t, strings.HasPrefix(out, "server:\n"))
	require.Contains(t, out, "local-zone:  example.com. static\n")

	soaName := "example.com." + strings.Repeat(" ", 42-len("example.com."))
	require.Contains(t, out,
		`local-data: "`+soaName+` 3600 IN SOA  ns1.example.com. hostmaster.example.com. 2025083000 10800 3600 604800 3600"`)

	// records at the zone TTL render without one
	require.Contains(t, out, ` IN NS   ns1.example.com."`)
	require.Contains(t, out, ` IN MX   10 mail.example.com."`)
	require.Contains(t, out, ` IN A    192.0.2.10"`)
	require.Contains(t, out, ` IN AAAA 2001:db8::10"`)
	require.Contains(t, out, ` 60 IN A    192.0.2.20"`)
	require.Contains(t, out, ` CNAME   www.example.com."`)
	require.Contains(t, out, ` IN SRV  0 5 80 www.example.com."`)

	require.Contains(t, out, "local-zone:      1.168.192.in-addr.arpa. static\n")
	require.Contains(t, out, `local-data-ptr: "192.168.1.10`)
	require.Contains(t, out, ` alpha.example.com."`)

	// CNAME comes before SRV
	require.Less(t, strings.Index(out, "CNAME"), strings.Index(out, "SRV"))
}

func TestNsdRow(t *testing.T) {
	require.Equal(t,
		"www"+strings.Repeat(" ", 28)+" A       192.0.2.10\n",
		nsdRow("www", 3600, 3600, "A", "192.0.2.10"))
	require.Equal(t,
		"www"+strings.Repeat(" ", 25)+" 60 A       192.0.2.10\n",
		nsdRow("www", 60, 3600, "A", "192.0.2.10"))
	require.Equal(t,
		strings.Repeat(" ", 31)+" NS      ns1.example.com.\n",
		nsdRow("", 3600, 3600, "NS", "ns1.example.com."))

	// an over-long owner eats into the type column instead of breaking
	long := strings.Repeat("a", 40)
	row := nsdRow(long, 3600, 3600, "A", "192.0.2.10")
	require.True(t, strings.HasPrefix(row, long))
	require.True(t, strings.HasSuffix(row, "192.0.2.10\n"))
}

func TestNSD(t *testing.T) {
	st := NewStage()
	NSD(st, testModel())

	conf, ok := st.files["zones.conf"]
	require.True(t, ok)
	require.Contains(t, conf, "name: example.com.\n")
	require.Contains(t, conf, "zonefile: master/example.com.zone\n")
	require.Contains(t, conf, "name: 1.168.192.in-addr.arpa.\n")

	zf, ok := st.files["master/example.com.zone"]
	require.True(t, ok)
	require.Contains(t, zf, "$ORIGIN example.com.\n")
	require.Contains(t, zf, "$TTL 3600\n")
	require.Contains(t, zf, "IN SOA     ns1.example.com. hostmaster.example.com. (")
	require.Contains(t, zf, "2025083000  ; serial number")
	require.Contains(t, zf, "10800       ; refresh")
	require.Contains(t, zf, "NS      ns1.example.com.\n")
	require.Contains(t, zf, "MX   10 mail.example.com.\n")
	require.Contains(t, zf, "A       192.0.2.10\n")
	require.Contains(t, zf, "AAAA    2001:db8::10\n")
	require.Contains(t, zf, "CNAME   www.example.com.\n")
	require.Contains(t, zf, "SRV     0 5 80 www.example.com.\n")

	// consecutive rows for the same owner elide the name
	lines := strings.Split(zf, "\n")
	var wwwRows []string
	for _, l := range lines {
		if strings.Contains(l, "192.0.2.10") || strings.Contains(l, "2001:db8::10") {
			wwwRows = append(wwwRows, l)
		}
	}
	require.Len(t, wwwRows, 2)
	require.True(t, strings.HasPrefix(wwwRows[0], "www "))
	require.True(t, strings.HasPrefix(wwwRows[1], " "))

	rf, ok := st.files["master/1.168.192.in-addr.arpa.zone"]
	require.True(t, ok)
	require.Contains(t, rf, "$ORIGIN 1.168.192.in-addr.arpa.\n")
	require.Contains(t, rf, "PTR     alpha.example.com.\n")
	require.True(t, strings.Contains(rf, "\n10 ") || strings.Contains(rf, "\n10\t"), "PTR owner should be the local octet")
}
