package zone

import (
	"net/netip"
	"testing"

	"github.com/henrikvtcodes/osmium/config"
	"github.com/stretchr/testify/require"
)

func baseDefaults() config.Defaults {
	d := config.NewDefaults()
	d.Email = "hostmaster@example.com"
	d.Nameserver = []string{"ns1.example.com."}
	return d
}

func addr(s string) netip.Addr { return netip.MustParseAddr(s) }

func u32p(v uint32) *uint32 { return &v }
func u16p(v uint16) *uint16 { return &v }
func boolp(v bool) *bool    { return &v }

func TestBuildForwardZone(t *testing.T) {
	doc := &config.Document{
		Defaults: baseDefaults(),
		Zones: []config.ZoneConfig{{
			Name: "example.com.",
			Hosts: []config.HostEntry{
				{Name: "www", IPs: []netip.Addr{addr("192.0.2.10")}},
				{Name: "mail", IPs: []netip.Addr{addr("192.0.2.20"), addr("2001:db8::20")}, Aliases: []string{"smtp"}, TTL: u32p(60)},
			},
			MX: []config.MxEntry{{Name: "mail"}},
			CNAME: []config.CnameEntry{
				{Name: "blog", Target: "www"},
			},
			SRV: []config.SrvEntry{
				{Name: "_http._tcp", Target: "www", Port: 80},
			},
		}},
	}

	m, err := Build(doc, 2025083001)
	require.NoError(t, err)
	require.Len(t, m.Forward, 1)
	z := m.Forward[0]

	require.Equal(t, "example.com.", z.Name)
	require.Equal(t, "hostmaster.example.com.", z.Email)
	require.EqualValues(t, 2025083001, z.Serial)
	require.EqualValues(t, config.DefaultTTL, z.TTL)
	require.Equal(t, []NsRecord{{Name: "ns1.example.com.", TTL: config.DefaultTTL}}, z.Nameservers)

	require.Equal(t, []AddressRecord{
		{Name: "www.example.com.", Addr: addr("192.0.2.10"), TTL: 3600},
		{Name: "mail.example.com.", Addr: addr("192.0.2.20"), TTL: 60},
		{Name: "smtp.example.com.", Addr: addr("192.0.2.20"), TTL: 60},
		{Name: "mail.example.com.", Addr: addr("2001:db8::20"), TTL: 60},
		{Name: "smtp.example.com.", Addr: addr("2001:db8::20"), TTL: 60},
	}, z.Hosts)

	require.Equal(t, []MxRecord{{Name: "mail.example.com.", TTL: 3600, Prio: config.DefaultMxPrio}}, z.MX)
	require.Equal(t, []CnameRecord{{Name: "blog.example.com.", Target: "www.example.com.", TTL: 3600}}, z.CNAME)
	require.Equal(t, []SrvRecord{{
		Name:   "_http._tcp.example.com.",
		Target: "www.example.com.",
		TTL:    3600,
		Prio:   config.DefaultSrvPrio,
		Weight: config.DefaultSrvWeight,
		Port:   80,
	}}, z.SRV)
}

func TestBuildReverseClaimsPTRs(t *testing.T) {
	doc := &config.Document{
		Defaults: baseDefaults(),
		Zones: []config.ZoneConfig{{
			Name: "example.com.",
			Hosts: []config.HostEntry{
				{Name: "beta", IPs: []netip.Addr{addr("192.168.1.20")}},
				{Name: "alpha", IPs: []netip.Addr{addr("192.168.1.10")}},
				{Name: "outside", IPs: []netip.Addr{addr("203.0.113.5")}},
			},
		}},
		Reverse: []config.ReverseNetwork{
			{Prefix: netip.MustParsePrefix("192.168.1.0/24")},
		},
	}

	m, err := Build(doc, 1)
	require.NoError(t, err)
	require.Len(t, m.Reverse, 1)
	rz := m.Reverse[0]

	require.Equal(t, "1.168.192.in-addr.arpa.", rz.Name)
	require.Equal(t, 1, rz.Split)
	// sorted by address, and the address outside the network is dropped
	require.Equal(t, []PtrRecord{
		{Name: "alpha.example.com.", Addr: addr("192.168.1.10"), TTL: 3600},
		{Name: "beta.example.com.", Addr: addr("192.168.1.20"), TTL: 3600},
	}, rz.PTR)
	require.Equal(t, "10", PtrOwner(rz.PTR[0].Addr, rz.Split))
}

func TestBuildNoPtrForOptOutAndWildcard(t *testing.T) {
	doc := &config.Document{
		Defaults: baseDefaults(),
		Zones: []config.ZoneConfig{{
			Name: "example.com.",
			Hosts: []config.HostEntry{
				{Name: "hidden", IPs: []netip.Addr{addr("192.168.1.10")}, WithPtr: boolp(false)},
				{Name: "*", IPs: []netip.Addr{addr("192.168.1.11")}},
			},
		}},
		Reverse: []config.ReverseNetwork{
			{Prefix: netip.MustParsePrefix("192.168.1.0/24")},
		},
	}

	m, err := Build(doc, 1)
	require.NoError(t, err)
	require.Empty(t, m.Reverse[0].PTR)
	// the wildcard still produces its A record
	require.Equal(t, "*.example.com.", m.Forward[0].Hosts[1].Name)
}

func TestBuildDuplicatePTR(t *testing.T) {
	doc := &config.Document{
		Defaults: baseDefaults(),
		Zones: []config.ZoneConfig{{
			Name: "example.com.",
			Hosts: []config.HostEntry{
				{Name: "one", IPs: []netip.Addr{addr("192.168.1.10")}},
				{Name: "two", IPs: []netip.Addr{addr("192.168.1.10")}},
			},
		}},
	}

	_, err := Build(doc, 1)
	require.Error(t, err)
	require.Contains(t, err.Error(), "duplicate PTR record for 192.168.1.10")
}

func TestBuildCnameCollisions(t *testing.T) {
	base := func() *config.Document {
		return &config.Document{
			Defaults: baseDefaults(),
			Zones: []config.ZoneConfig{{
				Name: "example.com.",
				Hosts: []config.HostEntry{
					{Name: "www", IPs: []netip.Addr{addr("192.0.2.1")}},
				},
			}},
		}
	}

	doc := base()
	doc.Zones[0].CNAME = []config.CnameEntry{{Name: "www", Target: "other"}}
	_, err := Build(doc, 1)
	require.Error(t, err)
	require.Contains(t, err.Error(), "CNAME www.example.com. collides with an existing address record")

	doc = base()
	doc.Zones[0].CNAME = []config.CnameEntry{{Name: "@", Target: "www"}}
	_, err = Build(doc, 1)
	require.Error(t, err)
	require.Contains(t, err.Error(), "collides with an existing SOA record")

	doc = base()
	doc.Zones[0].CNAME = []config.CnameEntry{
		{Name: "blog", Target: "www"},
		{Name: "blog", Target: "www"},
	}
	_, err = Build(doc, 1)
	require.Error(t, err)
	require.Contains(t, err.Error(), "collides with an existing CNAME record")
}

func TestBuildRetryMustBeBelowRefresh(t *testing.T) {
	doc := &config.Document{
		Defaults: baseDefaults(),
		Zones: []config.ZoneConfig{{
			Name:    "example.com.",
			Refresh: u32p(600),
			Retry:   u32p(600),
		}},
	}
	_, err := Build(doc, 1)
	require.Error(t, err)
	require.Contains(t, err.Error(), "retry (600) must be less than refresh (600)")
}

func TestBuildEmailRequired(t *testing.T) {
	d := config.NewDefaults()
	d.Nameserver = []string{"ns1.example.com."}
	doc := &config.Document{
		Defaults: d,
		Zones:    []config.ZoneConfig{{Name: "example.com."}},
	}
	_, err := Build(doc, 1)
	require.Error(t, err)
	require.Equal(t, "zone example.com.: email is required", err.Error())
}

func TestBuildNameserverRequired(t *testing.T) {
	d := config.NewDefaults()
	d.Email = "hostmaster@example.com"
	doc := &config.Document{
		Defaults: d,
		Zones:    []config.ZoneConfig{{Name: "example.com."}},
	}
	_, err := Build(doc, 1)
	require.Error(t, err)
	require.Contains(t, err.Error(), "zone needs a nameserver")
}

func TestBuildZoneNameserverOverride(t *testing.T) {
	doc := &config.Document{
		Defaults: baseDefaults(),
		Zones: []config.ZoneConfig{{
			Name: "example.com.",
			Nameserver: []config.NsEntry{
				{Name: "ns9"},
				{Name: "ns.other.net.", TTL: u32p(7200)},
			},
		}},
	}
	m, err := Build(doc, 1)
	require.NoError(t, err)
	require.Equal(t, []NsRecord{
		{Name: "ns9.example.com.", TTL: 3600},
		{Name: "ns.other.net.", TTL: 7200},
	}, m.Forward[0].Nameservers)
}

func TestBuildDefaultMXExpandsPerZone(t *testing.T) {
	d := baseDefaults()
	d.MX = []config.MxEntry{{Name: "mail", Prio: u16p(5)}}
	doc := &config.Document{
		Defaults: d,
		Zones: []config.ZoneConfig{
			{Name: "example.com."},
			{Name: "example.net.", MX: []config.MxEntry{{Name: "mx.example.net."}}},
		},
	}
	m, err := Build(doc, 1)
	require.NoError(t, err)
	require.Equal(t, []MxRecord{{Name: "mail.example.com.", TTL: 3600, Prio: 5}}, m.Forward[0].MX)
	require.Equal(t, []MxRecord{{Name: "mx.example.net.", TTL: 3600, Prio: 10}}, m.Forward[1].MX)
}

func TestBuildOverlappingReverseNetworks(t *testing.T) {
	doc := &config.Document{
		Defaults: baseDefaults(),
		Reverse: []config.ReverseNetwork{
			{Prefix: netip.MustParsePrefix("10.0.0.0/8")},
			{Prefix: netip.MustParsePrefix("10.1.0.0/16")},
		},
	}
	_, err := Build(doc, 1)
	require.Error(t, err)
	require.Contains(t, err.Error(), "reverse zone networks overlap")
}

func TestBuildReverseOverrides(t *testing.T) {
	doc := &config.Document{
		Defaults: baseDefaults(),
		Reverse: []config.ReverseNetwork{{
			Prefix: netip.MustParsePrefix("10.0.0.0/16"),
			Email:  "noc@example.com",
			TTL:    u32p(900),
		}},
	}
	m, err := Build(doc, 1)
	require.NoError(t, err)
	rz := m.Reverse[0]
	require.Equal(t, "0.10.in-addr.arpa.", rz.Name)
	require.Equal(t, "noc.example.com.", rz.Email)
	require.EqualValues(t, 900, rz.TTL)
	require.EqualValues(t, config.DefaultRefresh, rz.Refresh)
}
