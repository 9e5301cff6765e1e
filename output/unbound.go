package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/henrikvtcodes/osmium/zone"
)

// Column width for the name field in unbound output.
const unboundColumnWidth = 46

// ttlField elides a record TTL that matches the zone TTL.
func ttlField(recordTTL, zoneTTL uint32) string {
	if recordTTL == zoneTTL {
		return ""
	}
	return strconv.FormatUint(uint64(recordTTL), 10)
}

// Unbound renders the whole model as a single local-zone/local-data
// configuration blob.
func Unbound(m *zone.Model) string {
	var b strings.Builder

	fmt.Fprintln(&b, "server:")

	for _, z := range m.Forward {
		zoneTTL := z.TTL
		fmt.Fprintf(&b, "local-zone:  %s static\n", z.Name)

		ttl := strconv.FormatUint(uint64(zoneTTL), 10)
		ns := z.Nameservers[0].Name
		fmt.Fprintf(&b, "local-data: \"%-*s %s IN SOA  %s %s %d %d %d %d %d\"\n",
			unboundColumnWidth-len(ttl), z.Name, ttl,
			ns, z.Email, z.Serial, z.Refresh, z.Retry, z.Expire, z.NrcTTL)

		for _, rec := range z.Nameservers {
			ttl := ttlField(rec.TTL, zoneTTL)
			fmt.Fprintf(&b, "local-data: \"%-*s %s IN NS   %s\"\n",
				unboundColumnWidth-len(ttl), z.Name, ttl, rec.Name)
		}

		for _, mx := range z.MX {
			ttl := ttlField(mx.TTL, zoneTTL)
			fmt.Fprintf(&b, "local-data: \"%-*s %s IN MX   %d %s\"\n",
				unboundColumnWidth-len(ttl), z.Name, ttl, mx.Prio, mx.Name)
		}

		for _, host := range z.Hosts {
			ttl := ttlField(host.TTL, zoneTTL)
			rtype := "A   "
			if host.Addr.Is6() {
				rtype = "AAAA"
			}
			fmt.Fprintf(&b, "local-data: \"%-*s %s IN %s %s\"\n",
				unboundColumnWidth-len(ttl), host.Name, ttl, rtype, host.Addr)
		}

		for _, c := range z.CNAME {
			ttl := ttlField(c.TTL, zoneTTL)
			fmt.Fprintf(&b, "local-data: \"%-*s %s CNAME   %s\"\n",
				unboundColumnWidth-len(ttl), c.Name, ttl, c.Target)
		}

		for _, srv := range z.SRV {
			ttl := ttlField(srv.TTL, zoneTTL)
			fmt.Fprintf(&b, "local-data: \"%-*s %s IN SRV  %d %d %d %s\"\n",
				unboundColumnWidth-len(ttl), srv.Name, ttl, srv.Prio, srv.Weight, srv.Port, srv.Target)
		}

		b.WriteString("\n")
	}

	for _, z := range m.Reverse {
		zoneTTL := z.TTL
		fmt.Fprintf(&b, "local-zone:      %s static\n", z.Name)

		ttl := strconv.FormatUint(uint64(zoneTTL), 10)
		ns := z.Nameservers[0].Name
		fmt.Fprintf(&b, "local-data:     \"%-*s %s IN SOA  %s %s %d %d %d %d %d\"\n",
			unboundColumnWidth-len(ttl), z.Name, ttl,
			ns, z.Email, z.Serial, z.Refresh, z.Retry, z.Expire, z.NrcTTL)

		for _, rec := range z.Nameservers {
			ttl := ttlField(rec.TTL, zoneTTL)
			fmt.Fprintf(&b, "local-data:     \"%-*s %s IN NS   %s\"\n",
				unboundColumnWidth-len(ttl), z.Name, ttl, rec.Name)
		}

		for _, ptr := range z.PTR {
			ttl := ttlField(ptr.TTL, zoneTTL)
			fmt.Fprintf(&b, "local-data-ptr: \"%-*s %s %s\"\n",
				unboundColumnWidth-len(ttl), ptr.Addr, ttl, ptr.Name)
		}

		b.WriteString("\n")
	}

	return b.String()
}
