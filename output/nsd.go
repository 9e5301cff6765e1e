package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/henrikvtcodes/osmium/zone"
)

// Column width for the name field in NSD zone files.
const nsdColumnWidth = 32

// nsdRow formats one record row: owner (elided when repeating), TTL
// (elided when equal to the zone TTL), type, and data.
func nsdRow(value string, recordTTL, zoneTTL uint32, recordType, data string) string {
	ttl := ""
	if recordTTL != zoneTTL {
		ttl = strconv.FormatUint(uint64(recordTTL), 10)
	}
	var valueTTL string
	if ttl == "" {
		valueTTL = fmt.Sprintf("%-*s", nsdColumnWidth-1, value)
	} else {
		valueTTL = fmt.Sprintf("%-*s %s", nsdColumnWidth-len(ttl)-2, value, ttl)
	}
	excess := len(valueTTL) - nsdColumnWidth - 1
	if excess < 0 {
		excess = 0
	}
	typeLen := 7 - excess
	if typeLen < 0 {
		typeLen = 0
	}
	return fmt.Sprintf("%s %-*s %s\n", valueTTL, typeLen, recordType, data)
}

// nsdHeader writes the $ORIGIN/$TTL preamble, the SOA, and the NS rows.
func nsdHeader(h *zone.Header) string {
	var b strings.Builder
	indent := strings.Repeat(" ", nsdColumnWidth)

	fmt.Fprintf(&b, "$ORIGIN %s\n", h.Name)
	fmt.Fprintf(&b, "$TTL %d\n\n", h.TTL)

	fmt.Fprintf(&b, "@                            IN SOA     %s %s (\n", h.Nameservers[0].Name, h.Email)
	fmt.Fprintf(&b, "%s           %-12d; serial number\n", indent, h.Serial)
	fmt.Fprintf(&b, "%s           %-12d; refresh\n", indent, h.Refresh)
	fmt.Fprintf(&b, "%s           %-12d; retry\n", indent, h.Retry)
	fmt.Fprintf(&b, "%s           %-12d; expire\n", indent, h.Expire)
	fmt.Fprintf(&b, "%s           %-12d; min ttl\n", indent, h.NrcTTL)
	fmt.Fprintf(&b, "%s        )\n", indent)

	for _, ns := range h.Nameservers {
		b.WriteString(nsdRow("", ns.TTL, h.TTL, "NS", ns.Name))
	}
	return b.String()
}

// stripName rewrites a fully qualified owner relative to its zone, with
// "@" for the apex.
func stripName(name, zoneName string) string {
	if name == zoneName {
		return "@"
	}
	return strings.TrimSuffix(name, "."+zoneName)
}

// NSD renders one zone file per zone plus a zones.conf index into the
// stage. Zone files land under master/, matching the layout the
// zones.conf entries point at.
func NSD(st *Stage, m *zone.Model) {
	var conf strings.Builder

	addConf := func(name string) {
		fmt.Fprintf(&conf, "zone:\n")
		fmt.Fprintf(&conf, "    name: %s\n", name)
		fmt.Fprintf(&conf, "    zonefile: master/%szone\n\n", name)
	}

	for _, z := range m.Forward {
		zoneTTL := z.TTL
		var b strings.Builder
		addConf(z.Name)

		b.WriteString(nsdHeader(&z.Header))

		for _, mx := range z.MX {
			rtype := fmt.Sprintf("MX %4d", mx.Prio)
			b.WriteString(nsdRow("", mx.TTL, zoneTTL, rtype, mx.Name))
		}

		owner := ""
		for _, host := range z.Hosts {
			name := stripName(host.Name, z.Name)
			row := name
			if owner == name {
				row = ""
			} else {
				owner = name
			}
			rtype := "A"
			if host.Addr.Is6() {
				rtype = "AAAA"
			}
			b.WriteString(nsdRow(row, host.TTL, zoneTTL, rtype, host.Addr.String()))
		}

		for _, c := range z.CNAME {
			b.WriteString(nsdRow(stripName(c.Name, z.Name), c.TTL, zoneTTL, "CNAME", c.Target))
		}

		for _, srv := range z.SRV {
			data := fmt.Sprintf("%d %d %d %s", srv.Prio, srv.Weight, srv.Port, srv.Target)
			b.WriteString(nsdRow(stripName(srv.Name, z.Name), srv.TTL, zoneTTL, "SRV", data))
		}

		st.Add(fmt.Sprintf("master/%szone", z.Name), b.String())
	}

	for _, z := range m.Reverse {
		zoneTTL := z.TTL
		var b strings.Builder
		addConf(z.Name)

		b.WriteString(nsdHeader(&z.Header))

		for _, ptr := range z.PTR {
			b.WriteString(nsdRow(zone.PtrOwner(ptr.Addr, z.Split), ptr.TTL, zoneTTL, "PTR", ptr.Name))
		}

		st.Add(fmt.Sprintf("master/%szone", z.Name), b.String())
	}

	st.Add("zones.conf", conf.String())
}
