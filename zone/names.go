package zone

import (
	"fmt"
	"net/netip"
	"strings"

	"github.com/miekg/dns"
)

// hostFQDN expands a declared name to fully qualified form: a trailing
// dot is taken as-is, "@" means the zone apex, and a bare label is
// placed under the zone.
func hostFQDN(name, zoneName string) (string, error) {
	host := strings.TrimSpace(name)
	if dns.IsFqdn(host) {
		return host, nil
	}
	if zoneName == "" {
		return "", fmt.Errorf("host must be a FQDN, got %s", host)
	}
	if host == "@" {
		return zoneName, nil
	}
	return host + "." + zoneName, nil
}

// rname converts user@domain into the SOA RNAME form: dots in the
// local part are escaped and the domain is made fully qualified.
func rname(email string) string {
	local, domain, _ := strings.Cut(email, "@")
	local = strings.ReplaceAll(local, ".", `\.`)
	return local + "." + dns.Fqdn(domain)
}

// reverseZoneName derives the arpa zone name for a network, plus the
// split: how many leading labels of a full reverse owner name are local
// to that zone (octets for v4, nibbles for v6).
func reverseZoneName(p netip.Prefix) (string, int) {
	addr := p.Masked().Addr()
	var split int
	if addr.Is4() {
		split = (32 - p.Bits()) / 8
	} else {
		split = (128 - p.Bits()) / 4
	}
	full, _ := dns.ReverseAddr(addr.String())
	labels := dns.SplitDomainName(full)
	return strings.Join(labels[split:], ".") + ".", split
}

// ReverseName returns the full reverse-DNS owner name for an address
// (dotted octets under in-addr.arpa., nibbles under ip6.arpa.).
func ReverseName(addr netip.Addr) string {
	full, _ := dns.ReverseAddr(addr.String())
	return full
}

// PtrOwner returns the owner name of a PTR record relative to a
// reverse zone with the given split.
func PtrOwner(addr netip.Addr, split int) string {
	full, _ := dns.ReverseAddr(addr.String())
	labels := dns.SplitDomainName(full)
	if split > len(labels) {
		split = len(labels)
	}
	return strings.Join(labels[:split], ".")
}
