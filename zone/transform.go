package zone

import (
	"fmt"
	"net/netip"
	"sort"
	"strings"

	"github.com/henrikvtcodes/osmium/config"
)

// TransformError reports a derivation-time conflict for one zone or
// reverse network.
type TransformError struct {
	Zone string
	Msg  string
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("zone %s: %s", e.Zone, e.Msg)
}

func terrf(zone, format string, args ...any) *TransformError {
	return &TransformError{Zone: zone, Msg: fmt.Sprintf(format, args...)}
}

// Build derives the complete record model from a validated document.
// Every zone produced in the same run carries the same serial. A
// failure in any zone or network aborts the whole build.
func Build(doc *config.Document, serial uint32) (*Model, error) {
	m := &Model{}
	ptrs := make(map[netip.Addr]PtrRecord)

	for i := range doc.Zones {
		fz, cands, err := buildForward(&doc.Zones[i], doc.Defaults, serial)
		if err != nil {
			return nil, err
		}
		for _, p := range cands {
			if dup, ok := ptrs[p.Addr]; ok {
				return nil, terrf(fz.Name, "duplicate PTR record for %s (%s and %s)", p.Addr, dup.Name, p.Name)
			}
			ptrs[p.Addr] = p
		}
		m.Forward = append(m.Forward, fz)
	}

	reverse, err := buildReverse(doc, serial, ptrs)
	if err != nil {
		return nil, err
	}
	m.Reverse = reverse
	return m, nil
}

func buildForward(z *config.ZoneConfig, d config.Defaults, serial uint32) (*Forward, []PtrRecord, error) {
	name := z.Name
	res := resolveZone(d, z)

	if res.Retry >= res.Refresh {
		return nil, nil, terrf(name, "retry (%d) must be less than refresh (%d)", res.Retry, res.Refresh)
	}
	if res.Email == "" {
		return nil, nil, terrf(name, "email is required")
	}

	ns, err := nsRecords(z.Nameserver, d.Nameserver, name, res.TTL)
	if err != nil {
		return nil, nil, err
	}

	fz := &Forward{
		Header: Header{
			Name:        name,
			Email:       rname(res.Email),
			Serial:      serial,
			Refresh:     res.Refresh,
			Retry:       res.Retry,
			Expire:      res.Expire,
			NrcTTL:      res.NrcTTL,
			TTL:         res.TTL,
			Nameservers: ns,
		},
	}

	// Owner bookkeeping for CNAME conflict detection. The apex is
	// always taken: SOA and NS live there.
	owners := map[string]string{name: "SOA"}

	var ptrCands []PtrRecord
	for i := range z.Hosts {
		h := &z.Hosts[i]
		owner, err := hostFQDN(h.Name, name)
		if err != nil {
			return nil, nil, terrf(name, "%v", err)
		}
		if err := config.ValidateName(owner); err != nil {
			return nil, nil, terrf(name, "%v", err)
		}
		aliases := make([]string, 0, len(h.Aliases))
		for _, a := range h.Aliases {
			fqdn, err := hostFQDN(a, name)
			if err != nil {
				return nil, nil, terrf(name, "%v", err)
			}
			if err := config.ValidateName(fqdn); err != nil {
				return nil, nil, terrf(name, "%v", err)
			}
			aliases = append(aliases, fqdn)
		}

		ttl := u32(h.TTL, res.TTL)
		withPtr := boolOr(h.WithPtr, res.WithPtr)
		for _, addr := range h.IPs {
			fz.Hosts = append(fz.Hosts, AddressRecord{Name: owner, Addr: addr, TTL: ttl})
			owners[owner] = "address"
			for _, alias := range aliases {
				fz.Hosts = append(fz.Hosts, AddressRecord{Name: alias, Addr: addr, TTL: ttl})
				owners[alias] = "address"
			}
			if withPtr && !strings.HasPrefix(owner, "*") {
				ptrCands = append(ptrCands, PtrRecord{Name: owner, Addr: addr, TTL: ttl})
			}
		}
	}

	fz.MX, err = mxRecords(z.MX, d.MX, name, res.TTL, res.MxPrio)
	if err != nil {
		return nil, nil, err
	}

	for i := range z.SRV {
		s := &z.SRV[i]
		owner, err := hostFQDN(s.Name, name)
		if err != nil {
			return nil, nil, terrf(name, "%v", err)
		}
		target, err := hostFQDN(s.Target, name)
		if err != nil {
			return nil, nil, terrf(name, "%v", err)
		}
		if err := config.ValidateName(target); err != nil {
			return nil, nil, terrf(name, "%v", err)
		}
		fz.SRV = append(fz.SRV, SrvRecord{
			Name:   owner,
			Target: target,
			TTL:    u32(s.TTL, res.TTL),
			Prio:   u16(s.Prio, res.SrvPrio),
			Weight: u16(s.Weight, res.SrvWeight),
			Port:   s.Port,
		})
		owners[owner] = "SRV"
	}

	for i := range z.CNAME {
		c := &z.CNAME[i]
		owner, err := hostFQDN(c.Name, name)
		if err != nil {
			return nil, nil, terrf(name, "%v", err)
		}
		if err := config.ValidateName(owner); err != nil {
			return nil, nil, terrf(name, "%v", err)
		}
		target, err := hostFQDN(c.Target, name)
		if err != nil {
			return nil, nil, terrf(name, "%v", err)
		}
		if err := config.ValidateName(target); err != nil {
			return nil, nil, terrf(name, "%v", err)
		}
		if kind, taken := owners[owner]; taken {
			return nil, nil, terrf(name, "CNAME %s collides with an existing %s record", owner, kind)
		}
		owners[owner] = "CNAME"
		fz.CNAME = append(fz.CNAME, CnameRecord{Name: owner, Target: target, TTL: u32(c.TTL, res.TTL)})
	}

	return fz, ptrCands, nil
}

// nsRecords expands the zone's nameserver list, falling back to the
// global defaults. A zone without any nameserver is an error.
func nsRecords(entries []config.NsEntry, defaults []string, zoneName string, ttl uint32) ([]NsRecord, error) {
	if len(entries) == 0 {
		if len(defaults) == 0 {
			return nil, terrf(zoneName, "zone needs a nameserver")
		}
		out := make([]NsRecord, 0, len(defaults))
		for _, name := range defaults {
			out = append(out, NsRecord{Name: name, TTL: ttl})
		}
		return out, nil
	}
	out := make([]NsRecord, 0, len(entries))
	for _, e := range entries {
		fqdn, err := hostFQDN(e.Name, zoneName)
		if err != nil {
			return nil, terrf(zoneName, "%v", err)
		}
		if err := config.ValidateName(fqdn); err != nil {
			return nil, terrf(zoneName, "%v", err)
		}
		out = append(out, NsRecord{Name: fqdn, TTL: u32(e.TTL, ttl)})
	}
	return out, nil
}

func mxRecords(entries, defaults []config.MxEntry, zoneName string, ttl uint32, prio uint16) ([]MxRecord, error) {
	if len(entries) == 0 {
		entries = defaults
	}
	out := make([]MxRecord, 0, len(entries))
	for _, e := range entries {
		fqdn, err := hostFQDN(e.Name, zoneName)
		if err != nil {
			return nil, terrf(zoneName, "%v", err)
		}
		if err := config.ValidateName(fqdn); err != nil {
			return nil, terrf(zoneName, "%v", err)
		}
		out = append(out, MxRecord{Name: fqdn, TTL: u32(e.TTL, ttl), Prio: u16(e.Prio, prio)})
	}
	return out, nil
}

// buildReverse derives one reverse zone per declared network, claiming
// every PTR candidate that falls inside its range. Candidates matching
// no network are dropped without error; overlapping networks are
// rejected.
func buildReverse(doc *config.Document, serial uint32, ptrs map[netip.Addr]PtrRecord) ([]*Reverse, error) {
	var out []*Reverse
	var seen []netip.Prefix

	for i := range doc.Reverse {
		r := &doc.Reverse[i]
		for _, prev := range seen {
			if prev.Overlaps(r.Prefix) {
				return nil, terrf(r.Prefix.String(), "reverse zone networks overlap: %s and %s", r.Prefix, prev)
			}
		}
		seen = append(seen, r.Prefix)

		name, split := reverseZoneName(r.Prefix)
		res := resolveReverse(doc.Defaults, r)

		if res.Retry >= res.Refresh {
			return nil, terrf(name, "retry (%d) must be less than refresh (%d)", res.Retry, res.Refresh)
		}
		if res.Email == "" {
			return nil, terrf(name, "email is required")
		}

		ns, err := nsRecords(r.Nameserver, doc.Defaults.Nameserver, name, res.TTL)
		if err != nil {
			return nil, err
		}

		rz := &Reverse{
			Header: Header{
				Name:        name,
				Email:       rname(res.Email),
				Serial:      serial,
				Refresh:     res.Refresh,
				Retry:       res.Retry,
				Expire:      res.Expire,
				NrcTTL:      res.NrcTTL,
				TTL:         res.TTL,
				Nameservers: ns,
			},
			Split: split,
		}

		for addr, p := range ptrs {
			if r.Prefix.Contains(addr) {
				rz.PTR = append(rz.PTR, p)
				delete(ptrs, addr)
			}
		}
		sort.Slice(rz.PTR, func(i, j int) bool {
			return rz.PTR[i].Addr.Less(rz.PTR[j].Addr)
		})

		out = append(out, rz)
	}
	return out, nil
}
