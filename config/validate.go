package config

import (
	"fmt"
	"net/netip"
	"strings"

	"github.com/miekg/dns"
)

// validator walks a RawNode tree and accumulates every field error it
// finds. Semantic violations never short-circuit; only a node whose
// shape is structurally wrong stops descent into that subtree.
type validator struct {
	errs []*FieldError
}

func (v *validator) errorf(n *RawNode, format string, args ...any) {
	v.errs = append(v.errs, &FieldError{
		Path:    n.Path,
		Line:    n.Line(),
		Column:  n.Column(),
		Message: fmt.Sprintf(format, args...),
	})
}

// Validate converts a decoded tree into the typed document, collecting
// all field errors before reporting any of them.
func Validate(root *RawNode, format Format) (*Document, error) {
	v := &validator{}
	doc := &Document{Defaults: NewDefaults()}
	for _, it := range root.Items() {
		switch it.Key {
		case "defaults":
			doc.Defaults = v.defaults(it.Value)
		case "zone":
			doc.Zones = v.zones(it.Value)
		case "reverse":
			doc.Reverse = v.reverse(it.Value)
		default:
			v.errorf(it.KeyNode, "unknown field %q", it.Key)
		}
	}
	if len(v.errs) > 0 {
		return nil, &ErrorList{Format: format, Fields: v.errs}
	}
	return doc, nil
}

// listOf flattens the "single value or sequence of values" shape.
func listOf(n *RawNode) []*RawNode {
	if n.IsSequence() {
		return n.Seq()
	}
	return []*RawNode{n}
}

func (v *validator) str(n *RawNode, what string) string {
	s, ok := n.Str()
	if !ok {
		v.errorf(n, "expected a string for %s", what)
	}
	return s
}

func (v *validator) ttl(n *RawNode) *uint32 {
	i, ok := n.Int()
	if !ok {
		v.errorf(n, "expected a positive TTL value (1-2147483647)")
		return nil
	}
	switch {
	case i < 0:
		v.errorf(n, "TTL cannot be negative")
	case i == 0:
		v.errorf(n, "TTL cannot be zero")
	case i > MaxTTL:
		v.errorf(n, "TTL too large (max 2147483647)")
	default:
		t := uint32(i)
		return &t
	}
	return nil
}

func (v *validator) u16(n *RawNode, what string) *uint16 {
	i, ok := n.Int()
	if !ok {
		v.errorf(n, "expected a number for %s", what)
		return nil
	}
	if i < 0 || i > 65535 {
		v.errorf(n, "%s must be in range 0-65535, got %d", what, i)
		return nil
	}
	u := uint16(i)
	return &u
}

func (v *validator) boolean(n *RawNode, what string) *bool {
	b, ok := n.Bool()
	if !ok {
		v.errorf(n, "expected true or false for %s", what)
		return nil
	}
	return &b
}

func (v *validator) email(n *RawNode) string {
	s, ok := n.Str()
	if !ok {
		v.errorf(n, "expected an email address (user@example.com)")
		return ""
	}
	if err := ValidateEmail(s); err != nil {
		v.errorf(n, "invalid email: %v", err)
		return ""
	}
	return s
}

func (v *validator) ip(n *RawNode) (netip.Addr, bool) {
	s, ok := n.Str()
	if !ok {
		v.errorf(n, "expected an IP address")
		return netip.Addr{}, false
	}
	a, err := netip.ParseAddr(s)
	if err != nil {
		v.errorf(n, "'%s' is not a valid IP address", s)
		return netip.Addr{}, false
	}
	return a, true
}

func (v *validator) prefix(n *RawNode, s string) (netip.Prefix, bool) {
	p, err := netip.ParsePrefix(s)
	if err != nil {
		v.errorf(n, "'%s' is not a valid IP network: %v", s, err)
		return netip.Prefix{}, false
	}
	return p.Masked(), true
}

// zoneName normalizes a declared zone name to fully qualified form and
// validates it.
func (v *validator) zoneName(n *RawNode, raw string) string {
	name := dns.Fqdn(strings.TrimSpace(raw))
	if err := ValidateName(name); err != nil {
		v.errorf(n, "%v", err)
		return ""
	}
	return name
}

func (v *validator) defaults(n *RawNode) Defaults {
	d := NewDefaults()
	if !n.IsMapping() {
		v.errorf(n, "defaults must be a mapping")
		return d
	}
	for _, it := range n.Items() {
		switch it.Key {
		case "email":
			d.Email = v.email(it.Value)
		case "nameserver":
			for _, e := range listOf(it.Value) {
				s := v.str(e, "nameserver")
				if s == "" {
					continue
				}
				if err := ValidateName(s); err != nil {
					v.errorf(e, "%v", err)
					continue
				}
				d.Nameserver = append(d.Nameserver, s)
			}
		case "mx":
			d.MX = v.mxList(it.Value)
		case "ttl":
			if t := v.ttl(it.Value); t != nil {
				d.TTL = *t
			}
		case "refresh":
			if t := v.ttl(it.Value); t != nil {
				d.Refresh = *t
			}
		case "retry":
			if t := v.ttl(it.Value); t != nil {
				d.Retry = *t
			}
		case "expire":
			if t := v.ttl(it.Value); t != nil {
				d.Expire = *t
			}
		case "nrc-ttl":
			if t := v.ttl(it.Value); t != nil {
				d.NrcTTL = *t
			}
		case "mx-prio":
			if u := v.u16(it.Value, "mx-prio"); u != nil {
				d.MxPrio = *u
			}
		case "srv-prio":
			if u := v.u16(it.Value, "srv-prio"); u != nil {
				d.SrvPrio = *u
			}
		case "srv-weight":
			if u := v.u16(it.Value, "srv-weight"); u != nil {
				d.SrvWeight = *u
			}
		case "with-ptr":
			if b := v.boolean(it.Value, "with-ptr"); b != nil {
				d.WithPtr = *b
			}
		default:
			v.errorf(it.KeyNode, "unknown field %q", it.Key)
		}
	}
	return d
}

// zones accepts both legal shapes of the zone collection: a map keyed
// by zone name and an array of objects carrying a name field. Both
// normalize to the same ZoneConfig slice.
func (v *validator) zones(n *RawNode) []ZoneConfig {
	switch {
	case n.IsMapping():
		out := make([]ZoneConfig, 0, len(n.Items()))
		for _, it := range n.Items() {
			z := v.zoneBody(it.Value, false)
			z.Name = v.zoneName(it.KeyNode, it.Key)
			out = append(out, z)
		}
		return out
	case n.IsSequence():
		out := make([]ZoneConfig, 0, len(n.Seq()))
		for _, e := range n.Seq() {
			out = append(out, v.zoneBody(e, true))
		}
		return out
	default:
		v.errorf(n, "expected a map of zones {name: {...}} or array of zones with 'name' field")
		return nil
	}
}

func (v *validator) zoneBody(n *RawNode, withName bool) ZoneConfig {
	var z ZoneConfig
	if !n.IsMapping() {
		v.errorf(n, "zone must be a mapping")
		return z
	}
	nameSeen := false
	for _, it := range n.Items() {
		switch it.Key {
		case "name":
			if !withName {
				v.errorf(it.KeyNode, "unknown field \"name\" (the zone name comes from the mapping key)")
				continue
			}
			nameSeen = true
			if raw := v.str(it.Value, "name"); raw != "" {
				z.Name = v.zoneName(it.Value, raw)
			}
		case "email":
			z.Email = v.email(it.Value)
		case "nameserver":
			z.Nameserver = v.nsList(it.Value)
		case "ttl":
			z.TTL = v.ttl(it.Value)
		case "refresh":
			z.Refresh = v.ttl(it.Value)
		case "retry":
			z.Retry = v.ttl(it.Value)
		case "expire":
			z.Expire = v.ttl(it.Value)
		case "nrc-ttl":
			z.NrcTTL = v.ttl(it.Value)
		case "mx-prio":
			z.MxPrio = v.u16(it.Value, "mx-prio")
		case "srv-prio":
			z.SrvPrio = v.u16(it.Value, "srv-prio")
		case "srv-weight":
			z.SrvWeight = v.u16(it.Value, "srv-weight")
		case "with-ptr":
			z.WithPtr = v.boolean(it.Value, "with-ptr")
		case "hosts":
			z.Hosts = v.hosts(it.Value)
		case "mx":
			z.MX = v.mxList(it.Value)
		case "cname":
			z.CNAME = v.cnames(it.Value)
		case "srv":
			z.SRV = v.srvs(it.Value)
		default:
			v.errorf(it.KeyNode, "unknown field %q", it.Key)
		}
	}
	if withName && !nameSeen {
		v.errorf(n, "zone needs a 'name' field")
	}
	return z
}

func (v *validator) nsList(n *RawNode) []NsEntry {
	var out []NsEntry
	for _, e := range listOf(n) {
		if s, ok := e.Str(); ok {
			out = append(out, NsEntry{Name: s})
			continue
		}
		if !e.IsMapping() {
			v.errorf(e, "expected a nameserver name or an object with a 'name' field")
			continue
		}
		var ns NsEntry
		nameSeen := false
		for _, it := range e.Items() {
			switch it.Key {
			case "name":
				ns.Name = v.str(it.Value, "name")
				nameSeen = true
			case "ttl":
				ns.TTL = v.ttl(it.Value)
			default:
				v.errorf(it.KeyNode, "unknown field %q", it.Key)
			}
		}
		if !nameSeen {
			v.errorf(e, "nameserver entry needs a 'name' field")
			continue
		}
		out = append(out, ns)
	}
	return out
}

func (v *validator) mxList(n *RawNode) []MxEntry {
	var out []MxEntry
	for _, e := range listOf(n) {
		if s, ok := e.Str(); ok {
			out = append(out, MxEntry{Name: s})
			continue
		}
		if !e.IsMapping() {
			v.errorf(e, "expected a host name or an object with a 'name' field")
			continue
		}
		var m MxEntry
		nameSeen := false
		for _, it := range e.Items() {
			switch it.Key {
			case "name":
				m.Name = v.str(it.Value, "name")
				nameSeen = true
			case "prio":
				m.Prio = v.u16(it.Value, "prio")
			case "ttl":
				m.TTL = v.ttl(it.Value)
			default:
				v.errorf(it.KeyNode, "unknown field %q", it.Key)
			}
		}
		if !nameSeen {
			v.errorf(e, "mx entry needs a 'name' field")
			continue
		}
		out = append(out, m)
	}
	return out
}

// hosts normalizes the three legal host shapes: a bare IP scalar, a
// list of IPs, or an object with ip/alias/ttl/with-ptr fields.
func (v *validator) hosts(n *RawNode) []HostEntry {
	if !n.IsMapping() {
		v.errorf(n, "hosts must be a mapping of host names")
		return nil
	}
	var out []HostEntry
	for _, it := range n.Items() {
		h := HostEntry{Name: strings.TrimSpace(it.Key)}
		val := it.Value
		switch {
		case val.IsScalar():
			if a, ok := v.ip(val); ok {
				h.IPs = []netip.Addr{a}
			}
		case val.IsSequence():
			for _, e := range val.Seq() {
				if a, ok := v.ip(e); ok {
					h.IPs = append(h.IPs, a)
				}
			}
		case val.IsMapping():
			ipSeen := false
			for _, f := range val.Items() {
				switch f.Key {
				case "ip":
					ipSeen = true
					for _, e := range listOf(f.Value) {
						if a, ok := v.ip(e); ok {
							h.IPs = append(h.IPs, a)
						}
					}
				case "alias":
					for _, e := range listOf(f.Value) {
						if s := v.str(e, "alias"); s != "" {
							h.Aliases = append(h.Aliases, s)
						}
					}
				case "ttl":
					h.TTL = v.ttl(f.Value)
				case "with-ptr":
					h.WithPtr = v.boolean(f.Value, "with-ptr")
				default:
					v.errorf(f.KeyNode, "unknown field %q", f.Key)
				}
			}
			if !ipSeen {
				v.errorf(val, "host entry needs an 'ip' field")
			}
		default:
			v.errorf(val, "expected an IP address, array of IP addresses, or object with 'ip' field")
		}
		out = append(out, h)
	}
	return out
}

func (v *validator) cnames(n *RawNode) []CnameEntry {
	if !n.IsMapping() {
		v.errorf(n, "cname must be a mapping of alias names")
		return nil
	}
	var out []CnameEntry
	for _, it := range n.Items() {
		c := CnameEntry{Name: strings.TrimSpace(it.Key)}
		if s, ok := it.Value.Str(); ok {
			c.Target = s
			out = append(out, c)
			continue
		}
		if !it.Value.IsMapping() {
			v.errorf(it.Value, "expected a target name or an object with a 'target' field")
			continue
		}
		targetSeen := false
		for _, f := range it.Value.Items() {
			switch f.Key {
			case "target":
				c.Target = v.str(f.Value, "target")
				targetSeen = true
			case "ttl":
				c.TTL = v.ttl(f.Value)
			default:
				v.errorf(f.KeyNode, "unknown field %q", f.Key)
			}
		}
		if !targetSeen {
			v.errorf(it.Value, "cname entry needs a 'target' field")
			continue
		}
		out = append(out, c)
	}
	return out
}

func (v *validator) srvs(n *RawNode) []SrvEntry {
	if !n.IsMapping() {
		v.errorf(n, "srv must be a mapping of service names")
		return nil
	}
	var out []SrvEntry
	for _, it := range n.Items() {
		key := strings.TrimSpace(it.Key)
		parts := strings.Split(key, ".")
		switch {
		case len(parts) < 2:
			v.errorf(it.KeyNode, "SRV name '%s' must have at least service and protocol (e.g., '_http._tcp')", key)
		case !strings.HasPrefix(parts[0], "_"):
			v.errorf(it.KeyNode, "SRV service name '%s' must start with '_' (e.g., '_http')", parts[0])
		case !strings.HasPrefix(parts[1], "_"):
			v.errorf(it.KeyNode, "SRV protocol name '%s' must start with '_' (e.g., '_tcp')", parts[1])
		}
		if !it.Value.IsMapping() {
			v.errorf(it.Value, "expected an object with 'target' and 'port' fields")
			continue
		}
		e := SrvEntry{Name: key}
		var targetSeen, portSeen bool
		for _, f := range it.Value.Items() {
			switch f.Key {
			case "target":
				e.Target = v.str(f.Value, "target")
				targetSeen = true
			case "port":
				portSeen = true
				if p := v.u16(f.Value, "port"); p != nil {
					e.Port = *p
				}
			case "prio":
				e.Prio = v.u16(f.Value, "prio")
			case "weight":
				e.Weight = v.u16(f.Value, "weight")
			case "ttl":
				e.TTL = v.ttl(f.Value)
			default:
				v.errorf(f.KeyNode, "unknown field %q", f.Key)
			}
		}
		if !targetSeen {
			v.errorf(it.Value, "srv entry needs a 'target' field")
		}
		if !portSeen {
			v.errorf(it.Value, "srv entry needs a 'port' field")
		}
		out = append(out, e)
	}
	return out
}

// reverse accepts a single CIDR string, a list of CIDR strings, or a
// map of CIDR to per-network overrides.
func (v *validator) reverse(n *RawNode) []ReverseNetwork {
	switch {
	case n.IsScalar():
		if s, ok := n.Str(); ok {
			if p, ok := v.prefix(n, s); ok {
				return []ReverseNetwork{{Prefix: p}}
			}
			return nil
		}
		v.errorf(n, "expected a network string (e.g. '192.168.0.0/16')")
		return nil
	case n.IsSequence():
		var out []ReverseNetwork
		for _, e := range n.Seq() {
			s := v.str(e, "network")
			if s == "" {
				continue
			}
			if p, ok := v.prefix(e, s); ok {
				out = append(out, ReverseNetwork{Prefix: p})
			}
		}
		return out
	case n.IsMapping():
		var out []ReverseNetwork
		for _, it := range n.Items() {
			r := v.reverseBody(it.Value)
			if p, ok := v.prefix(it.KeyNode, it.Key); ok {
				r.Prefix = p
				out = append(out, r)
			}
		}
		return out
	default:
		v.errorf(n, "expected a network string, array of networks, or map of networks to reverse zone entries")
		return nil
	}
}

func (v *validator) reverseBody(n *RawNode) ReverseNetwork {
	var r ReverseNetwork
	if n.IsNull() {
		return r
	}
	if !n.IsMapping() {
		v.errorf(n, "reverse zone entry must be a mapping")
		return r
	}
	for _, it := range n.Items() {
		switch it.Key {
		case "email":
			r.Email = v.email(it.Value)
		case "nameserver":
			r.Nameserver = v.nsList(it.Value)
		case "ttl":
			r.TTL = v.ttl(it.Value)
		case "refresh":
			r.Refresh = v.ttl(it.Value)
		case "retry":
			r.Retry = v.ttl(it.Value)
		case "expire":
			r.Expire = v.ttl(it.Value)
		case "nrc-ttl":
			r.NrcTTL = v.ttl(it.Value)
		default:
			v.errorf(it.KeyNode, "unknown field %q", it.Key)
		}
	}
	return r
}
