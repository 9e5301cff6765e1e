// Package zone turns validated configuration into the immutable record
// model consumed by the output renderers.
package zone

import "net/netip"

// AddressRecord is one A or AAAA record; the family follows the
// address.
type AddressRecord struct {
	Name string
	Addr netip.Addr
	TTL  uint32
}

// PtrRecord maps an address back to the fully qualified name of the
// forward host it was derived from.
type PtrRecord struct {
	Name string
	Addr netip.Addr
	TTL  uint32
}

type NsRecord struct {
	Name string
	TTL  uint32
}

type MxRecord struct {
	Name string
	TTL  uint32
	Prio uint16
}

type CnameRecord struct {
	Name   string
	Target string
	TTL    uint32
}

type SrvRecord struct {
	Name   string
	Target string
	TTL    uint32
	Prio   uint16
	Weight uint16
	Port   uint16
}

// Header carries the SOA parameters shared by forward and reverse
// zones. Email is already in SOA RNAME form.
type Header struct {
	Name        string
	Email       string
	Serial      uint32
	Refresh     uint32
	Retry       uint32
	Expire      uint32
	NrcTTL      uint32
	TTL         uint32
	Nameservers []NsRecord
}

// Forward is one fully derived forward zone. Record slices keep the
// declared input order.
type Forward struct {
	Header
	MX    []MxRecord
	Hosts []AddressRecord
	CNAME []CnameRecord
	SRV   []SrvRecord
}

// Reverse is one derived reverse zone. Split is the number of labels of
// a PTR owner name that are local to this zone (octets for v4, nibbles
// for v6).
type Reverse struct {
	Header
	PTR   []PtrRecord
	Split int
}

// Model is the complete output of one pipeline run. It is handed to
// renderers as-is and never mutated after Build returns it.
type Model struct {
	Forward []*Forward
	Reverse []*Reverse
}
