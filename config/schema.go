package config

import "net/netip"

// Fallback values applied when the defaults section omits a field.
const (
	DefaultTTL       uint32 = 3600
	DefaultRefresh   uint32 = 10800
	DefaultRetry     uint32 = 3600
	DefaultExpire    uint32 = 604800
	DefaultNrcTTL    uint32 = 3600
	DefaultMxPrio    uint16 = 10
	DefaultSrvPrio   uint16 = 0
	DefaultSrvWeight uint16 = 5
	DefaultWithPtr   bool   = true
)

// Document is the fully validated, typed form of one input document.
type Document struct {
	Defaults Defaults
	Zones    []ZoneConfig
	Reverse  []ReverseNetwork
}

// Defaults is the global defaults section with fallbacks already
// applied. Email and Nameserver stay optional here; whether they are
// required depends on what the zones themselves declare.
type Defaults struct {
	Email      string
	Nameserver []string
	MX         []MxEntry
	TTL        uint32
	Refresh    uint32
	Retry      uint32
	Expire     uint32
	NrcTTL     uint32
	MxPrio     uint16
	SrvPrio    uint16
	SrvWeight  uint16
	WithPtr    bool
}

// NewDefaults returns a Defaults with every fallback in place.
func NewDefaults() Defaults {
	return Defaults{
		TTL:       DefaultTTL,
		Refresh:   DefaultRefresh,
		Retry:     DefaultRetry,
		Expire:    DefaultExpire,
		NrcTTL:    DefaultNrcTTL,
		MxPrio:    DefaultMxPrio,
		SrvPrio:   DefaultSrvPrio,
		SrvWeight: DefaultSrvWeight,
		WithPtr:   DefaultWithPtr,
	}
}

// ZoneConfig is one forward zone as declared. Pointer fields are nil
// when the zone does not override the global default.
type ZoneConfig struct {
	Name       string // fully qualified
	Email      string
	Nameserver []NsEntry
	TTL        *uint32
	Refresh    *uint32
	Retry      *uint32
	Expire     *uint32
	NrcTTL     *uint32
	MxPrio     *uint16
	SrvPrio    *uint16
	SrvWeight  *uint16
	WithPtr    *bool
	Hosts      []HostEntry
	MX         []MxEntry
	CNAME      []CnameEntry
	SRV        []SrvEntry
}

// HostEntry is one hosts declaration after the scalar/list/object
// shapes have been normalized.
type HostEntry struct {
	Name    string // relative label, "@" or fqdn
	IPs     []netip.Addr
	Aliases []string
	TTL     *uint32
	WithPtr *bool
}

type NsEntry struct {
	Name string
	TTL  *uint32
}

type MxEntry struct {
	Name string
	Prio *uint16
	TTL  *uint32
}

type CnameEntry struct {
	Name   string
	Target string
	TTL    *uint32
}

type SrvEntry struct {
	Name   string // the _service._protocol key, possibly with extra labels
	Target string
	Port   uint16
	Prio   *uint16
	Weight *uint16
	TTL    *uint32
}

// ReverseNetwork is one declared reverse network with optional SOA
// overrides.
type ReverseNetwork struct {
	Prefix     netip.Prefix
	Email      string
	Nameserver []NsEntry
	TTL        *uint32
	Refresh    *uint32
	Retry      *uint32
	Expire     *uint32
	NrcTTL     *uint32
}
