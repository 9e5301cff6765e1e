package zone

import "github.com/henrikvtcodes/osmium/config"

// Resolved is the effective configuration of one zone or reverse
// network after the defaults merge. The merge is a pure field-by-field
// override and runs only after validation succeeded, so it never needs
// to produce diagnostics.
type Resolved struct {
	TTL       uint32
	Refresh   uint32
	Retry     uint32
	Expire    uint32
	NrcTTL    uint32
	MxPrio    uint16
	SrvPrio   uint16
	SrvWeight uint16
	WithPtr   bool
	Email     string
}

func u32(override *uint32, def uint32) uint32 {
	if override != nil {
		return *override
	}
	return def
}

func u16(override *uint16, def uint16) uint16 {
	if override != nil {
		return *override
	}
	return def
}

func boolOr(override *bool, def bool) bool {
	if override != nil {
		return *override
	}
	return def
}

func strOr(override, def string) string {
	if override != "" {
		return override
	}
	return def
}

func resolveZone(d config.Defaults, z *config.ZoneConfig) Resolved {
	return Resolved{
		TTL:       u32(z.TTL, d.TTL),
		Refresh:   u32(z.Refresh, d.Refresh),
		Retry:     u32(z.Retry, d.Retry),
		Expire:    u32(z.Expire, d.Expire),
		NrcTTL:    u32(z.NrcTTL, d.NrcTTL),
		MxPrio:    u16(z.MxPrio, d.MxPrio),
		SrvPrio:   u16(z.SrvPrio, d.SrvPrio),
		SrvWeight: u16(z.SrvWeight, d.SrvWeight),
		WithPtr:   boolOr(z.WithPtr, d.WithPtr),
		Email:     strOr(z.Email, d.Email),
	}
}

func resolveReverse(d config.Defaults, r *config.ReverseNetwork) Resolved {
	return Resolved{
		TTL:     u32(r.TTL, d.TTL),
		Refresh: u32(r.Refresh, d.Refresh),
		Retry:   u32(r.Retry, d.Retry),
		Expire:  u32(r.Expire, d.Expire),
		NrcTTL:  u32(r.NrcTTL, d.NrcTTL),
		WithPtr: d.WithPtr,
		Email:   strOr(r.Email, d.Email),
	}
}
