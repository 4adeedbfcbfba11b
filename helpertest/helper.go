// Package helpertest provides DNSSEC and TLSA record fixtures for tests.
// DNSKEY fixtures carry freshly generated real key material so that key
// tags are genuine RFC 4034 checksums, not invented numbers.
package helpertest

import (
	"errors"
	"time"

	"github.com/miekg/dns"

	"github.com/bondit-dk/dnscheck/util"
)

const (
	fixtureTTL     = 3600
	kskFlags       = 257
	dnskeyProtocol = 3
	ecdsaKeyBits   = 256
)

// GenerateDNSKEY returns a key signing key for zone with generated ECDSA
// P-256 key material.
func GenerateDNSKEY(zone string) *dns.DNSKEY {
	key := &dns.DNSKEY{
		Hdr: dns.RR_Header{
			Name:   dns.Fqdn(zone),
			Rrtype: dns.TypeDNSKEY,
			Class:  dns.ClassINET,
			Ttl:    fixtureTTL,
		},
		Flags:     kskFlags,
		Protocol:  dnskeyProtocol,
		Algorithm: dns.ECDSAP256SHA256,
	}

	_, err := key.Generate(ecdsaKeyBits)
	util.FatalOnError("can't generate DNSKEY: ", err)

	return key
}

// MatchingDS returns the DS record derived from key, its key tag matches
// by construction.
func MatchingDS(key *dns.DNSKEY) *dns.DS {
	ds := key.ToDS(dns.SHA256)
	if ds == nil {
		util.FatalOnError("can't derive DS: ", errors.New("unsupported digest type"))
	}

	return ds
}

// MismatchedDS returns a DS record whose key tag is guaranteed to differ
// from key's.
func MismatchedDS(key *dns.DNSKEY) *dns.DS {
	ds := MatchingDS(key)
	ds.KeyTag++

	return ds
}

// CoveringRRSIG returns an RRSIG over typeCovered referencing key's tag
// with the given validity window. The signature bytes are placeholders,
// nothing in the validation verifies them.
func CoveringRRSIG(zone string, typeCovered uint16, key *dns.DNSKEY, inception, expiration time.Time) *dns.RRSIG {
	fqdn := dns.Fqdn(zone)

	return &dns.RRSIG{
		Hdr: dns.RR_Header{
			Name:   fqdn,
			Rrtype: dns.TypeRRSIG,
			Class:  dns.ClassINET,
			Ttl:    fixtureTTL,
		},
		TypeCovered: typeCovered,
		Algorithm:   key.Algorithm,
		Labels:      uint8(dns.CountLabel(fqdn)),
		OrigTtl:     fixtureTTL,
		Expiration:  uint32(expiration.Unix()),
		Inception:   uint32(inception.Unix()),
		KeyTag:      key.KeyTag(),
		SignerName:  fqdn,
		Signature:   "c2lnbmF0dXJl",
	}
}
