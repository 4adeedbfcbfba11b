package model

//go:generate go run github.com/abice/go-enum -f=$GOFILE --marshal --names

import (
	"time"
)

// StatusType represents the overall DNSSEC verdict for a domain ENUM(
// unknown // validation did not run or did not complete
// valid // DS key tags match DNSKEY key tags
// invalid // chain of trust is broken
// insecure // domain is not signed
// error // a system level failure occurred
// )
type StatusType int

// AttemptType marks a validation attempt in a fallback sequence ENUM(
// primary // the originally requested domain
// fallback // the root domain retry
// )
type AttemptType int

// DNSKEYRecord is one DNSKEY resource record of a zone.
// KeyTag is computed from the wire format key material (RFC 4034 Appendix B),
// never taken from user input.
type DNSKEYRecord struct {
	Zone      string `json:"zone"`
	Flags     uint16 `json:"flags"`
	Protocol  uint8  `json:"protocol"`
	Algorithm uint8  `json:"algorithm"`
	KeyTag    uint16 `json:"key_tag"`
}

// DSRecord is one DS resource record, digest hex encoded for transport.
type DSRecord struct {
	Zone       string `json:"zone"`
	KeyTag     uint16 `json:"key_tag"`
	Algorithm  uint8  `json:"algorithm"`
	DigestType uint8  `json:"digest_type"`
	Digest     string `json:"digest"`
}

// RRSIGRecord is one RRSIG resource record. Signatures are collected for
// reporting, they are NOT cryptographically verified.
type RRSIGRecord struct {
	TypeCovered string `json:"type_covered"`
	Algorithm   uint8  `json:"algorithm"`
	Labels      uint8  `json:"labels"`
	OriginalTTL uint32 `json:"original_ttl"`
	Expiration  uint32 `json:"expiration"`
	Inception   uint32 `json:"inception"`
	KeyTag      uint16 `json:"key_tag"`
	Signer      string `json:"signer"`
}

// ChainLink is the verdict for one zone in the chain of trust.
type ChainLink struct {
	Zone      string     `json:"zone"`
	Status    StatusType `json:"status"`
	Algorithm uint8      `json:"algorithm,omitempty"`
	KeyTag    uint16     `json:"key_tag,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// RecordSet holds all DNSSEC related records collected during one validation.
type RecordSet struct {
	DNSKEY []DNSKEYRecord `json:"dnskey"`
	DS     []DSRecord     `json:"ds"`
	RRSIG  []RRSIGRecord  `json:"rrsig"`
}

// ValidationResult is the complete outcome of one chain of trust validation.
// It is created fresh per validation call and never mutated after return.
type ValidationResult struct {
	Domain         string        `json:"domain"`
	Status         StatusType    `json:"status"`
	ValidationTime time.Time     `json:"validation_time"`
	ChainOfTrust   []ChainLink   `json:"chain_of_trust"`
	Records        RecordSet     `json:"records"`
	TLSASummary    *TLSASummary  `json:"tlsa_summary,omitempty"`
	Errors         []string      `json:"errors"`
	FallbackInfo   *FallbackInfo `json:"fallback_info,omitempty"`
}

// FallbackAttempt is one validation attempt within a fallback sequence.
type FallbackAttempt struct {
	Domain      string            `json:"domain"`
	AttemptType AttemptType       `json:"attempt_type"`
	Result      *ValidationResult `json:"result"`
}

// FallbackResult owns the ordered attempt list and the chosen final result.
type FallbackResult struct {
	Final    *ValidationResult `json:"result"`
	Attempts []FallbackAttempt `json:"attempts"`
}

// AttemptSummary is a compact per-attempt view for FallbackInfo.
type AttemptSummary struct {
	Domain      string      `json:"domain"`
	AttemptType AttemptType `json:"attempt_type"`
	Status      StatusType  `json:"status"`
}

// FallbackInfo annotates a final result with the fallback decision trail.
// Note: on fallback the root domain's full result stands in for the
// subdomain's, this info block is what makes the substitution visible.
type FallbackInfo struct {
	OriginalInput   string           `json:"original_input"`
	RequestedDomain string           `json:"requested_domain"`
	ValidatedDomain string           `json:"validated_domain"`
	FallbackUsed    bool             `json:"fallback_used"`
	AttemptCount    int              `json:"attempt_count"`
	Attempts        []AttemptSummary `json:"attempts,omitempty"`
}
