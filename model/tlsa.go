package model

//go:generate go run github.com/abice/go-enum -f=$GOFILE --marshal --names

import (
	"time"
)

// TLSAStatusType represents the outcome of a TLSA/DANE validation ENUM(
// unknown // validation did not run or did not complete
// no_records // no TLSA records published, terminal and not an error
// records_found // TLSA records exist, certificate not checked yet
// valid // at least one certificate association matches
// invalid // associations exist but none match
// no_matches // no associations could be evaluated
// cert_unavailable // TLS certificate could not be retrieved
// error // a system level failure occurred
// )
type TLSAStatusType int

// DaneStatusType is the aggregated association verdict ENUM(
// unknown // no association was evaluated
// valid // at least one association matches
// invalid // all evaluated associations failed
// no_associations // zero records survived evaluation
// )
type DaneStatusType int

// TLSARecord is one TLSA resource record, association data hex encoded.
type TLSARecord struct {
	Name                    string `json:"name"`
	Usage                   uint8  `json:"usage"`
	UsageDescription        string `json:"usage_description"`
	Selector                uint8  `json:"selector"`
	SelectorDescription     string `json:"selector_description"`
	MatchingType            uint8  `json:"matching_type"`
	MatchingTypeDescription string `json:"matching_type_description"`
	CertAssocData           string `json:"cert_assoc_data"`
	CertAssocDataLength     int    `json:"cert_assoc_data_length"`
	TTL                     uint32 `json:"ttl"`
}

// Fingerprints are hex digests of the certificate and its SPKI.
type Fingerprints struct {
	SHA256     string `json:"sha256"`
	SHA512     string `json:"sha512"`
	SPKISHA256 string `json:"spki_sha256"`
	SPKISHA512 string `json:"spki_sha512"`
}

// CertificateInfo describes the leaf certificate retrieved from the server.
// DER and SPKI carry the raw bytes used for association matching and are
// not serialized.
type CertificateInfo struct {
	Subject            string       `json:"subject"`
	Issuer             string       `json:"issuer"`
	SerialNumber       string       `json:"serial_number"`
	NotValidBefore     time.Time    `json:"not_valid_before"`
	NotValidAfter      time.Time    `json:"not_valid_after"`
	SignatureAlgorithm string       `json:"signature_algorithm"`
	PublicKeyAlgorithm string       `json:"public_key_algorithm"`
	SubjectAltNames    []string     `json:"san"`
	ChainLength        int          `json:"chain_length"`
	Fingerprints       Fingerprints `json:"fingerprints"`
	DER                []byte       `json:"-"`
	SPKI               []byte       `json:"-"`
}

// AssociationResult is the verdict for one TLSA record against the
// live certificate. Computed once per validation pass, immutable.
type AssociationResult struct {
	TLSARecord   TLSARecord `json:"tlsa_record"`
	Valid        bool       `json:"valid"`
	Reason       string     `json:"reason"`
	ComputedHash string     `json:"computed_hash"`
	ExpectedHash string     `json:"expected_hash"`
}

// DaneSummary aggregates association counts.
type DaneSummary struct {
	TotalRecords        int     `json:"total_records"`
	ValidAssociations   int     `json:"valid_associations"`
	InvalidAssociations int     `json:"invalid_associations"`
	SuccessRate         float64 `json:"success_rate"`
}

// DaneValidation groups association results by verdict.
type DaneValidation struct {
	ValidAssociations   []AssociationResult `json:"valid_associations"`
	InvalidAssociations []AssociationResult `json:"invalid_associations"`
	Status              DaneStatusType      `json:"status"`
	Summary             DaneSummary         `json:"summary"`
}

// TLSAResult is the complete outcome of one TLSA/DANE validation.
type TLSAResult struct {
	Domain          string           `json:"domain"`
	Port            uint16           `json:"port"`
	Protocol        string           `json:"protocol"`
	Status          TLSAStatusType   `json:"tlsa_status"`
	Records         []TLSARecord     `json:"tlsa_records"`
	CertificateInfo *CertificateInfo `json:"certificate_info,omitempty"`
	DaneValidation  DaneValidation   `json:"dane_validation"`
	ValidationTime  time.Time        `json:"validation_time"`
	Errors          []string         `json:"errors"`
	Warnings        []string         `json:"warnings"`
	QueryTimeMs     float64          `json:"query_time_ms"`
	ConnectTimeMs   float64          `json:"connect_time_ms"`
}

// TLSASummary is the compact TLSA side check attached to a ValidationResult.
type TLSASummary struct {
	Status            TLSAStatusType `json:"status"`
	RecordCount       int            `json:"record_count"`
	ValidAssociations int            `json:"valid_associations"`
	Message           string         `json:"message,omitempty"`
}
