package model

import (
	"time"
)

// DetailedResult is a ValidationResult with derived analysis attached.
type DetailedResult struct {
	ValidationResult
	Analysis ValidationAnalysis `json:"detailed_analysis"`
}

// ValidationAnalysis is the DNSSEC deep dive: pure derivation, no new I/O.
type ValidationAnalysis struct {
	Algorithms      []AlgorithmInfo   `json:"algorithms"`
	Signatures      []SignatureWindow `json:"signatures"`
	Troubleshooting []string          `json:"troubleshooting"`
	Recommendations []string          `json:"recommendations"`
}

// AlgorithmInfo classifies one DNSKEY algorithm in use by the zone.
type AlgorithmInfo struct {
	Algorithm   uint8    `json:"algorithm"`
	Name        string   `json:"name"`
	Strength    string   `json:"strength"`
	KeyTags     []uint16 `json:"key_tags"`
	Recommended bool     `json:"recommended"`
}

// SignatureWindow is the validity window of one collected RRSIG.
type SignatureWindow struct {
	TypeCovered string    `json:"type_covered"`
	Signer      string    `json:"signer"`
	KeyTag      uint16    `json:"key_tag"`
	Inception   time.Time `json:"inception"`
	Expiration  time.Time `json:"expiration"`
	ExpiresIn   string    `json:"expires_in"`
	Expired     bool      `json:"expired"`
}

// TLSADetailedResult is a TLSAResult with derived analysis attached.
type TLSADetailedResult struct {
	TLSAResult
	Analysis TLSAAnalysis `json:"detailed_analysis"`
}

// TLSAAnalysis is the DANE deep dive: record classification, certificate
// properties, a security score and operator guidance.
type TLSAAnalysis struct {
	RecordAnalysis      []TLSARecordAnalysis `json:"tlsa_record_analysis"`
	CertificateAnalysis *CertificateAnalysis `json:"certificate_analysis,omitempty"`
	SecurityAssessment  SecurityAssessment   `json:"security_assessment"`
	Troubleshooting     []string             `json:"troubleshooting"`
	Recommendations     []string             `json:"recommendations"`
}

// TLSARecordAnalysis classifies one TLSA record's parameter choices.
type TLSARecordAnalysis struct {
	Record        TLSARecord       `json:"record"`
	Usage         UsageAnalysis    `json:"usage_analysis"`
	Selector      SelectorAnalysis `json:"selector_analysis"`
	Matching      MatchingAnalysis `json:"matching_analysis"`
	SecurityNotes []string         `json:"security_notes"`
}

// UsageAnalysis explains a TLSA certificate usage value (RFC 6698 §2.1.1).
type UsageAnalysis struct {
	Type                 uint8  `json:"type"`
	Name                 string `json:"name"`
	Description          string `json:"description"`
	SecurityImplications string `json:"security_implications"`
	Recommended          bool   `json:"recommended"`
}

// SelectorAnalysis explains a TLSA selector value (RFC 6698 §2.1.2).
type SelectorAnalysis struct {
	Type          uint8    `json:"type"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Advantages    []string `json:"advantages"`
	Disadvantages []string `json:"disadvantages"`
}

// MatchingAnalysis explains a TLSA matching type value (RFC 6698 §2.1.3).
type MatchingAnalysis struct {
	Type             uint8  `json:"type"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	HashAlgorithm    string `json:"hash_algorithm,omitempty"`
	SecurityStrength string `json:"security_strength"`
}

// CertificateAnalysis summarizes certificate validity against the clock.
type CertificateAnalysis struct {
	ValidFrom          time.Time `json:"valid_from"`
	ValidUntil         time.Time `json:"valid_until"`
	DaysRemaining      int       `json:"days_remaining"`
	CurrentlyValid     bool      `json:"currently_valid"`
	SubjectAltNames    []string  `json:"subject_alternative_names"`
	SANCount           int       `json:"san_count"`
	SignatureAlgorithm string    `json:"signature_algorithm"`
	PublicKeyAlgorithm string    `json:"public_key_algorithm"`
}

// SecurityAssessment is the weighted 0-100 DANE posture score.
type SecurityAssessment struct {
	OverallScore int      `json:"overall_score"`
	Strengths    []string `json:"strengths"`
	Weaknesses   []string `json:"weaknesses"`
	RiskFactors  []string `json:"risk_factors"`
}
