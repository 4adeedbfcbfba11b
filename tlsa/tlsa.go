// Package tlsa implements TLSA/DANE validation (RFC 6698): it queries the
// TLSA records published for a service, retrieves the live TLS certificate
// and checks every certificate association against it.
package tlsa

import (
	"context"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/x509"
	"encoding/hex"
	"fmt"
	"hash"
	"math"
	"strings"
	"time"

	"github.com/miekg/dns"
	"github.com/sirupsen/logrus"

	"github.com/bondit-dk/dnscheck/config"
	"github.com/bondit-dk/dnscheck/evt"
	"github.com/bondit-dk/dnscheck/log"
	"github.com/bondit-dk/dnscheck/model"
)

const (
	selectorFullCert = 0
	selectorSPKI     = 1

	matchingTypeFull   = 0
	matchingTypeSHA256 = 1
	matchingTypeSHA512 = 2

	usageDaneEE = 3

	msgAssociationMatch    = "Certificate association matches TLSA record"
	msgAssociationMismatch = "Certificate association does not match TLSA record"
)

//nolint:gochecknoglobals
var (
	usageDescriptions = map[uint8]string{
		0: "PKIX-TA",
		1: "PKIX-EE",
		2: "DANE-TA",
		3: "DANE-EE",
	}

	selectorDescriptions = map[uint8]string{
		0: "Cert",
		1: "SPKI",
	}

	matchingTypeDescriptions = map[uint8]string{
		0: "Full",
		1: "SHA-256",
		2: "SHA-512",
	}
)

func describe(table map[uint8]string, value uint8) string {
	if description, ok := table[value]; ok {
		return description
	}

	return fmt.Sprintf("Unknown (%d)", value)
}

// QueryClient issues DNSSEC aware queries, see validator.QueryClient.
type QueryClient interface {
	Query(ctx context.Context, name string, qType uint16) ([]dns.RR, bool, error)
}

// Validator performs TLSA/DANE validations. Each call builds its own
// result, instances are safe for concurrent use.
type Validator struct {
	client  QueryClient
	fetcher CertFetcher

	port     uint16
	protocol string

	now    func() time.Time
	logger *logrus.Entry
}

func New(client QueryClient, fetcher CertFetcher, cfg config.TLSAConfig) *Validator {
	return &Validator{
		client:   client,
		fetcher:  fetcher,
		port:     cfg.Port,
		protocol: cfg.Protocol,
		now:      time.Now,
		logger:   log.PrefixedLog("tlsa"),
	}
}

// Validate runs the complete TLSA/DANE check for domainName. Absence of
// TLSA records is the terminal status no_records, a failed certificate
// retrieval is cert_unavailable with the records still attached. Only
// transport failures on the DNS side yield status error.
func (v *Validator) Validate(ctx context.Context, domainName string) *model.TLSAResult {
	start := time.Now()

	result := v.newResult(domainName)

	records, err := v.queryRecords(ctx, domainName)
	result.QueryTimeMs = roundMs(time.Since(start))

	if err != nil {
		result.Status = model.TLSAStatusTypeError
		result.Errors = append(result.Errors, fmt.Sprintf("TLSA validation failed: %v", err))

		return v.finish(domainName, result)
	}

	if len(records) == 0 {
		result.Status = model.TLSAStatusTypeNoRecords
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("No TLSA records found for %s", v.queryName(domainName)))

		return v.finish(domainName, result)
	}

	result.Records = records
	result.Status = model.TLSAStatusTypeRecordsFound

	connectStart := time.Now()

	chain, err := v.fetcher.Fetch(ctx, domainName, v.port)
	result.ConnectTimeMs = roundMs(time.Since(connectStart))

	if err != nil {
		result.Status = model.TLSAStatusTypeCertUnavailable
		result.Errors = append(result.Errors, fmt.Sprintf("TLS certificate retrieval failed: %v", err))

		return v.finish(domainName, result)
	}

	certInfo, err := certInfoFromChain(chain)
	if err != nil {
		result.Status = model.TLSAStatusTypeCertUnavailable
		result.Errors = append(result.Errors, fmt.Sprintf("TLS certificate retrieval failed: %v", err))

		return v.finish(domainName, result)
	}

	result.CertificateInfo = certInfo
	result.DaneValidation = validateAssociations(records, certInfo)

	switch result.DaneValidation.Status {
	case model.DaneStatusTypeValid:
		result.Status = model.TLSAStatusTypeValid
	case model.DaneStatusTypeInvalid:
		result.Status = model.TLSAStatusTypeInvalid
	case model.DaneStatusTypeNoAssociations, model.DaneStatusTypeUnknown:
		result.Status = model.TLSAStatusTypeNoMatches
	}

	return v.finish(domainName, result)
}

// QuickSummary is the bounded side check attached to chain of trust
// results. It never fails: any problem degrades into the summary's status
// and message.
func (v *Validator) QuickSummary(ctx context.Context, domainName string) model.TLSASummary {
	result := v.Validate(ctx, domainName)

	summary := model.TLSASummary{
		Status:            result.Status,
		RecordCount:       len(result.Records),
		ValidAssociations: result.DaneValidation.Summary.ValidAssociations,
	}

	switch {
	case len(result.Errors) > 0:
		summary.Message = result.Errors[0]
	case len(result.Warnings) > 0:
		summary.Message = result.Warnings[0]
	}

	return summary
}

func (v *Validator) newResult(domainName string) *model.TLSAResult {
	return &model.TLSAResult{
		Domain:   domainName,
		Port:     v.port,
		Protocol: v.protocol,
		Status:   model.TLSAStatusTypeUnknown,
		Records:  []model.TLSARecord{},
		DaneValidation: model.DaneValidation{
			ValidAssociations:   []model.AssociationResult{},
			InvalidAssociations: []model.AssociationResult{},
			Status:              model.DaneStatusTypeUnknown,
		},
		ValidationTime: v.now(),
		Errors:         []string{},
		Warnings:       []string{},
	}
}

func (v *Validator) finish(domainName string, result *model.TLSAResult) *model.TLSAResult {
	v.logger.WithFields(logrus.Fields{
		"domain":  domainName,
		"status":  result.Status,
		"records": len(result.Records),
	}).Info("tlsa validation finished")

	evt.Bus().Publish(evt.TLSAValidationFinished, domainName, result.Status.String())

	return result
}

func (v *Validator) queryName(domainName string) string {
	return fmt.Sprintf("_%d._%s.%s", v.port, v.protocol, domainName)
}

func (v *Validator) queryRecords(ctx context.Context, domainName string) ([]model.TLSARecord, error) {
	name := v.queryName(domainName)

	answers, found, err := v.client.Query(ctx, name, dns.TypeTLSA)
	if err != nil {
		return nil, err
	}

	if !found {
		return nil, nil
	}

	records := make([]model.TLSARecord, 0, len(answers))

	for _, rr := range answers {
		tlsaRR, ok := rr.(*dns.TLSA)
		if !ok {
			continue
		}

		// the wire format association data is hex encoded by miekg/dns
		records = append(records, model.TLSARecord{
			Name:                    name,
			Usage:                   tlsaRR.Usage,
			UsageDescription:        describe(usageDescriptions, tlsaRR.Usage),
			Selector:                tlsaRR.Selector,
			SelectorDescription:     describe(selectorDescriptions, tlsaRR.Selector),
			MatchingType:            tlsaRR.MatchingType,
			MatchingTypeDescription: describe(matchingTypeDescriptions, tlsaRR.MatchingType),
			CertAssocData:           strings.ToLower(tlsaRR.Certificate),
			CertAssocDataLength:     len(tlsaRR.Certificate) / 2,
			TTL:                     tlsaRR.Hdr.Ttl,
		})
	}

	return records, nil
}

func certInfoFromChain(chain [][]byte) (*model.CertificateInfo, error) {
	cert, err := x509.ParseCertificate(chain[0])
	if err != nil {
		return nil, fmt.Errorf("can't parse certificate: %w", err)
	}

	spki := cert.RawSubjectPublicKeyInfo

	san := make([]string, 0, len(cert.DNSNames)+len(cert.IPAddresses))
	san = append(san, cert.DNSNames...)

	for _, ip := range cert.IPAddresses {
		san = append(san, ip.String())
	}

	return &model.CertificateInfo{
		Subject:            cert.Subject.String(),
		Issuer:             cert.Issuer.String(),
		SerialNumber:       cert.SerialNumber.String(),
		NotValidBefore:     cert.NotBefore,
		NotValidAfter:      cert.NotAfter,
		SignatureAlgorithm: cert.SignatureAlgorithm.String(),
		PublicKeyAlgorithm: cert.PublicKeyAlgorithm.String(),
		SubjectAltNames:    san,
		ChainLength:        len(chain),
		Fingerprints: model.Fingerprints{
			SHA256:     hexDigest(sha256.New(), chain[0]),
			SHA512:     hexDigest(sha512.New(), chain[0]),
			SPKISHA256: hexDigest(sha256.New(), spki),
			SPKISHA512: hexDigest(sha512.New(), spki),
		},
		DER:  chain[0],
		SPKI: spki,
	}, nil
}

func validateAssociations(records []model.TLSARecord, certInfo *model.CertificateInfo) model.DaneValidation {
	validation := model.DaneValidation{
		ValidAssociations:   []model.AssociationResult{},
		InvalidAssociations: []model.AssociationResult{},
		Status:              model.DaneStatusTypeUnknown,
	}

	for _, record := range records {
		association := validateAssociation(record, certInfo)

		if association.Valid {
			validation.ValidAssociations = append(validation.ValidAssociations, association)
		} else {
			validation.InvalidAssociations = append(validation.InvalidAssociations, association)
		}
	}

	validCount := len(validation.ValidAssociations)
	invalidCount := len(validation.InvalidAssociations)
	totalCount := validCount + invalidCount

	switch {
	case validCount > 0:
		validation.Status = model.DaneStatusTypeValid
	case invalidCount > 0:
		validation.Status = model.DaneStatusTypeInvalid
	default:
		validation.Status = model.DaneStatusTypeNoAssociations
	}

	validation.Summary = model.DaneSummary{
		TotalRecords:        totalCount,
		ValidAssociations:   validCount,
		InvalidAssociations: invalidCount,
	}

	if totalCount > 0 {
		validation.Summary.SuccessRate = math.Round(float64(validCount)/float64(totalCount)*1000) / 10
	}

	return validation
}

// validateAssociation computes the certificate association per RFC 6698:
// the selector picks the data (full DER certificate or SPKI), the matching
// type picks the digest. Comparison is case-insensitive on the hex strings.
func validateAssociation(record model.TLSARecord, certInfo *model.CertificateInfo) model.AssociationResult {
	result := model.AssociationResult{
		TLSARecord:   record,
		ExpectedHash: record.CertAssocData,
	}

	var data []byte

	switch record.Selector {
	case selectorFullCert:
		data = certInfo.DER
	case selectorSPKI:
		data = certInfo.SPKI
	default:
		result.Reason = fmt.Sprintf("Unsupported selector type: %d", record.Selector)

		return result
	}

	var computed string

	switch record.MatchingType {
	case matchingTypeFull:
		computed = hex.EncodeToString(data)
	case matchingTypeSHA256:
		computed = hexDigest(sha256.New(), data)
	case matchingTypeSHA512:
		computed = hexDigest(sha512.New(), data)
	default:
		result.Reason = fmt.Sprintf("Unsupported matching type: %d", record.MatchingType)

		return result
	}

	result.ComputedHash = computed

	if strings.EqualFold(computed, record.CertAssocData) {
		result.Valid = true
		result.Reason = msgAssociationMatch
	} else {
		result.Reason = msgAssociationMismatch
	}

	return result
}

func hexDigest(h hash.Hash, data []byte) string {
	_, _ = h.Write(data)

	return hex.EncodeToString(h.Sum(nil))
}

func roundMs(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*100) / 100
}
