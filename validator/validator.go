// Package validator implements the DNSSEC chain of trust check: a domain
// is valid if it publishes DNSKEY records and its DS records reference at
// least one of them by key tag.
//
// The check is a single zone check, not a root to leaf walk. Two known
// limitations are preserved on purpose and surface in the documentation
// rather than the code pretending otherwise: the DS lookup goes to the
// target name itself instead of the parent zone's authoritative servers,
// and RRSIG signatures are collected but never cryptographically verified.
// "valid" therefore means "DS key tag matches a DNSKEY key tag", nothing
// stronger.
package validator

import (
	"context"
	"fmt"
	"time"

	"github.com/miekg/dns"
	"github.com/sirupsen/logrus"

	"github.com/bondit-dk/dnscheck/domain"
	"github.com/bondit-dk/dnscheck/evt"
	"github.com/bondit-dk/dnscheck/log"
	"github.com/bondit-dk/dnscheck/model"
)

const (
	msgNotSigned   = "No DNSKEY records found - domain is not signed"
	msgNoDS        = "Domain is signed but has no DS record in parent zone - chain of trust broken"
	msgTagMismatch = "DS records do not match any DNSKEY records"
)

// QueryClient issues DNSSEC aware queries. Absence of records (NXDOMAIN,
// empty answer) is reported via the bool, the error is reserved for
// transport and server failures.
type QueryClient interface {
	Query(ctx context.Context, name string, qType uint16) ([]dns.RR, bool, error)
}

// TLSAQuickChecker produces the compact TLSA summary attached to chain
// validation results. Implementations never fail: problems degrade into a
// summary with an error status.
type TLSAQuickChecker interface {
	QuickSummary(ctx context.Context, domainName string) model.TLSASummary
}

// Validator performs chain of trust validations. Each call builds its own
// result, instances are safe for concurrent use.
type Validator struct {
	client      QueryClient
	tlsaChecker TLSAQuickChecker

	quickCheckTimeout time.Duration

	now    func() time.Time
	logger *logrus.Entry
}

// New creates a validator. tlsaChecker may be nil, in which case results
// carry no TLSA summary.
func New(client QueryClient, tlsaChecker TLSAQuickChecker, quickCheckTimeout time.Duration) *Validator {
	return &Validator{
		client:            client,
		tlsaChecker:       tlsaChecker,
		quickCheckTimeout: quickCheckTimeout,
		now:               time.Now,
		logger:            log.PrefixedLog("validator"),
	}
}

// Validate checks the chain of trust for domainName. The returned result is
// always fully populated: absence of records yields the statuses insecure
// or invalid, only transport and system failures yield status error.
func (v *Validator) Validate(ctx context.Context, domainName string) *model.ValidationResult {
	start := time.Now()

	result := newResult(domainName, v.now())

	if !domain.IsValidDomainFormat(domainName) {
		result.Status = model.StatusTypeError
		result.Errors = append(result.Errors, fmt.Sprintf("invalid domain format: '%s'", log.EscapeInput(domainName)))
	} else if err := v.validateChainOfTrust(ctx, domainName, result); err != nil {
		result.Status = model.StatusTypeError
		result.Errors = append(result.Errors, err.Error())
	}

	v.attachTLSASummary(ctx, domainName, result)

	v.logger.WithFields(logrus.Fields{
		"domain":      domainName,
		"status":      result.Status,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("validation finished")

	evt.Bus().Publish(evt.ValidationFinished, domainName, result.Status.String(), time.Since(start).Milliseconds())

	return result
}

func newResult(domainName string, timestamp time.Time) *model.ValidationResult {
	return &model.ValidationResult{
		Domain:         domainName,
		Status:         model.StatusTypeUnknown,
		ValidationTime: timestamp,
		ChainOfTrust:   []model.ChainLink{},
		Records: model.RecordSet{
			DNSKEY: []model.DNSKEYRecord{},
			DS:     []model.DSRecord{},
			RRSIG:  []model.RRSIGRecord{},
		},
		Errors: []string{},
	}
}

func (v *Validator) validateChainOfTrust(ctx context.Context, domainName string, result *model.ValidationResult) error {
	answers, found, err := v.client.Query(ctx, domainName, dns.TypeDNSKEY)
	if err != nil {
		return fmt.Errorf("DNSKEY query failed: %w", err)
	}

	if !found {
		result.Status = model.StatusTypeInsecure
		result.ChainOfTrust = append(result.ChainOfTrust, model.ChainLink{
			Zone:   domainName,
			Status: model.StatusTypeInsecure,
			Error:  msgNotSigned,
		})

		return nil
	}

	collectRecords(domainName, answers, result)

	dsAnswers, dsFound, err := v.client.Query(ctx, domainName, dns.TypeDS)
	if err != nil {
		return fmt.Errorf("DS query failed: %w", err)
	}

	if !dsFound {
		result.Status = model.StatusTypeInvalid
		result.ChainOfTrust = append(result.ChainOfTrust, model.ChainLink{
			Zone:   domainName,
			Status: model.StatusTypeInvalid,
			Error:  msgNoDS,
		})

		return nil
	}

	collectRecords(domainName, dsAnswers, result)

	// key tag intersection only: the DS digest is not checked against the
	// DNSKEY bytes and no signature is verified
	if !keyTagsIntersect(result.Records.DNSKEY, result.Records.DS) {
		result.Status = model.StatusTypeInvalid
		result.ChainOfTrust = append(result.ChainOfTrust, model.ChainLink{
			Zone:   domainName,
			Status: model.StatusTypeInvalid,
			Error:  msgTagMismatch,
		})

		return nil
	}

	first := result.Records.DNSKEY[0]

	result.Status = model.StatusTypeValid
	result.ChainOfTrust = append(result.ChainOfTrust, model.ChainLink{
		Zone:      domainName,
		Status:    model.StatusTypeValid,
		Algorithm: first.Algorithm,
		KeyTag:    first.KeyTag,
	})

	return nil
}

// collectRecords stores DNSKEY, DS and accompanying RRSIG records from an
// answer section into the result.
func collectRecords(domainName string, answers []dns.RR, result *model.ValidationResult) {
	for _, rr := range answers {
		switch record := rr.(type) {
		case *dns.DNSKEY:
			result.Records.DNSKEY = append(result.Records.DNSKEY, model.DNSKEYRecord{
				Zone:      domainName,
				Flags:     record.Flags,
				Protocol:  record.Protocol,
				Algorithm: record.Algorithm,
				KeyTag:    record.KeyTag(),
			})
		case *dns.DS:
			result.Records.DS = append(result.Records.DS, model.DSRecord{
				Zone:       domainName,
				KeyTag:     record.KeyTag,
				Algorithm:  record.Algorithm,
				DigestType: record.DigestType,
				Digest:     record.Digest,
			})
		case *dns.RRSIG:
			result.Records.RRSIG = append(result.Records.RRSIG, model.RRSIGRecord{
				TypeCovered: dns.TypeToString[record.TypeCovered],
				Algorithm:   record.Algorithm,
				Labels:      record.Labels,
				OriginalTTL: record.OrigTtl,
				Expiration:  record.Expiration,
				Inception:   record.Inception,
				KeyTag:      record.KeyTag,
				Signer:      record.SignerName,
			})
		}
	}
}

func keyTagsIntersect(keys []model.DNSKEYRecord, dsRecords []model.DSRecord) bool {
	keyTags := make(map[uint16]struct{}, len(keys))
	for _, k := range keys {
		keyTags[k.KeyTag] = struct{}{}
	}

	for _, ds := range dsRecords {
		if _, ok := keyTags[ds.KeyTag]; ok {
			return true
		}
	}

	return false
}

// attachTLSASummary runs the TLSA side check with its own bounded timeout.
// Its outcome never changes the DNSSEC status.
func (v *Validator) attachTLSASummary(ctx context.Context, domainName string, result *model.ValidationResult) {
	if v.tlsaChecker == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, v.quickCheckTimeout)
	defer cancel()

	summary := v.tlsaChecker.QuickSummary(ctx, domainName)
	result.TLSASummary = &summary
}
