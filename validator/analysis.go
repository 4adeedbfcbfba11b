package validator

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/hako/durafmt"

	"github.com/bondit-dk/dnscheck/model"
)

const expiresInUnits = 2

type algorithmProperties struct {
	name        string
	strength    string
	recommended bool
}

// dnskeyAlgorithms classifies the DNSSEC signing algorithms in practical
// use (RFC 8624 implementation guidance).
//
//nolint:gochecknoglobals
var dnskeyAlgorithms = map[uint8]algorithmProperties{
	1:  {name: "RSAMD5", strength: "broken"},
	3:  {name: "DSA", strength: "weak"},
	5:  {name: "RSASHA1", strength: "weak"},
	6:  {name: "DSA-NSEC3-SHA1", strength: "weak"},
	7:  {name: "RSASHA1-NSEC3-SHA1", strength: "weak"},
	8:  {name: "RSASHA256", strength: "strong", recommended: true},
	10: {name: "RSASHA512", strength: "strong"},
	13: {name: "ECDSAP256SHA256", strength: "strong", recommended: true},
	14: {name: "ECDSAP384SHA384", strength: "strong"},
	15: {name: "ED25519", strength: "strong", recommended: true},
	16: {name: "ED448", strength: "strong"},
}

// ValidateDetailed validates domainName and attaches the derived analysis:
// algorithm classification, signature validity windows and operator
// guidance. Pure derivation over the validation result, no additional I/O.
func (v *Validator) ValidateDetailed(ctx context.Context, domainName string) *model.DetailedResult {
	result := v.Validate(ctx, domainName)

	return &model.DetailedResult{
		ValidationResult: *result,
		Analysis:         v.Analyze(result),
	}
}

// Analyze derives the analysis for an existing validation result.
func (v *Validator) Analyze(result *model.ValidationResult) model.ValidationAnalysis {
	return model.ValidationAnalysis{
		Algorithms:      classifyAlgorithms(result.Records.DNSKEY),
		Signatures:      v.signatureWindows(result.Records.RRSIG),
		Troubleshooting: troubleshooting(result),
		Recommendations: v.recommendations(result),
	}
}

func classifyAlgorithms(keys []model.DNSKEYRecord) []model.AlgorithmInfo {
	tagsByAlgorithm := map[uint8][]uint16{}
	for _, key := range keys {
		tagsByAlgorithm[key.Algorithm] = append(tagsByAlgorithm[key.Algorithm], key.KeyTag)
	}

	algorithms := make([]uint8, 0, len(tagsByAlgorithm))
	for algorithm := range tagsByAlgorithm {
		algorithms = append(algorithms, algorithm)
	}

	sort.Slice(algorithms, func(i, j int) bool { return algorithms[i] < algorithms[j] })

	infos := make([]model.AlgorithmInfo, 0, len(algorithms))

	for _, algorithm := range algorithms {
		properties, known := dnskeyAlgorithms[algorithm]
		if !known {
			properties = algorithmProperties{
				name:     fmt.Sprintf("ALG%d", algorithm),
				strength: "unknown",
			}
		}

		infos = append(infos, model.AlgorithmInfo{
			Algorithm:   algorithm,
			Name:        properties.name,
			Strength:    properties.strength,
			KeyTags:     tagsByAlgorithm[algorithm],
			Recommended: properties.recommended,
		})
	}

	return infos
}

func (v *Validator) signatureWindows(signatures []model.RRSIGRecord) []model.SignatureWindow {
	now := v.now()

	windows := make([]model.SignatureWindow, 0, len(signatures))

	for _, sig := range signatures {
		inception := time.Unix(int64(sig.Inception), 0).UTC()
		expiration := time.Unix(int64(sig.Expiration), 0).UTC()
		expired := now.After(expiration)

		expiresIn := "expired"
		if !expired {
			expiresIn = durafmt.Parse(expiration.Sub(now)).LimitFirstN(expiresInUnits).String()
		}

		windows = append(windows, model.SignatureWindow{
			TypeCovered: sig.TypeCovered,
			Signer:      sig.Signer,
			KeyTag:      sig.KeyTag,
			Inception:   inception,
			Expiration:  expiration,
			ExpiresIn:   expiresIn,
			Expired:     expired,
		})
	}

	return windows
}

func troubleshooting(result *model.ValidationResult) []string {
	switch result.Status {
	case model.StatusTypeInsecure:
		return []string{
			"The domain publishes no DNSKEY records, DNSSEC is not enabled.",
			"Enable DNSSEC signing at your DNS operator, then publish the DS record at the registrar.",
		}
	case model.StatusTypeInvalid:
		if len(result.Records.DS) == 0 {
			return []string{
				"The zone is signed but the parent holds no DS record, resolvers cannot build a chain of trust.",
				"Publish the DS record for the zone's key signing key at your registrar.",
			}
		}

		return []string{
			"The published DS records reference key tags that no DNSKEY record carries.",
			"This usually happens after a key rollover where the DS record at the registrar was not updated.",
			"Replace the stale DS record with one generated from the current key signing key.",
		}
	case model.StatusTypeError:
		return []string{
			"The validation could not complete, check resolver reachability and retry.",
		}
	case model.StatusTypeValid, model.StatusTypeUnknown:
		return []string{}
	}

	return []string{}
}

func (v *Validator) recommendations(result *model.ValidationResult) []string {
	recommendations := []string{}

	for _, info := range classifyAlgorithms(result.Records.DNSKEY) {
		if info.Strength == "weak" || info.Strength == "broken" {
			recommendations = append(recommendations,
				fmt.Sprintf("Replace %s (algorithm %d) with a modern algorithm such as ECDSAP256SHA256 or ED25519.",
					info.Name, info.Algorithm))
		}
	}

	for _, window := range v.signatureWindows(result.Records.RRSIG) {
		if window.Expired {
			recommendations = append(recommendations,
				fmt.Sprintf("The RRSIG covering %s expired on %s, re-sign the zone.",
					window.TypeCovered, window.Expiration.Format(time.RFC3339)))
		}
	}

	if result.Status == model.StatusTypeValid && len(recommendations) == 0 {
		recommendations = append(recommendations,
			"The chain of trust is consistent. Monitor signature expiry and DS records after key rollovers.")
	}

	return recommendations
}
