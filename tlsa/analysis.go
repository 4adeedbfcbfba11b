package tlsa

import (
	"context"
	"fmt"

	"github.com/bondit-dk/dnscheck/model"
)

const (
	scoreValidTLSA     = 40
	scoreStrongHash    = 10
	scoreFullMatching  = 5
	scoreDaneEE        = 15
	scoreCertValid     = 20
	scoreCertLongValid = 5
	scoreCertExpired   = -20
	maxScore           = 100
	renewalWarningDays = 30
)

// ValidateDetailed runs a validation and attaches the derived analysis:
// per record parameter classification, certificate properties, a weighted
// 0-100 security score and operator guidance. Pure derivation over the
// validation result, no additional I/O.
func (v *Validator) ValidateDetailed(ctx context.Context, domainName string) *model.TLSADetailedResult {
	result := v.Validate(ctx, domainName)

	detailed := &model.TLSADetailedResult{
		TLSAResult: *result,
	}

	detailed.Analysis = model.TLSAAnalysis{
		RecordAnalysis:      analyzeRecords(result.Records),
		CertificateAnalysis: v.analyzeCertificate(result.CertificateInfo),
	}
	detailed.Analysis.SecurityAssessment = v.assessSecurity(result, detailed.Analysis.CertificateAnalysis)
	detailed.Analysis.Troubleshooting = troubleshooting(result)
	detailed.Analysis.Recommendations = v.recommendations(result, detailed.Analysis.CertificateAnalysis)

	return detailed
}

func analyzeRecords(records []model.TLSARecord) []model.TLSARecordAnalysis {
	analyses := make([]model.TLSARecordAnalysis, 0, len(records))

	for _, record := range records {
		analysis := model.TLSARecordAnalysis{
			Record:        record,
			Usage:         analyzeUsage(record.Usage),
			Selector:      analyzeSelector(record.Selector),
			Matching:      analyzeMatchingType(record.MatchingType),
			SecurityNotes: []string{},
		}

		switch record.Usage {
		case 0, 1:
			analysis.SecurityNotes = append(analysis.SecurityNotes,
				"Uses PKIX validation - requires valid CA chain")
		case 2, 3:
			analysis.SecurityNotes = append(analysis.SecurityNotes,
				"Uses DANE validation - bypasses traditional CA validation")
		}

		switch record.MatchingType {
		case matchingTypeFull:
			analysis.SecurityNotes = append(analysis.SecurityNotes,
				"Full data matching - larger DNS records but precise matching")
		case matchingTypeSHA256, matchingTypeSHA512:
			analysis.SecurityNotes = append(analysis.SecurityNotes,
				"Hash-based matching - smaller DNS records, cryptographically secure")
		}

		analyses = append(analyses, analysis)
	}

	return analyses
}

func analyzeUsage(usage uint8) model.UsageAnalysis {
	analysis := model.UsageAnalysis{
		Type:        usage,
		Name:        describe(usageDescriptions, usage),
		Recommended: true,
	}

	switch usage {
	case 0:
		analysis.Description = "CA constraint - certificate must validate via traditional PKIX and match the association"
		analysis.SecurityImplications = "Provides additional security on top of traditional CA validation"
	case 1:
		analysis.Description = "Service certificate constraint - end entity cert must validate via PKIX and match"
		analysis.SecurityImplications = "Pins specific certificate while maintaining CA validation"
	case 2:
		analysis.Description = "Trust anchor assertion - certificate must chain to the specified trust anchor"
		analysis.SecurityImplications = "Bypasses traditional CAs, uses DNS-specified trust anchor"
		// harder to deploy correctly than DANE-EE
		analysis.Recommended = false
	case usageDaneEE:
		analysis.Description = "Domain-issued certificate - certificate must match exactly"
		analysis.SecurityImplications = "Complete bypass of CA system, DNS is the only trust source"
	default:
		analysis.SecurityImplications = "Unknown usage type - may not be supported by validators"
		analysis.Recommended = false
	}

	return analysis
}

func analyzeSelector(selector uint8) model.SelectorAnalysis {
	analysis := model.SelectorAnalysis{
		Type:          selector,
		Name:          describe(selectorDescriptions, selector),
		Advantages:    []string{},
		Disadvantages: []string{},
	}

	switch selector {
	case selectorFullCert:
		analysis.Description = "Matches against the complete certificate"
		analysis.Advantages = []string{"Precise matching", "No ambiguity about which certificate"}
		analysis.Disadvantages = []string{"Larger DNS records", "Must update DNS when certificate changes"}
	case selectorSPKI:
		analysis.Description = "Matches against the Subject Public Key Info"
		analysis.Advantages = []string{"Smaller DNS records", "Can survive certificate renewal with same key"}
		analysis.Disadvantages = []string{"Less precise than full certificate matching"}
	}

	return analysis
}

func analyzeMatchingType(matchingType uint8) model.MatchingAnalysis {
	analysis := model.MatchingAnalysis{
		Type:             matchingType,
		Name:             describe(matchingTypeDescriptions, matchingType),
		SecurityStrength: "unknown",
	}

	switch matchingType {
	case matchingTypeFull:
		analysis.Description = "Full data - no hashing applied"
		analysis.SecurityStrength = "high"
	case matchingTypeSHA256:
		analysis.Description = "SHA-256 hash of the certificate data"
		analysis.HashAlgorithm = "SHA-256"
		analysis.SecurityStrength = "high"
	case matchingTypeSHA512:
		analysis.Description = "SHA-512 hash of the certificate data"
		analysis.HashAlgorithm = "SHA-512"
		analysis.SecurityStrength = "very_high"
	}

	return analysis
}

func (v *Validator) analyzeCertificate(certInfo *model.CertificateInfo) *model.CertificateAnalysis {
	if certInfo == nil {
		return nil
	}

	now := v.now()

	return &model.CertificateAnalysis{
		ValidFrom:          certInfo.NotValidBefore,
		ValidUntil:         certInfo.NotValidAfter,
		DaysRemaining:      int(certInfo.NotValidAfter.Sub(now).Hours() / 24),
		CurrentlyValid:     !now.Before(certInfo.NotValidBefore) && !now.After(certInfo.NotValidAfter),
		SubjectAltNames:    certInfo.SubjectAltNames,
		SANCount:           len(certInfo.SubjectAltNames),
		SignatureAlgorithm: certInfo.SignatureAlgorithm,
		PublicKeyAlgorithm: certInfo.PublicKeyAlgorithm,
	}
}

//nolint:funlen
func (v *Validator) assessSecurity(result *model.TLSAResult,
	certAnalysis *model.CertificateAnalysis,
) model.SecurityAssessment {
	assessment := model.SecurityAssessment{
		Strengths:   []string{},
		Weaknesses:  []string{},
		RiskFactors: []string{},
	}

	score := 0

	switch result.Status {
	case model.TLSAStatusTypeValid:
		score += scoreValidTLSA

		assessment.Strengths = append(assessment.Strengths, "TLSA records validate successfully")
	case model.TLSAStatusTypeInvalid:
		assessment.Weaknesses = append(assessment.Weaknesses, "TLSA validation failed")
	case model.TLSAStatusTypeNoRecords:
		assessment.Weaknesses = append(assessment.Weaknesses, "No TLSA records found - DANE not implemented")
	case model.TLSAStatusTypeUnknown, model.TLSAStatusTypeRecordsFound,
		model.TLSAStatusTypeNoMatches, model.TLSAStatusTypeCertUnavailable, model.TLSAStatusTypeError:
	}

	for _, record := range result.Records {
		switch record.MatchingType {
		case matchingTypeSHA256, matchingTypeSHA512:
			score += scoreStrongHash

			assessment.Strengths = append(assessment.Strengths,
				fmt.Sprintf("Uses cryptographically strong hashing: %s", record.MatchingTypeDescription))
		case matchingTypeFull:
			score += scoreFullMatching

			assessment.Strengths = append(assessment.Strengths,
				"Uses full certificate matching - high precision")
		}
	}

	for _, record := range result.Records {
		if record.Usage == usageDaneEE {
			score += scoreDaneEE

			assessment.Strengths = append(assessment.Strengths,
				"Uses DANE-EE - bypasses CA system completely")
		}
	}

	if certAnalysis != nil {
		if certAnalysis.CurrentlyValid {
			score += scoreCertValid

			assessment.Strengths = append(assessment.Strengths, "Certificate is currently valid")

			switch {
			case certAnalysis.DaysRemaining > renewalWarningDays:
				score += scoreCertLongValid
			case certAnalysis.DaysRemaining > 0:
				assessment.RiskFactors = append(assessment.RiskFactors,
					fmt.Sprintf("Certificate expires in %d days", certAnalysis.DaysRemaining))
			default:
				score += scoreCertExpired

				assessment.Weaknesses = append(assessment.Weaknesses, "Certificate has expired")
			}
		} else {
			assessment.Weaknesses = append(assessment.Weaknesses, "Certificate is not currently valid")
		}
	}

	if score > maxScore {
		score = maxScore
	}

	if score < 0 {
		score = 0
	}

	assessment.OverallScore = score

	return assessment
}

func troubleshooting(result *model.TLSAResult) []string {
	guidance := []string{}

	switch result.Status {
	case model.TLSAStatusTypeNoRecords:
		guidance = append(guidance,
			"Issue: no TLSA records found",
			"Solution: implement DANE by creating TLSA records",
			fmt.Sprintf("Generate a TLSA record from your certificate, publish it as _%d._%s.%s "+
				"and verify DNS propagation before testing with DANE validators",
				result.Port, result.Protocol, result.Domain))
	case model.TLSAStatusTypeCertUnavailable:
		guidance = append(guidance,
			"Issue: cannot retrieve TLS certificate from server",
			"Solution: verify server configuration and connectivity",
			"Check that the server is running, the port is correct, the firewall allows connections and TLS is configured")
	case model.TLSAStatusTypeInvalid:
		guidance = append(guidance,
			"Issue: TLSA records do not match certificate",
			"Solution: update TLSA records or certificate",
			"Common causes: certificate renewed without updating TLSA, wrong certificate data used, incorrect usage/selector/matching type values")
	case model.TLSAStatusTypeUnknown, model.TLSAStatusTypeRecordsFound,
		model.TLSAStatusTypeValid, model.TLSAStatusTypeNoMatches, model.TLSAStatusTypeError:
	}

	for _, association := range result.DaneValidation.InvalidAssociations {
		record := association.TLSARecord
		guidance = append(guidance,
			fmt.Sprintf("TLSA record (usage:%d, selector:%d, type:%d): %s",
				record.Usage, record.Selector, record.MatchingType, association.Reason))
	}

	return guidance
}

func (v *Validator) recommendations(result *model.TLSAResult,
	certAnalysis *model.CertificateAnalysis,
) []string {
	recommendations := []string{}

	if result.Status == model.TLSAStatusTypeValid {
		recommendations = append(recommendations, "DANE validation successful - excellent security posture")
	}

	daneEEFound := false
	modernHash := false

	for _, record := range result.Records {
		if record.Usage == usageDaneEE {
			daneEEFound = true
		}

		if record.MatchingType == matchingTypeSHA256 || record.MatchingType == matchingTypeSHA512 {
			modernHash = true
		}
	}

	if daneEEFound {
		recommendations = append(recommendations, "DANE-EE (usage 3) provides strongest security")
	} else {
		recommendations = append(recommendations, "Consider DANE-EE (usage 3) for maximum security")
	}

	if modernHash {
		recommendations = append(recommendations, "Modern hash algorithms (SHA-256/SHA-512) detected")
	} else {
		recommendations = append(recommendations, "Consider using SHA-256 or SHA-512 for better security")
	}

	if certAnalysis != nil && certAnalysis.DaysRemaining < renewalWarningDays {
		recommendations = append(recommendations, "Plan certificate renewal and TLSA record updates")
	}

	recommendations = append(recommendations,
		"Implement automated TLSA record management",
		"Monitor DANE validation regularly",
		"Use DNSSEC to secure TLSA records")

	return recommendations
}
