package validator

import (
	"context"

	"github.com/bondit-dk/dnscheck/domain"
	"github.com/bondit-dk/dnscheck/evt"
	"github.com/bondit-dk/dnscheck/model"
)

// ValidateWithFallback validates domainName and, if the result is invalid
// and the domain carries subdomain labels, retries against the root domain.
// A valid, insecure or error outcome is terminal and stops the sequence.
//
// On fallback the root domain's complete result stands in for the
// subdomain's. The attached FallbackInfo is what makes this substitution
// visible to consumers, a subdomain is not necessarily signed just because
// its root is.
func (v *Validator) ValidateWithFallback(ctx context.Context, domainName, originalInput string) *model.FallbackResult {
	candidates := domain.FallbackDomains(domainName)
	if len(candidates) == 0 {
		candidates = []string{domainName}
	}

	attempts := make([]model.FallbackAttempt, 0, len(candidates))

	var final *model.ValidationResult

	for i, candidate := range candidates {
		attemptType := model.AttemptTypePrimary
		if i > 0 {
			attemptType = model.AttemptTypeFallback
		}

		final = v.Validate(ctx, candidate)

		attempts = append(attempts, model.FallbackAttempt{
			Domain:      candidate,
			AttemptType: attemptType,
			Result:      final,
		})

		if final.Status != model.StatusTypeInvalid {
			break
		}
	}

	fallbackUsed := len(attempts) > 1

	info := &model.FallbackInfo{
		OriginalInput:   originalInput,
		RequestedDomain: domainName,
		ValidatedDomain: final.Domain,
		FallbackUsed:    fallbackUsed,
		AttemptCount:    len(attempts),
	}

	if fallbackUsed {
		for _, attempt := range attempts {
			info.Attempts = append(info.Attempts, model.AttemptSummary{
				Domain:      attempt.Domain,
				AttemptType: attempt.AttemptType,
				Status:      attempt.Result.Status,
			})
		}

		v.logger.Infof("fallback from '%s' to '%s'", domainName, final.Domain)
		evt.Bus().Publish(evt.ValidationFallbackUsed, domainName, final.Domain)
	}

	final.FallbackInfo = info

	return &model.FallbackResult{
		Final:    final,
		Attempts: attempts,
	}
}
