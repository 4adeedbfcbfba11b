// Package domain normalizes user supplied domain input (bare domains,
// subdomains, URLs) into validated lowercase domain names and implements
// the root domain heuristic used by the fallback resolver.
package domain

//go:generate go run github.com/abice/go-enum -f=$GOFILE --marshal --names

import (
	"net/url"
	"regexp"
	"strings"
)

// InputType classifies the shape of raw user input ENUM(
// domain // a plain domain or subdomain
// url // a URL, possibly malformed
// invalid // input no domain could be extracted from
// )
type InputType int

const maxDomainLength = 253 // RFC 1035 limit

// domainRegex allows letters, digits and hyphens per label and requires an
// alphabetic TLD of at least two characters.
//
//nolint:gochecknoglobals
var domainRegex = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?(\.[a-z0-9]([a-z0-9-]*[a-z0-9])?)*\.[a-z]{2,}$`)

// twoPartTLDs lists common compound second level TLDs. This is a small
// hardcoded approximation, not a public suffix list.
//
//nolint:gochecknoglobals
var twoPartTLDs = map[string]struct{}{
	"co.uk":  {},
	"co.nz":  {},
	"com.au": {},
	"co.jp":  {},
	"co.in":  {},
	"co.za":  {},
	"org.uk": {},
	"net.uk": {},
	"ac.uk":  {},
	"gov.uk": {},
	"edu.au": {},
}

// ExtractDomain extracts a domain name from user input, which may be a
// plain domain, a subdomain or a URL. Malformed input is an expected case
// and reported via the second return value, never as an error.
func ExtractDomain(input string) (string, bool) {
	input = strings.ToLower(strings.TrimSpace(input))
	input = strings.ReplaceAll(input, " ", "")

	if input == "" {
		return "", false
	}

	if strings.Contains(input, "://") {
		if parsed, err := url.Parse(input); err == nil {
			if host := parsed.Hostname(); IsValidDomainFormat(host) {
				return host, true
			}
		}

		// URL-like but not parseable: take everything after the scheme
		// separator up to the first path segment, drop the port
		rest := input[strings.Index(input, "://")+3:]
		host := strings.SplitN(rest, "/", 2)[0]
		host = strings.SplitN(host, ":", 2)[0]

		if IsValidDomainFormat(host) {
			return host, true
		}

		return "", false
	}

	// bare domain: strip path, query, fragment and port suffixes
	domain := strings.SplitN(input, "/", 2)[0]
	domain = strings.SplitN(domain, "?", 2)[0]
	domain = strings.SplitN(domain, "#", 2)[0]
	domain = strings.SplitN(domain, ":", 2)[0]

	if !IsValidDomainFormat(domain) {
		return "", false
	}

	return domain, true
}

// NormalizeInput extracts a validated domain from raw user input and
// classifies the input shape. For invalid input the domain is empty.
func NormalizeInput(input string) (string, InputType) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", InputTypeInvalid
	}

	inputType := InputTypeDomain
	if strings.Contains(trimmed, "://") {
		inputType = InputTypeUrl
	}

	domain, ok := ExtractDomain(trimmed)
	if !ok {
		return "", InputTypeInvalid
	}

	return domain, inputType
}

// IsValidDomainFormat reports whether domain is a validated, lowercase,
// dot separated label sequence without a trailing dot.
func IsValidDomainFormat(domain string) bool {
	if domain == "" || len(domain) > maxDomainLength {
		return false
	}

	if !strings.Contains(domain, ".") ||
		strings.HasPrefix(domain, ".") ||
		strings.HasSuffix(domain, ".") ||
		strings.Contains(domain, "..") {
		return false
	}

	return domainRegex.MatchString(domain)
}

// ExtractRootDomain collapses a subdomain to its registrable domain using
// the last-two-labels heuristic, escalated to three labels for known
// compound TLDs. Returns the input unchanged for root domains.
func ExtractRootDomain(domain string) string {
	if !IsValidDomainFormat(domain) {
		return ""
	}

	parts := strings.Split(domain, ".")
	if len(parts) <= 2 {
		return domain
	}

	root := strings.Join(parts[len(parts)-2:], ".")
	if _, ok := twoPartTLDs[root]; ok && len(parts) >= 3 {
		root = strings.Join(parts[len(parts)-3:], ".")
	}

	if !IsValidDomainFormat(root) {
		return domain
	}

	return root
}

// HasSubdomain reports whether domain appears to carry subdomain labels.
func HasSubdomain(domain string) bool {
	if !IsValidDomainFormat(domain) {
		return false
	}

	return ExtractRootDomain(domain) != domain
}

// FallbackDomains returns the ordered candidate list for validation:
// the domain itself, then its root domain if it differs.
func FallbackDomains(domain string) []string {
	if domain == "" {
		return nil
	}

	candidates := []string{domain}

	if HasSubdomain(domain) {
		if root := ExtractRootDomain(domain); root != "" && root != domain {
			candidates = append(candidates, root)
		}
	}

	return candidates
}
