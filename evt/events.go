package evt

import (
	"github.com/asaskevich/EventBus"
)

const (
	// ValidationFinished fires after a chain of trust validation completed.
	// Parameters: domain name, status string, duration in ms
	ValidationFinished = "validation:finished"

	// ValidationFallbackUsed fires if a subdomain validation fell back to the root domain.
	// Parameters: requested domain, validated domain
	ValidationFallbackUsed = "validation:fallbackUsed"

	// TLSAValidationFinished fires after a TLSA/DANE validation completed.
	// Parameters: domain name, status string
	TLSAValidationFinished = "tlsa:finished"

	// ApplicationStarted fires on application start. Parameters: version, build time
	ApplicationStarted = "application:started"
)

// nolint
var evtBus = EventBus.New()

func Bus() EventBus.Bus {
	return evtBus
}
