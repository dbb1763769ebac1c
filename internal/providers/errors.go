package providers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// apiError is a provider-tagged error carrying the HTTP status and response
// body of a failed call.
type apiError struct {
	provider string
	status   int
	body     string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.provider, e.status, strings.TrimSpace(e.body))
}

// rateLimitPhrases covers vendors that report exhaustion without a 429.
var rateLimitPhrases = []string{
	"resource exhausted",
	"resource_exhausted",
	"quota",
	"rate limit",
	"rate_limit",
}

// IsRateLimit reports whether err looks like provider rate limiting: a 429
// status or a vendor-specific exhaustion phrase in the response body.
func IsRateLimit(err error) bool {
	var ae *apiError
	if !errors.As(err, &ae) {
		return false
	}
	if ae.status == http.StatusTooManyRequests {
		return true
	}
	body := strings.ToLower(ae.body)
	for _, phrase := range rateLimitPhrases {
		if strings.Contains(body, phrase) {
			return true
		}
	}
	return false
}

// IsAuthError reports whether err is a credential rejection (401/403).
func IsAuthError(err error) bool {
	var ae *apiError
	if !errors.As(err, &ae) {
		return false
	}
	return ae.status == http.StatusUnauthorized || ae.status == http.StatusForbidden
}
