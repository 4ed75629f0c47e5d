package strava

import "fmt"

// maxErrorBodySize is the maximum size of a response body to carry in an
// error message.
const maxErrorBodySize = 500

// NotAuthenticatedError is returned for 401 responses. It is never retried
// here; if a refresh exchange itself gets one, the stored credentials need a
// manual re-link.
type NotAuthenticatedError struct{}

func (e *NotAuthenticatedError) Error() string {
	return "strava: not authenticated"
}

// PaidFeatureError is returned for 402 responses: the endpoint requires a
// paid tier for this account.
type PaidFeatureError struct{}

func (e *PaidFeatureError) Error() string {
	return "strava: endpoint requires a paid feature"
}

// NotFoundError is returned for 404 responses and carries the requested URL
// for diagnostics.
type NotFoundError struct {
	URL string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("strava: 404 - %s", e.URL)
}

// GenericError is returned for any other non-2xx response.
type GenericError struct {
	StatusCode int
	Body       string
}

func (e *GenericError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("strava: got %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("strava: got %d", e.StatusCode)
}

// ValidationError is returned when a provider response does not parse into
// the expected schema. Invalid payloads are typed errors, never silent
// defaults.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("strava: invalid payload: %s", e.Reason)
}

// SubscriptionError wraps a non-2xx response from the push-subscription
// management endpoints, carrying the raw response text.
type SubscriptionError struct {
	Body string
}

func (e *SubscriptionError) Error() string {
	return fmt.Sprintf("strava: subscription request failed: %s", e.Body)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
