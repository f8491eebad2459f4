package llm

import "fmt"

// ErrUnavailable indicates the provider is not configured or initialized.
// Operator-actionable: set the API key or switch providers.
type ErrUnavailable struct {
	Reason string
}

func (e *ErrUnavailable) Error() string {
	if e.Reason != "" {
		return "llm provider unavailable: " + e.Reason
	}
	return "llm provider unavailable"
}

// ErrQuotaExceeded indicates the provider rejected the call for rate or
// quota reasons. Callers should surface billing/plan guidance rather than
// retry blindly.
type ErrQuotaExceeded struct {
	Err error
}

func (e *ErrQuotaExceeded) Error() string {
	return fmt.Sprintf("llm provider quota exceeded: %v", e.Err)
}

func (e *ErrQuotaExceeded) Unwrap() error { return e.Err }

// ErrProvider covers all other provider-side failures, including responses
// from which no JSON payload could be recovered. Detail carries the
// provider-supplied message for the gateway-style error response.
type ErrProvider struct {
	Detail string
	Err    error
}

func (e *ErrProvider) Error() string {
	if e.Detail != "" {
		return "llm provider error: " + e.Detail
	}
	return fmt.Sprintf("llm provider error: %v", e.Err)
}

func (e *ErrProvider) Unwrap() error { return e.Err }
