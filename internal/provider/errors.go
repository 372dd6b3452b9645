package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Normalized failure kinds. Every error returned by Gateway matches exactly one
// of these with errors.Is.
var (
	ErrSchemaViolation     = errors.New("schema violation")
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrInvalidAudio        = errors.New("invalid audio")
	ErrProviderUnavailable = errors.New("provider unavailable")
	ErrProviderAuthFailure = errors.New("provider auth failure")
)

const maxErrorBodyBytes = 512

// StatusError is returned by vendor clients when the upstream answers with a
// non-2xx status.
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s responded %d: %s", e.Provider, e.StatusCode, truncate(e.Body, maxErrorBodyBytes))
}

// Error is a gateway failure classified into one of the Err* kinds.
type Error struct {
	Kind       error
	Provider   string
	Operation  string
	StatusCode int
	Body       string
	Err        error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s.%s: %v", e.Provider, e.Operation, e.Kind)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Normalize classifies err into the gateway error taxonomy. A nil error stays nil.
func Normalize(providerName, operation string, err error) error {
	if err == nil {
		return nil
	}
	var gatewayErr *Error
	if errors.As(err, &gatewayErr) {
		return gatewayErr
	}

	normalized := &Error{
		Provider:  providerName,
		Operation: operation,
		Err:       err,
	}
	for _, kind := range []error{ErrSchemaViolation, ErrUnsupportedLanguage, ErrInvalidAudio, ErrProviderAuthFailure} {
		if errors.Is(err, kind) {
			normalized.Kind = kind
			return normalized
		}
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		normalized.StatusCode = statusErr.StatusCode
		normalized.Body = truncate(statusErr.Body, maxErrorBodyBytes)
		switch statusErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			normalized.Kind = ErrProviderAuthFailure
		default:
			normalized.Kind = ErrProviderUnavailable
		}
		return normalized
	}

	if errors.Is(err, context.DeadlineExceeded) {
		normalized.StatusCode = http.StatusGatewayTimeout
	}
	normalized.Kind = ErrProviderUnavailable
	return normalized
}

// UpstreamStatus returns the upstream HTTP status carried by err, or 0.
func UpstreamStatus(err error) int {
	var gatewayErr *Error
	if errors.As(err, &gatewayErr) {
		return gatewayErr.StatusCode
	}
	return 0
}

func kindLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrSchemaViolation):
		return "schema_violation"
	case errors.Is(err, ErrUnsupportedLanguage):
		return "unsupported_language"
	case errors.Is(err, ErrInvalidAudio):
		return "invalid_audio"
	case errors.Is(err, ErrProviderAuthFailure):
		return "auth_failure"
	default:
		return "unavailable"
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
