package domain

import (
	"errors"
	"fmt"
)

// ValidationError reports a request rejected locally before any network
// call was made. The field name matches the protocol key whose value is
// missing or malformed, so callers can reproduce Paybox's own
// "Mandatory values missing" diagnostics without a billed round trip.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// TransportError reports that the HTTPS exchange with the processor
// failed: connection error, timeout, or a non-2xx HTTP status. The
// request may or may not have reached Paybox, so the caller must decide
// whether to retry; retries are never performed automatically because a
// duplicate financial transaction is worse than a failed one.
type TransportError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transport error calling %s: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("transport error calling %s: unexpected HTTP status %d", e.Endpoint, e.StatusCode)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProtocolError reports a delivered response body that could not be
// decoded as Paybox key-value fields. Distinct from a decline: the call
// completed but the payload is unusable, which usually means a processor
// format change or corruption in transit.
type ProtocolError struct {
	Reason string
	Raw    []byte
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol error: %s", e.Reason)
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// IsTransportError reports whether err is (or wraps) a TransportError.
func IsTransportError(err error) bool {
	var terr *TransportError
	return errors.As(err, &terr)
}

// IsProtocolError reports whether err is (or wraps) a ProtocolError.
func IsProtocolError(err error) bool {
	var perr *ProtocolError
	return errors.As(err, &perr)
}
