package telestream

import (
	"fmt"

	"tcloud/internal/services"
)

// ValidationError reports a missing or malformed argument detected before any
// request was sent.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "is required"
	}
	return fmt.Sprintf("telestream: %s %s", e.Field, reason)
}

// Is lets errors.Is(err, services.ErrValidation) match.
func (e *ValidationError) Is(target error) bool { return target == services.ErrValidation }

// ProtocolError reports a response with a status code of 400 or above.
type ProtocolError struct {
	StatusCode int
	Method     string
	Path       string
	Body       string
}

func (e *ProtocolError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("telestream: %s %s returned %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("telestream: %s %s returned %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

func (e *ProtocolError) Is(target error) bool {
	if target == services.ErrProtocol {
		return true
	}
	return target == services.ErrNotFound && e.StatusCode == 404
}

// DeserializationError reports a response body that does not match the
// expected JSON shape.
type DeserializationError struct {
	Path string
	Err  error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("telestream: decode %s response: %v", e.Path, e.Err)
}

func (e *DeserializationError) Unwrap() error { return e.Err }

func (e *DeserializationError) Is(target error) bool { return target == services.ErrDecode }

// TransportError reports a network-level failure while sending a request or
// reading its response.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("telestream: %s %s failed: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == services.ErrTransport }
