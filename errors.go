package securesession

import "errors"

var (
	// ErrValidation reports input that is structurally invalid or whose
	// authentication tag does not verify. The session should be treated as
	// absent and a fresh one issued.
	ErrValidation = errors.New("session validation failed")
	// ErrInternal reports a failure of the secure randomness source during
	// encoding. The host environment is degraded; treat as a hard failure
	// for the request.
	ErrInternal = errors.New("internal session error")
	// ErrMalformedTransport reports a payload that authenticated correctly
	// but could not be parsed into a SessionTransport, such as a version
	// skew between writer and reader.
	ErrMalformedTransport = errors.New("malformed session transport payload")
)
