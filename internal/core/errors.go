package core

import (
	"errors"
	"fmt"
)

// Kind tags a credential failure so it can be mapped to a response in one place.
type Kind int

const (
	// UpstreamFailure covers network errors, non-2xx statuses and unexpected bodies
	// from the session-creation call.
	UpstreamFailure Kind = iota + 1

	// ConfigurationFault means required signing values are absent from the process config.
	ConfigurationFault

	// SigningFailure covers anything going wrong while assembling or signing a token.
	SigningFailure
)

func (k Kind) String() string {
	switch k {
	case UpstreamFailure:
		return "upstream_failure"
	case ConfigurationFault:
		return "configuration_fault"
	case SigningFailure:
		return "signing_failure"
	default:
		return "unknown"
	}
}

var (
	ErrUpstreamTimeout     = errors.New("upstream request timed out")
	ErrMissingClientSecret = errors.New("upstream response has no client_secret")
)

// Error is the tagged error returned by the credential flows.
// Summary is the short, caller-facing message; Err holds the details.
type Error struct {
	Kind    Kind
	Summary string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Summary
	}
	return fmt.Sprintf("%s: %s", e.Summary, e.Err.Error())
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Details returns the underlying message without the summary prefix.
func (e *Error) Details() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func NewUpstreamFailure(err error) *Error {
	return &Error{Kind: UpstreamFailure, Summary: "Session failed", Err: err}
}

func NewConfigurationFault(err error) *Error {
	return &Error{Kind: ConfigurationFault, Summary: "Server not configured for Tableau JWT", Err: err}
}

func NewSigningFailure(err error) *Error {
	return &Error{Kind: SigningFailure, Summary: "JWT generation failed", Err: err}
}

// KindOf returns the kind of a tagged error, or 0 if err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
