package recognition

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies why a recognition did not produce a result.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidInput
	KindNoMatch
	KindProvider
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindNoMatch:
		return "no_match"
	case KindProvider:
		return "provider_error"
	case KindTransport:
		return "transport_error"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by the recognition pipeline.
// Code is only set for KindProvider.
type Error struct {
	Kind    Kind
	Code    int
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

func InvalidInput(err error) *Error {
	return &Error{Kind: KindInvalidInput, Message: "Failed to decode base64 audio data", Err: err}
}

func NoMatch() *Error {
	return &Error{Kind: KindNoMatch, Message: "No music matches found"}
}

func ProviderError(code int, msg string) *Error {
	return &Error{
		Kind:    KindProvider,
		Code:    code,
		Message: fmt.Sprintf("ACRCloud error: %s (code: %d)", msg, code),
	}
}

// TransportError keeps err for logging; summary is what callers see.
func TransportError(summary string, err error) *Error {
	return &Error{
		Kind:    KindTransport,
		Message: "Recognition service unavailable: " + summary,
		Err:     err,
	}
}

func KindOf(err error) Kind {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	return KindUnknown
}

// HTTPStatus maps an error onto the status rendered by the recognize endpoint.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindNoMatch:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
