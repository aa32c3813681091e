package acrcloud

import (
	"fmt"
)

// TransportError reports a failure talking to the provider: network errors,
// non-2xx statuses and payloads that do not match the provider schema.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("acrcloud: %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("acrcloud: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Summary describes the failure without leaking decoder or dialer internals.
func (e *TransportError) Summary() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("provider returned status %d", e.StatusCode)
	case e.Op == opDecode:
		return "provider returned a malformed response"
	default:
		return "provider request failed"
	}
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
