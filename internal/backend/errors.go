package backend

import (
	"errors"
	"fmt"
)

// Kind classifies a failed backend call. Callers branch on the kind, never on
// transport-level error types.
type Kind int

const (
	// KindConfig means a required origin was missing; no request was sent.
	KindConfig Kind = iota
	// KindTransport means the server could not be reached at all.
	KindTransport
	// KindForbidden is an authenticated 403; the session token was wiped.
	KindForbidden
	// KindHTTP is any other non-2xx response.
	KindHTTP
	// KindInvalidResponse is a 2xx response whose body was not valid JSON.
	KindInvalidResponse
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindTransport:
		return "transport"
	case KindForbidden:
		return "forbidden"
	case KindHTTP:
		return "http"
	case KindInvalidResponse:
		return "invalid_response"
	default:
		return "unknown"
	}
}

// Error carries everything known about a failed request. Status is zero when
// no response was received; Body holds the truncated raw response.
type Error struct {
	Kind    Kind
	Message string
	Status  int
	URL     string
	Body    string
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("backend %s (HTTP %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("backend %s: %s", e.Kind, e.Message)
}

// IsKind reports whether err is a backend Error of the given kind.
func IsKind(err error, kind Kind) bool {
	be, ok := AsError(err)
	return ok && be.Kind == kind
}

// AsError unwraps err into a backend Error when possible.
func AsError(err error) (*Error, bool) {
	var be *Error
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
