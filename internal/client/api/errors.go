package api

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUnavailable indicates a transport-level failure: the server could
	// not be reached or did not produce a response.
	ErrUnavailable = errors.New("server unavailable")

	// ErrInvalidCredentials is returned by Login when the server rejects
	// the email/password pair.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthorized indicates the server rejected the bearer token on an
	// authenticated call (expired or invalid session).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the server refused an action the session is
	// not permitted to perform. The session itself remains valid.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrServer indicates an unexpected server-side failure.
	ErrServer = errors.New("server error")
)

// ValidationError carries per-field messages from a 422 response.
// Match with errors.As.
type ValidationError struct {
	Fields map[string][]string `json:"errors"`
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("validation failed: ")
	for i, k := range keys {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s: %s", k, strings.Join(e.Fields[k], ", "))
	}
	return b.String()
}
