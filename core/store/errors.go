package store

import "fmt"

// Error is the typed error surfaced by grid operations. It carries the
// store's own error code alongside the message so callers can log both.
type Error struct {
	Message string
	Code    int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (code %d)", e.Message, e.Code)
}

// Store error codes reported by the gateway.
const (
	CodeNotFound         = -310000
	CodeAlreadyExists    = -809000
	CodeNotEmpty         = -821000
	CodeChecksumMismatch = -314000
	CodeConnection       = -305000
)

// Errorf builds an Error with a formatted message.
func Errorf(code int, format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Code: code}
}
