package oerror

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedPacket is returned when a movement update does not carry the amount of fields
	// the active protocol revision requires.
	ErrMalformedPacket = errors.New("malformed movement packet")
	// ErrInvalidContent is returned when a movement update is structurally sound but carries
	// non-finite or out of bounds coordinates or angles.
	ErrInvalidContent = errors.New("invalid movement content")
	// ErrStaleAcknowledgement is returned when a confirmation does not match the last issued relocation.
	ErrStaleAcknowledgement = errors.New("stale teleport acknowledgement")
	// ErrMissingSetBack is returned when a set-back is requested before one was adopted.
	ErrMissingSetBack = errors.New("no set-back location available")
	// ErrDegradedProtocolCapability is recorded once when the protocol has no confirmation channel.
	ErrDegradedProtocolCapability = errors.New("protocol has no teleport confirmation channel")
	// ErrSessionClosed is returned when an update arrives for a session that has already ended.
	ErrSessionClosed = errors.New("session closed")
)

// OomphError is an error raised by an internal invariant of the engine.
type OomphError struct {
	Err string
}

// New formats a new OomphError.
func New(message string, args ...any) *OomphError {
	if len(args) == 0 {
		return &OomphError{Err: message}
	}
	return &OomphError{Err: fmt.Sprintf(message, args...)}
}

func (e *OomphError) Error() string {
	return e.Err
}

// Wrap attaches context to one of the sentinel errors so it still matches with errors.Is.
func Wrap(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}
