package session

import "errors"

var (
	// ErrCardNotPresent means no mount matched the card volume id. Not
	// fatal; callers may retry Init later.
	ErrCardNotPresent = errors.New("session: card not present")
	// ErrNotReady means the session is not in the Ready state.
	ErrNotReady = errors.New("session: not initialized")
	// ErrTimeout means the poll loop exhausted its retries. The session
	// stays Ready; callers may retry.
	ErrTimeout = errors.New("session: response poll timed out")
	// ErrSequenceDesync means the card reported a sequence newer than the
	// outstanding request. Fatal to the session; reinitialize.
	ErrSequenceDesync = errors.New("session: sequence desynchronized")
	// ErrSequenceExhausted means the 16-bit sequence space ran out.
	// Behavior past the wrap is undefined by the card, so it is fatal.
	ErrSequenceExhausted = errors.New("session: sequence space exhausted")
	// ErrBadConfig means the configured buffer size is not a power of two.
	ErrBadConfig = errors.New("session: buffer size must be a power of two")
)
