package chunker

import "errors"

// Validation errors returned while ingesting scanned parts. Callers should
// match with [errors.Is]; none of these abort an exchange — the user can
// simply scan the offending code again.
var (
	// ErrPayloadTooLarge is returned by Split when the payload would need
	// more than MaxParts codes.
	ErrPayloadTooLarge = errors.New("payload exceeds chunk part limit")

	// ErrMalformedPart is returned for a string that carries the frame
	// marker but whose header cannot be parsed or is out of range.
	ErrMalformedPart = errors.New("malformed chunk part")

	// ErrTotalMismatch is returned when a part declares a different total
	// than the parts already accumulated in this session.
	ErrTotalMismatch = errors.New("chunk total mismatch")
)
