package peer

import "errors"

// Sentinel failures of the pairing and connection flow. All of them reach the
// caller wrapped in a [TransportError], so both errors.Is against a sentinel
// and errors.As against the typed error work.
var (
	// ErrMalformedTicket means an offer or answer string could not be parsed
	// or its signature did not verify.
	ErrMalformedTicket = errors.New("malformed pairing ticket")

	// ErrTicketExpired means the offer outlived its validity window and must
	// be re-created on the initiating device.
	ErrTicketExpired = errors.New("pairing ticket expired")

	// ErrSessionMismatch means an answer was produced for a different offer
	// than the one this connection minted.
	ErrSessionMismatch = errors.New("answer does not match the current offer")

	// ErrNoCandidates means candidate gathering produced no address a peer
	// could dial.
	ErrNoCandidates = errors.New("no connection candidates available")

	// ErrDialFailed means every candidate address was tried and none
	// produced an authenticated channel.
	ErrDialFailed = errors.New("could not reach the peer on any candidate address")

	// ErrHandshakeFailed means a transport-level hello could not be
	// authenticated. The usual cause is a mistyped or foreign pairing code.
	ErrHandshakeFailed = errors.New("channel handshake failed")

	// ErrOpenTimeout means the joiner's bounded wait for the initiator to
	// dial in expired.
	ErrOpenTimeout = errors.New("timed out waiting for the peer to connect")

	// ErrClosed means the connection was torn down locally.
	ErrClosed = errors.New("peer connection is closed")

	// ErrNotOpen means the channel was requested before the connection
	// reached the open state.
	ErrNotOpen = errors.New("peer channel is not open")

	// ErrInvalidTransition means an operation was called from a state that
	// does not permit it.
	ErrInvalidTransition = errors.New("operation not allowed in the current connection state")
)

// TransportError is the failure type of every negotiation and channel
// operation. Op names the step that failed ("create-offer", "accept-offer",
// "complete-connection", "channel"); Err carries the cause, usually one of
// the package sentinels.
//
// A TransportError never leaves the state machine with a half-built channel:
// the connection is either still in its pre-attempt state (ticket rejected
// before any resource was touched) or in the terminal failed state with all
// resources released.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return "peer transport: " + e.Op + ": " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// transportErr wraps err into a *TransportError unless it already is one.
func transportErr(op string, err error) error {
	var t *TransportError
	if errors.As(err, &t) {
		return err
	}
	return &TransportError{Op: op, Err: err}
}
