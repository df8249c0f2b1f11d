// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package peer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/MKhiriev/go-balance-sync/internal/config"
	"github.com/MKhiriev/go-balance-sync/internal/crypto"
	"github.com/MKhiriev/go-balance-sync/internal/logger"
	"github.com/MKhiriev/go-balance-sync/internal/utils"
)

// State is the lifecycle position of a peer connection.
type State string

const (
	StateIdle          State = "idle"
	StateOfferCreated  State = "offer-created"
	StateAnswerCreated State = "answer-created"
	StateConnecting    State = "connecting"
	StateOpen          State = "open"
	StateClosed        State = "closed"
	StateFailed        State = "failed"
)

const (
	defaultOpenWait = 60 * time.Second
	dialTimeout     = 5 * time.Second
	helloTimeout    = 10 * time.Second
)

// Options carries the injected configuration of one connection attempt.
// RelayServers come from user preferences; the caller resolves them before
// constructing the connection so this package stays off the store.
type Options struct {
	// Profile selects candidate gathering: config.PairingProfileLocal or
	// config.PairingProfileRemote. The initiator's choice travels inside
	// the offer and governs both sides.
	Profile string

	// ListenAddress is where the joiner listens for the initiator's dial,
	// "host:port". An empty host binds all interfaces; port 0 picks an
	// ephemeral port reflected in the answer candidates.
	ListenAddress string

	// OpenWait bounds how long the joiner waits for the initiator after
	// publishing its answer.
	OpenWait time.Duration

	// RelayServers are extra "host:port" candidates advertised under the
	// remote profile.
	RelayServers []string
}

// Connection is the state machine negotiating one ephemeral channel between
// two devices:
//
//	idle -> offer-created  (initiator, CreateOffer)
//	idle -> answer-created (joiner, AcceptOffer)
//	     -> connecting -> open -> closed | failed
//
// Operations called from a state that does not permit them fail with
// ErrInvalidTransition. Every negotiation failure tears all resources down
// and lands in failed; ticket rejections happen before any resource exists
// and leave the state untouched, so the user can simply re-scan.
type Connection struct {
	keys crypto.ChannelKeyService
	uuid *utils.UUIDGenerator
	opts Options
	log  *logger.Logger

	mu           sync.Mutex
	state        State
	lastErr      error
	sessionID    string
	secret       []byte
	offerTicket  string
	answerTicket string
	listener     net.Listener
	channel      *Channel
	subscribers  []chan State
}

// NewConnection builds an idle connection with the given configuration.
func NewConnection(keys crypto.ChannelKeyService, opts Options, log *logger.Logger) *Connection {
	if opts.Profile == "" {
		opts.Profile = config.PairingProfileLocal
	}
	if opts.ListenAddress == "" {
		opts.ListenAddress = ":0"
	}
	if opts.OpenWait <= 0 {
		opts.OpenWait = defaultOpenWait
	}

	return &Connection{
		keys:  keys,
		uuid:  utils.NewUUIDGenerator(),
		opts:  opts,
		log:   log,
		state: StateIdle,
	}
}

// State reports the current lifecycle position.
func (c *Connection) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Err reports the transport error that moved the connection into failed,
// or nil.
func (c *Connection) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Events subscribes to state transitions. The current state is delivered
// immediately, every later transition follows, and the channel closes once
// the connection reaches closed or failed. Slow subscribers miss nothing:
// the buffer outlasts the longest possible transition sequence.
func (c *Connection) Events() <-chan State {
	c.mu.Lock()
	defer c.mu.Unlock()

	events := make(chan State, 8)
	events <- c.state
	if c.state == StateClosed || c.state == StateFailed {
		close(events)
		return events
	}
	c.subscribers = append(c.subscribers, events)
	return events
}

// CreateOffer mints a fresh pairing session on the initiating device and
// returns the offer ticket to relay out of band. Calling it again while the
// offer is still current returns the same ticket.
func (c *Connection) CreateOffer(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StateIdle:
	case StateOfferCreated:
		return c.offerTicket, nil
	default:
		return "", transportErr("create-offer", fmt.Errorf("%w: %s", ErrInvalidTransition, c.state))
	}

	secret, err := c.keys.GeneratePairingSecret()
	if err != nil {
		return "", transportErr("create-offer", err)
	}

	sessionID := c.uuid.Generate()
	ticket, err := mintOffer(sessionID, secret, c.opts.Profile, OfferTTL)
	if err != nil {
		return "", transportErr("create-offer", err)
	}

	c.secret = secret
	c.sessionID = sessionID
	c.offerTicket = ticket
	c.transitionLocked(StateOfferCreated)

	c.log.Info().Str("func", "*Connection.CreateOffer").Msgf("offer created for session %s", sessionID)
	return ticket, nil
}

// AcceptOffer validates the scanned offer on the joining device, starts the
// listener, and returns the answer ticket. A malformed or expired offer is
// rejected before anything is touched, so the state stays idle and the user
// can scan again. Negotiation then continues in the background: the joiner
// waits for the initiator to dial in, bounded by OpenWait. Calling it again
// while the answer is still current returns the same ticket.
func (c *Connection) AcceptOffer(ctx context.Context, ticket string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StateIdle:
	case StateAnswerCreated:
		return c.answerTicket, nil
	default:
		return "", transportErr("accept-offer", fmt.Errorf("%w: %s", ErrInvalidTransition, c.state))
	}

	offer, err := parseOffer(ticket)
	if err != nil {
		return "", transportErr("accept-offer", err)
	}

	listener, err := net.Listen("tcp", c.opts.ListenAddress)
	if err != nil {
		return "", c.failLocked("accept-offer", err)
	}
	c.listener = listener

	host, _, _ := net.SplitHostPort(c.opts.ListenAddress)
	port := listener.Addr().(*net.TCPAddr).Port
	candidates, err := gatherCandidates(offer.Profile, host, port, c.opts.RelayServers)
	if err != nil {
		return "", c.failLocked("accept-offer", err)
	}

	answer, err := mintAnswer(offer.SessionID, offer.Secret, candidates)
	if err != nil {
		return "", c.failLocked("accept-offer", err)
	}

	c.secret = offer.Secret
	c.sessionID = offer.SessionID
	c.answerTicket = answer
	c.transitionLocked(StateAnswerCreated)

	go c.waitForInitiator(listener, offer)

	c.log.Info().Str("func", "*Connection.AcceptOffer").
		Msgf("offer accepted for session %s, listening on %s", offer.SessionID, listener.Addr())
	return answer, nil
}

// waitForInitiator runs on the joiner after AcceptOffer returned. It accepts
// exactly one inbound connection within the open-wait window, proves the
// pairing secret via the sealed hello, and moves the machine to open.
func (c *Connection) waitForInitiator(listener net.Listener, offer *Offer) {
	if tcp, ok := listener.(*net.TCPListener); ok {
		_ = tcp.SetDeadline(time.Now().Add(c.opts.OpenWait))
	}

	conn, err := listener.Accept()
	if err != nil {
		if errors.Is(err, os.ErrDeadlineExceeded) {
			err = fmt.Errorf("%w after %s", ErrOpenTimeout, c.opts.OpenWait)
		}
		c.failFromState(StateAnswerCreated, "accept-offer", err)
		return
	}
	_ = listener.Close()

	if !c.advance(StateAnswerCreated, StateConnecting) {
		_ = conn.Close()
		return
	}

	session, err := c.keys.DeriveSessionKeys(offer.Secret, offer.SessionID)
	if err != nil {
		_ = conn.Close()
		c.failFromState(StateConnecting, "accept-offer", err)
		return
	}

	channel := newChannel(conn, c.keys, session, false)
	if err := channel.hello(helloTimeout); err != nil {
		_ = conn.Close()
		c.failFromState(StateConnecting, "accept-offer", err)
		return
	}
	channel.start()

	c.mu.Lock()
	if c.state != StateConnecting {
		c.mu.Unlock()
		_ = channel.Close()
		return
	}
	c.channel = channel
	c.listener = nil
	c.transitionLocked(StateOpen)
	c.mu.Unlock()

	c.log.Info().Str("func", "*Connection.waitForInitiator").
		Msgf("channel open for session %s", offer.SessionID)
}

// CompleteConnection finishes the flow on the initiating device: it checks
// the scanned answer against the current offer, dials the peer's candidates
// in order, and opens the sealed channel. A bad answer leaves the machine in
// offer-created so a corrected one can be scanned.
func (c *Connection) CompleteConnection(ctx context.Context, ticket string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	if c.state != StateOfferCreated {
		state := c.state
		c.mu.Unlock()
		return transportErr("complete-connection", fmt.Errorf("%w: %s", ErrInvalidTransition, state))
	}
	secret := c.secret
	sessionID := c.sessionID
	c.mu.Unlock()

	answer, err := parseAnswer(ticket, secret)
	if err != nil {
		return transportErr("complete-connection", err)
	}
	if answer.SessionID != sessionID {
		return transportErr("complete-connection", ErrSessionMismatch)
	}

	if !c.advance(StateOfferCreated, StateConnecting) {
		return transportErr("complete-connection", fmt.Errorf("%w: %s", ErrInvalidTransition, c.State()))
	}

	session, err := c.keys.DeriveSessionKeys(secret, sessionID)
	if err != nil {
		return c.failFromState(StateConnecting, "complete-connection", err)
	}

	channel, err := c.dialCandidates(ctx, answer.Candidates, session)
	if err != nil {
		return c.failFromState(StateConnecting, "complete-connection", err)
	}

	c.mu.Lock()
	if c.state != StateConnecting {
		c.mu.Unlock()
		_ = channel.Close()
		return transportErr("complete-connection", ErrClosed)
	}
	c.channel = channel
	c.transitionLocked(StateOpen)
	c.mu.Unlock()

	c.log.Info().Str("func", "*Connection.CompleteConnection").
		Msgf("channel open for session %s", sessionID)
	return nil
}

// dialCandidates tries each candidate address until one produces an
// authenticated channel. A successful dial with a failed hello moves on to
// the next candidate: a stale relay must not mask a reachable LAN peer.
func (c *Connection) dialCandidates(ctx context.Context, candidates []string, session crypto.SessionKeys) (*Channel, error) {
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	dialer := &net.Dialer{Timeout: dialTimeout}
	var lastErr error
	for _, addr := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		conn, err := dialer.DialContext(ctx, "tcp", addr)
		if err != nil {
			lastErr = err
			continue
		}

		channel := newChannel(conn, c.keys, session, true)
		if err := channel.hello(helloTimeout); err != nil {
			_ = conn.Close()
			lastErr = err
			continue
		}
		channel.start()

		c.log.Debug().Str("func", "*Connection.dialCandidates").Msgf("connected to %s", addr)
		return channel, nil
	}

	return nil, fmt.Errorf("%w: %w", ErrDialFailed, lastErr)
}

// Channel returns the sealed message stream once the connection is open.
func (c *Connection) Channel() (*Channel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateOpen || c.channel == nil {
		return nil, transportErr("channel", fmt.Errorf("%w: state is %s", ErrNotOpen, c.state))
	}
	return c.channel, nil
}

// WaitOpen blocks until the connection opens, fails, closes, or ctx ends.
func (c *Connection) WaitOpen(ctx context.Context) error {
	events := c.Events()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case state, ok := <-events:
			if !ok {
				if err := c.Err(); err != nil {
					return err
				}
				return transportErr("wait-open", ErrClosed)
			}
			switch state {
			case StateOpen:
				return nil
			case StateFailed:
				if err := c.Err(); err != nil {
					return err
				}
				return transportErr("wait-open", ErrClosed)
			case StateClosed:
				return transportErr("wait-open", ErrClosed)
			}
		}
	}
}

// Close tears down the listener, channel, and any in-flight negotiation.
// Safe to call from any state, any number of times.
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateClosed {
		return nil
	}
	c.teardownLocked()
	c.transitionLocked(StateClosed)
	return nil
}

// advance moves from exactly `from` to `to`, reporting whether it did.
func (c *Connection) advance(from, to State) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != from {
		return false
	}
	c.transitionLocked(to)
	return true
}

// failFromState fails the machine unless it already left `from`, which
// means a concurrent Close won the race and the failure is moot.
func (c *Connection) failFromState(from State, op string, cause error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != from {
		return transportErr(op, cause)
	}
	return c.failLocked(op, cause)
}

func (c *Connection) failLocked(op string, cause error) error {
	err := transportErr(op, cause)
	c.lastErr = err
	c.teardownLocked()
	c.transitionLocked(StateFailed)

	c.log.Warn().Str("func", "*Connection.fail").Msgf("peer connection failed: %v", err)
	return err
}

func (c *Connection) teardownLocked() {
	if c.listener != nil {
		_ = c.listener.Close()
		c.listener = nil
	}
	if c.channel != nil {
		_ = c.channel.Close()
		c.channel = nil
	}
}

func (c *Connection) transitionLocked(next State) {
	if c.state == next {
		return
	}
	c.state = next
	c.log.Debug().Str("func", "*Connection.transition").Msgf("peer connection state: %s", next)

	for _, sub := range c.subscribers {
		select {
		case sub <- next:
		default:
		}
	}
	if next == StateClosed || next == StateFailed {
		for _, sub := range c.subscribers {
			close(sub)
		}
		c.subscribers = nil
	}
}
