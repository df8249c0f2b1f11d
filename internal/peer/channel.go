// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package peer

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/MKhiriev/go-balance-sync/internal/crypto"
	"github.com/MKhiriev/go-balance-sync/models"
)

const (
	// maxFrameSize bounds a single sealed frame. A full-device payload of a
	// personal task list fits with a wide margin.
	maxFrameSize = 64 << 20

	// helloMessage is the plaintext both sides must produce from each
	// other's first frame before the connection reports open.
	helloMessage = "balance-sync/hello"

	defaultWriteTimeout = 2 * time.Minute
)

// Channel is the sealed message stream of one open peer connection. Every
// message is encrypted into a length-prefixed ChaCha20-Poly1305 frame with a
// per-direction key and a strictly increasing frame counter, so frames
// cannot be reflected, reordered, or replayed within a session.
//
// A background goroutine drains inbound frames into a buffered queue. Both
// orchestrators send their payload before reading the peer's, and without
// the drain two large payloads could fill both socket send buffers and
// deadlock the session.
type Channel struct {
	conn net.Conn
	keys crypto.ChannelKeyService

	sendKey []byte
	recvKey []byte

	sendMu      sync.Mutex
	sendCounter uint64
	recvCounter uint64

	initiator bool

	incoming chan models.ChannelMessage
	done     chan struct{}

	mu      sync.Mutex
	readErr error
	closed  bool
}

// newChannel wraps an established conn. The initiator seals with the
// initiator-to-joiner key and opens with the opposite one; the joiner
// mirrors that. The channel is not usable until hello and start ran.
func newChannel(conn net.Conn, keys crypto.ChannelKeyService, session crypto.SessionKeys, initiator bool) *Channel {
	c := &Channel{
		conn:      conn,
		keys:      keys,
		initiator: initiator,
		incoming:  make(chan models.ChannelMessage, 16),
		done:      make(chan struct{}),
	}
	if initiator {
		c.sendKey = session.InitiatorToJoiner
		c.recvKey = session.JoinerToInitiator
	} else {
		c.sendKey = session.JoinerToInitiator
		c.recvKey = session.InitiatorToJoiner
	}
	return c
}

// hello proves to both sides that they derived the same session keys. The
// initiator writes first and the joiner answers, so the exchange cannot
// deadlock even on an unbuffered transport. Frame counter 0 is consumed by
// the hello in each direction.
func (c *Channel) hello(timeout time.Duration) error {
	if err := c.conn.SetDeadline(time.Now().Add(timeout)); err != nil {
		return transportErr("channel", err)
	}
	defer c.conn.SetDeadline(time.Time{})

	if c.initiator {
		if err := c.sendHello(); err != nil {
			return err
		}
		return c.recvHello()
	}
	if err := c.recvHello(); err != nil {
		return err
	}
	return c.sendHello()
}

func (c *Channel) sendHello() error {
	frame, err := c.keys.Seal(c.sendKey, c.sendCounter, []byte(helloMessage))
	if err != nil {
		return transportErr("channel", err)
	}
	if err := writeFrame(c.conn, frame); err != nil {
		return transportErr("channel", err)
	}
	c.sendCounter++
	return nil
}

func (c *Channel) recvHello() error {
	frame, err := readFrame(c.conn)
	if err != nil {
		return transportErr("channel", err)
	}
	plain, err := c.keys.Open(c.recvKey, c.recvCounter, frame)
	if err != nil {
		return transportErr("channel", fmt.Errorf("%w: %v", ErrHandshakeFailed, err))
	}
	if string(plain) != helloMessage {
		return transportErr("channel", fmt.Errorf("%w: unexpected hello", ErrHandshakeFailed))
	}
	c.recvCounter++
	return nil
}

// start launches the inbound drain. Call exactly once, after hello.
func (c *Channel) start() {
	go c.readLoop()
}

func (c *Channel) readLoop() {
	for {
		frame, err := readFrame(c.conn)
		if err != nil {
			c.finish(err)
			return
		}

		plain, err := c.keys.Open(c.recvKey, c.recvCounter, frame)
		if err != nil {
			c.finish(fmt.Errorf("open frame: %w", err))
			return
		}
		c.recvCounter++

		var msg models.ChannelMessage
		if err := json.Unmarshal(plain, &msg); err != nil {
			c.finish(fmt.Errorf("decode message: %w", err))
			return
		}

		select {
		case c.incoming <- msg:
		case <-c.done:
			c.finish(net.ErrClosed)
			return
		}
	}
}

// finish records why the inbound stream ended and closes the queue. A local
// Close and a peer hangup both surface as ErrClosed.
func (c *Channel) finish(cause error) {
	c.mu.Lock()
	switch {
	case c.closed || errors.Is(cause, net.ErrClosed):
		c.readErr = transportErr("channel", ErrClosed)
	case errors.Is(cause, io.EOF):
		c.readErr = transportErr("channel", fmt.Errorf("%w: peer hung up", ErrClosed))
	default:
		c.readErr = transportErr("channel", cause)
	}
	c.mu.Unlock()
	close(c.incoming)
}

// Send seals msg into the next outbound frame and writes it. The context
// deadline, when present, bounds the write; otherwise a generous default
// applies so a stalled peer cannot hang the session forever.
func (c *Channel) Send(ctx context.Context, msg models.ChannelMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.isClosed() {
		return transportErr("channel", ErrClosed)
	}

	plain, err := json.Marshal(msg)
	if err != nil {
		return transportErr("channel", err)
	}

	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	frame, err := c.keys.Seal(c.sendKey, c.sendCounter, plain)
	if err != nil {
		return transportErr("channel", err)
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(defaultWriteTimeout)
	}
	if err := c.conn.SetWriteDeadline(deadline); err != nil {
		return transportErr("channel", err)
	}
	defer c.conn.SetWriteDeadline(time.Time{})

	if err := writeFrame(c.conn, frame); err != nil {
		if c.isClosed() {
			return transportErr("channel", ErrClosed)
		}
		return transportErr("channel", err)
	}
	c.sendCounter++
	return nil
}

// Receive returns the next inbound message, blocking until one arrives, the
// context ends, or the stream finishes.
func (c *Channel) Receive(ctx context.Context) (models.ChannelMessage, error) {
	select {
	case <-ctx.Done():
		return models.ChannelMessage{}, ctx.Err()
	case msg, ok := <-c.incoming:
		if !ok {
			return models.ChannelMessage{}, c.readError()
		}
		return msg, nil
	}
}

// Close tears the underlying conn down. Safe to call more than once;
// in-flight Receive calls return ErrClosed.
func (c *Channel) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	close(c.done)
	return c.conn.Close()
}

func (c *Channel) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *Channel) readError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.readErr != nil {
		return c.readErr
	}
	return transportErr("channel", ErrClosed)
}

// writeFrame prefixes frame with its big-endian length and writes both in a
// single conn.Write call, so concurrent writers can never interleave bytes.
func writeFrame(conn net.Conn, frame []byte) error {
	if len(frame) > maxFrameSize {
		return fmt.Errorf("frame size %d out of bounds", len(frame))
	}

	buf := make([]byte, 4+len(frame))
	binary.BigEndian.PutUint32(buf, uint32(len(frame)))
	copy(buf[4:], frame)

	_, err := conn.Write(buf)
	return err
}

// readFrame reads one length-prefixed frame off conn.
func readFrame(conn net.Conn) ([]byte, error) {
	var header [4]byte
	if _, err := io.ReadFull(conn, header[:]); err != nil {
		return nil, err
	}

	size := binary.BigEndian.Uint32(header[:])
	if size == 0 || size > maxFrameSize {
		return nil, fmt.Errorf("frame size %d out of bounds", size)
	}

	frame := make([]byte, size)
	if _, err := io.ReadFull(conn, frame); err != nil {
		return nil, err
	}
	return frame, nil
}
