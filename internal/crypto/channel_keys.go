// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

// PairingSecretSize is the byte length of the out-of-band pairing secret.
const PairingSecretSize = 32

// HKDF info strings separating the two transmit directions. Changing either
// breaks compatibility with every existing client.
const (
	infoInitiatorToJoiner = "balance-sync/initiator->joiner"
	infoJoinerToInitiator = "balance-sync/joiner->initiator"
)

// channelKeyService is the private implementation of [ChannelKeyService].
type channelKeyService struct{}

// NewChannelKeyService constructs a [ChannelKeyService]. The service is
// stateless; all key material lives with the caller for exactly one session.
func NewChannelKeyService() ChannelKeyService {
	return &channelKeyService{}
}

// GeneratePairingSecret implements [ChannelKeyService]. It reads 32 random
// bytes from the OS CSPRNG. Returns an error if the random read fails.
func (c *channelKeyService) GeneratePairingSecret() ([]byte, error) {
	secret := make([]byte, PairingSecretSize)
	if _, err := io.ReadFull(rand.Reader, secret); err != nil {
		return nil, err
	}
	return secret, nil
}

// DeriveSessionKeys implements [ChannelKeyService]. Both directions are
// expanded from the same secret with HKDF-SHA256, salted by the session id
// and domain-separated by direction-specific info strings.
func (c *channelKeyService) DeriveSessionKeys(secret []byte, sessionID string) (SessionKeys, error) {
	if len(secret) < 16 {
		return SessionKeys{}, fmt.Errorf("pairing secret too short: %d bytes", len(secret))
	}
	if sessionID == "" {
		return SessionKeys{}, fmt.Errorf("session id must not be empty")
	}

	initiatorToJoiner, err := deriveKey(secret, sessionID, infoInitiatorToJoiner)
	if err != nil {
		return SessionKeys{}, fmt.Errorf("derive initiator key: %w", err)
	}
	joinerToInitiator, err := deriveKey(secret, sessionID, infoJoinerToInitiator)
	if err != nil {
		return SessionKeys{}, fmt.Errorf("derive joiner key: %w", err)
	}

	return SessionKeys{
		InitiatorToJoiner: initiatorToJoiner,
		JoinerToInitiator: joinerToInitiator,
	}, nil
}

// Seal implements [ChannelKeyService]. The output is ciphertext plus the
// Poly1305 tag; the nonce is not transmitted because both sides track the
// frame counter.
func (c *channelKeyService) Seal(key []byte, counter uint64, plaintext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("create aead: %w", err)
	}
	return aead.Seal(nil, frameNonce(counter), plaintext, nil), nil
}

// Open implements [ChannelKeyService]. An authentication failure here almost
// always means the partner used a different pairing secret, the counters ran
// out of step, or the frame was corrupted in transit.
func (c *channelKeyService) Open(key []byte, counter uint64, ciphertext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("create aead: %w", err)
	}

	plaintext, err := aead.Open(nil, frameNonce(counter), ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("open frame %d: %w", counter, err)
	}
	return plaintext, nil
}

// deriveKey expands one 256-bit direction key from the pairing secret.
func deriveKey(secret []byte, sessionID, info string) ([]byte, error) {
	reader := hkdf.New(sha256.New, secret, []byte(sessionID), []byte(info))
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, err
	}
	return key, nil
}

// frameNonce builds the 12-byte nonce for a frame counter: 4 zero bytes
// followed by the counter in big-endian order.
func frameNonce(counter uint64) []byte {
	nonce := make([]byte, chacha20poly1305.NonceSize)
	binary.BigEndian.PutUint64(nonce[4:], counter)
	return nonce
}
