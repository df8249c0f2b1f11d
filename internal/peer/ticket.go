// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package peer

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-balance-sync/internal/crypto"
	"github.com/golang-jwt/jwt/v5"
)

// Pairing tickets are compact signed JWT strings relayed between the two
// devices out of band, usually chunked into scannable codes.
//
// The offer is self-validating: the pairing secret rides inside the claims
// and the same secret signs the token. The joiner first parses the token
// unverified to extract the secret, then verifies the signature with it.
// That detects corruption picked up in chunked transit without any shared
// key existing beforehand. The answer is signed with the secret taken from
// the offer, so only a device that actually scanned the offer can produce
// an answer the initiator accepts.
const (
	ticketIssuer = "balance-sync"

	ticketRoleOffer  = "offer"
	ticketRoleAnswer = "answer"

	// OfferTTL bounds how long a displayed offer stays scannable. An answer
	// gets the same window.
	OfferTTL = 10 * time.Minute
)

// Offer is the decoded content of an initiator's pairing ticket.
type Offer struct {
	SessionID string
	Secret    []byte
	Profile   string
	ExpiresAt time.Time
}

// Answer is the decoded content of a joiner's reply ticket.
type Answer struct {
	SessionID  string
	Candidates []string
	ExpiresAt  time.Time
}

type offerClaims struct {
	jwt.RegisteredClaims
	Role    string `json:"role"`
	Secret  string `json:"secret"`
	Profile string `json:"profile"`
}

type answerClaims struct {
	jwt.RegisteredClaims
	Role       string   `json:"role"`
	Candidates []string `json:"candidates"`
}

// mintOffer serializes a fresh pairing session into a signed offer ticket.
// The ttl is a parameter so tests can mint already-expired tickets.
func mintOffer(sessionID string, secret []byte, profile string, ttl time.Duration) (string, error) {
	if sessionID == "" || len(secret) == 0 {
		return "", errors.New("invalid params for minting an offer ticket")
	}

	now := time.Now()
	claims := &offerClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ticketIssuer,
			ID:        sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role:    ticketRoleOffer,
		Secret:  base64.RawURLEncoding.EncodeToString(secret),
		Profile: profile,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("error occurred during signing offer ticket: %w", err)
	}
	return signed, nil
}

// parseOffer validates an offer ticket and extracts the pairing session.
//
// The ticket is read twice: once unverified to lift the embedded secret out
// of the claims, then fully, with that secret checking the HMAC signature
// and the expiry.
func parseOffer(ticket string) (*Offer, error) {
	unverified := &offerClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(ticket, unverified); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTicket, err)
	}

	secret, err := base64.RawURLEncoding.DecodeString(unverified.Secret)
	if err != nil || len(secret) != crypto.PairingSecretSize {
		return nil, fmt.Errorf("%w: offer carries no usable pairing secret", ErrMalformedTicket)
	}

	claims := &offerClaims{}
	_, err = jwt.ParseWithClaims(ticket, claims, func(token *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithIssuer(ticketIssuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", ErrTicketExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedTicket, err)
	}

	if claims.Role != ticketRoleOffer || claims.ID == "" {
		return nil, fmt.Errorf("%w: not an offer ticket", ErrMalformedTicket)
	}

	return &Offer{
		SessionID: claims.ID,
		Secret:    secret,
		Profile:   claims.Profile,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// mintAnswer serializes the joiner's candidate addresses into a ticket
// signed with the pairing secret lifted from the offer.
func mintAnswer(sessionID string, secret []byte, candidates []string) (string, error) {
	if sessionID == "" || len(secret) == 0 {
		return "", errors.New("invalid params for minting an answer ticket")
	}

	now := time.Now()
	claims := &answerClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ticketIssuer,
			ID:        sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(OfferTTL)),
		},
		Role:       ticketRoleAnswer,
		Candidates: candidates,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("error occurred during signing answer ticket: %w", err)
	}
	return signed, nil
}

// parseAnswer validates an answer ticket against the initiator's pairing
// secret and extracts the peer's candidate addresses.
func parseAnswer(ticket string, secret []byte) (*Answer, error) {
	claims := &answerClaims{}
	_, err := jwt.ParseWithClaims(ticket, claims, func(token *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithIssuer(ticketIssuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", ErrTicketExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedTicket, err)
	}

	if claims.Role != ticketRoleAnswer || claims.ID == "" {
		return nil, fmt.Errorf("%w: not an answer ticket", ErrMalformedTicket)
	}

	return &Answer{
		SessionID:  claims.ID,
		Candidates: claims.Candidates,
		ExpiresAt:  claims.ExpiresAt.Time,
	}, nil
}
