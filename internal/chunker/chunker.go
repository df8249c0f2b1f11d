// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package chunker frames an arbitrary string payload into a bounded sequence
// of self-describing parts small enough to travel through scannable codes,
// and reassembles the parts regardless of the order they are scanned in.
//
// Wire grammar of one framed part:
//
//	BSC|v1|<index>|<total>|<fragment>
//
// index is 1-based. A string that does not start with the "BSC|v1|" marker is
// not an error: it is treated as a complete, un-framed payload, which keeps
// the codec backward-compatible with plain single-code exchanges.
package chunker

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	frameMarker    = "BSC|v1|"
	frameSeparator = "|"

	// DefaultPartCapacity bounds the fragment length of one part. Sized so a
	// part stays comfortably within the reliable capacity of one code.
	DefaultPartCapacity = 600

	// MaxParts bounds how many codes a single payload may be split into.
	MaxParts = 64
)

// Split frames payload into parts of at most capacity fragment characters.
// A payload that fits a single part is returned as a plain passthrough with
// no framing. capacity <= 0 selects DefaultPartCapacity.
func Split(payload string, capacity int) ([]string, error) {
	if capacity <= 0 {
		capacity = DefaultPartCapacity
	}

	if len(payload) <= capacity {
		return []string{payload}, nil
	}

	total := (len(payload) + capacity - 1) / capacity
	if total > MaxParts {
		return nil, fmt.Errorf("%w: %d parts needed, limit is %d", ErrPayloadTooLarge, total, MaxParts)
	}

	parts := make([]string, 0, total)
	for i := 0; i < total; i++ {
		start := i * capacity
		end := start + capacity
		if end > len(payload) {
			end = len(payload)
		}
		parts = append(parts, frameMarker+strconv.Itoa(i+1)+frameSeparator+strconv.Itoa(total)+frameSeparator+payload[start:end])
	}

	return parts, nil
}

// SplitFramed behaves like Split but frames the payload even when it fits a
// single part. Decoders accept both emissions.
func SplitFramed(payload string, capacity int) ([]string, error) {
	if capacity <= 0 {
		capacity = DefaultPartCapacity
	}

	if len(payload) <= capacity {
		return []string{frameMarker + "1" + frameSeparator + "1" + frameSeparator + payload}, nil
	}

	return Split(payload, capacity)
}

// Assembler accumulates scanned parts until a payload can be reassembled.
// The zero value is not usable; construct with NewAssembler.
type Assembler struct {
	total     int
	fragments map[int]string
}

// NewAssembler returns an empty Assembler ready to accept parts.
func NewAssembler() *Assembler {
	return &Assembler{fragments: make(map[int]string)}
}

// Add ingests one scanned code.
//
// A code without the frame marker completes immediately as an un-framed
// payload. A framed part is recorded under its index; re-scanning the same
// part overwrites idempotently. Once every distinct index up to the declared
// total has been observed, fragments are concatenated in index order and
// returned with done = true.
func (a *Assembler) Add(code string) (payload string, done bool, err error) {
	if !strings.HasPrefix(code, frameMarker) {
		return code, true, nil
	}

	index, total, fragment, err := parseFrame(code)
	if err != nil {
		return "", false, err
	}

	if a.total == 0 {
		a.total = total
	}
	if total != a.total {
		return "", false, fmt.Errorf("%w: part declares %d, session started with %d", ErrTotalMismatch, total, a.total)
	}

	a.fragments[index] = fragment

	if len(a.fragments) < a.total {
		return "", false, nil
	}

	return a.assemble(), true, nil
}

// Received returns how many distinct parts have been observed so far.
func (a *Assembler) Received() int { return len(a.fragments) }

// Total returns the declared part count, or 0 before the first framed part.
func (a *Assembler) Total() int { return a.total }

// Reset discards all accumulated parts so the Assembler can be reused for a
// fresh exchange.
func (a *Assembler) Reset() {
	a.total = 0
	a.fragments = make(map[int]string)
}

func (a *Assembler) assemble() string {
	indices := make([]int, 0, len(a.fragments))
	for idx := range a.fragments {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	var sb strings.Builder
	for _, idx := range indices {
		sb.WriteString(a.fragments[idx])
	}
	return sb.String()
}

func parseFrame(code string) (index, total int, fragment string, err error) {
	rest := strings.TrimPrefix(code, frameMarker)

	fields := strings.SplitN(rest, frameSeparator, 3)
	if len(fields) != 3 {
		return 0, 0, "", fmt.Errorf("%w: expected index|total|fragment", ErrMalformedPart)
	}

	index, err = strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, "", fmt.Errorf("%w: bad index %q", ErrMalformedPart, fields[0])
	}
	total, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, "", fmt.Errorf("%w: bad total %q", ErrMalformedPart, fields[1])
	}

	if total < 1 || total > MaxParts {
		return 0, 0, "", fmt.Errorf("%w: total %d out of range", ErrMalformedPart, total)
	}
	if index < 1 || index > total {
		return 0, 0, "", fmt.Errorf("%w: index %d out of range 1..%d", ErrMalformedPart, index, total)
	}

	return index, total, fields[2], nil
}
