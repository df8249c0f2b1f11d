// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownEntityType is returned when a payload names an entity tag outside
// the closed set. Callers treat it as a validation failure for that entity
// batch only, so foreign tags never abort a whole transfer.
var ErrUnknownEntityType = errors.New("unknown entity type")

// NewEntityPayload marshals a homogeneous record slice into the wire
// envelope for the given tag. Count always equals len(records).
func NewEntityPayload(entityType EntityType, records []Record) (EntityPayload, error) {
	raw := make([]json.RawMessage, 0, len(records))
	for _, rec := range records {
		b, err := json.Marshal(rec)
		if err != nil {
			return EntityPayload{}, fmt.Errorf("marshal %s record: %w", entityType, err)
		}
		raw = append(raw, b)
	}

	return EntityPayload{
		EntityType: entityType,
		Count:      len(raw),
		Records:    raw,
	}, nil
}

// DecodeRecords resolves raw wire records into concrete entity structs for
// the given tag. An unknown tag yields [ErrUnknownEntityType]; a record that
// does not parse as the tag's schema yields a wrapped unmarshal error.
func DecodeRecords(entityType EntityType, raw []json.RawMessage) ([]Record, error) {
	records := make([]Record, 0, len(raw))

	for i, b := range raw {
		rec, err := newRecord(entityType)
		if err != nil {
			return nil, err
		}
		if err = json.Unmarshal(b, rec); err != nil {
			return nil, fmt.Errorf("decode %s record %d: %w", entityType, i, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func newRecord(entityType EntityType) (Record, error) {
	switch entityType {
	case EntityTasks:
		return &Task{}, nil
	case EntityCategories:
		return &Category{}, nil
	case EntityCompletions:
		return &Completion{}, nil
	case EntityLocations:
		return &Location{}, nil
	case EntityPreferences:
		return &Preferences{}, nil
	case EntitySnoozes:
		return &SnoozeState{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntityType, entityType)
	}
}
