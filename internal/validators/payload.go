package validators

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-balance-sync/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate to restrict validation to a subset
// of fields (field-level scoping).
const (
	// FieldFormat targets the backup format discriminator.
	FieldFormat = "format"

	// FieldVersion targets the payload wire-format version.
	FieldVersion = "version"

	// FieldExportedAt targets the export timestamp of a payload.
	FieldExportedAt = "exported_at"

	// FieldEntities targets the entity section list of a payload.
	FieldEntities = "entities"

	// FieldID targets the record identifier of the replication envelope.
	FieldID = "id"

	// FieldUpdatedAt targets the last-write timestamp of the envelope.
	FieldUpdatedAt = "updated_at"
)

// BackupDocument marks raw bytes that must parse as a backup file.
// Document-level validation runs before any decoding into model structs so
// that malformed input is rejected with a message naming what is wrong.
type BackupDocument []byte

// WireDocument marks raw bytes received from the partner device. The checks
// match [BackupDocument] except that wire payloads carry no format marker.
type WireDocument []byte

// PayloadValidator implements the Validator interface for every transfer
// envelope: raw backup and wire documents, the decoded SyncPayload and
// BackupFile forms, per-table EntityPayload sections, and the replication
// envelope of individual records.
//
// It supports both value and pointer receivers for the model types and
// allows optional field-level scoping via variadic field name arguments.
type PayloadValidator struct {
}

// NewPayloadValidator constructs a new PayloadValidator
// and returns it as the Validator interface.
func NewPayloadValidator() Validator {
	return &PayloadValidator{}
}

// Validate dispatches validation to the appropriate type-specific method
// based on the dynamic type of obj.
//
// Supported types:
//   - BackupDocument / WireDocument (raw bytes, document-level checks)
//   - models.SyncPayload / *models.SyncPayload
//   - models.BackupFile / *models.BackupFile
//   - models.EntityPayload / *models.EntityPayload
//   - any models.Record implementation
//
// Returns ErrUnsupportedType if obj does not match any known form.
func (v *PayloadValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case BackupDocument:
		return v.validateDocument(ctx, value, true, fields...)
	case WireDocument:
		return v.validateDocument(ctx, value, false, fields...)

	case models.SyncPayload:
		return v.validateSyncPayload(ctx, value, fields...)
	case *models.SyncPayload:
		return v.validateSyncPayload(ctx, *value, fields...)

	case models.BackupFile:
		return v.validateBackupFile(ctx, value, fields...)
	case *models.BackupFile:
		return v.validateBackupFile(ctx, *value, fields...)

	case models.EntityPayload:
		return v.validateEntityPayload(ctx, value)
	case *models.EntityPayload:
		return v.validateEntityPayload(ctx, *value)

	case models.Record:
		return v.validateRecord(ctx, value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// validateDocument checks a raw JSON document before it is decoded into
// model structs. wantFormat selects whether the backup format marker is
// required. Each failure mode carries its own sentinel so import callers can
// surface a message naming exactly what was rejected.
func (v *PayloadValidator) validateDocument(ctx context.Context, raw []byte, wantFormat bool, fields ...string) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil || doc == nil {
		return ErrNotAnObject
	}

	if len(fields) == 0 {
		fields = []string{FieldVersion, FieldExportedAt, FieldEntities}
		if wantFormat {
			fields = append([]string{FieldFormat}, fields...)
		}
	}

	for _, f := range fields {
		switch f {
		case FieldFormat:
			var format string
			body, ok := doc["format"]
			if !ok || json.Unmarshal(body, &format) != nil || format != models.BackupFormat {
				return ErrWrongFormat
			}
		case FieldVersion:
			var version int
			body, ok := doc["version"]
			if !ok || json.Unmarshal(body, &version) != nil || version != models.PayloadVersion {
				return ErrUnsupportedVersion
			}
		case FieldExportedAt:
			// null decodes into a nil pointer, a bare float64 would keep
			// its zero value and slip through
			var exportedAt *float64
			body, ok := doc["exportedAt"]
			if !ok || json.Unmarshal(body, &exportedAt) != nil || exportedAt == nil {
				return ErrInvalidExportedAt
			}
		case FieldEntities:
			var entities []json.RawMessage
			body, ok := doc["entities"]
			if !ok || json.Unmarshal(body, &entities) != nil || entities == nil {
				return ErrMissingEntities
			}
			for i, entity := range entities {
				if err := v.validateEntityDocument(entity); err != nil {
					return fmt.Errorf("entity at index %d: %w", i, err)
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateEntityDocument checks that one raw entity section has the shape
// {entityType, count, records: array}. Tag values outside the closed set are
// left to the decoding layer, which isolates them as per-entity failures.
func (v *PayloadValidator) validateEntityDocument(raw json.RawMessage) error {
	var entity struct {
		EntityType *string           `json:"entityType"`
		Count      *float64          `json:"count"`
		Records    []json.RawMessage `json:"records"`
	}
	if err := json.Unmarshal(raw, &entity); err != nil {
		return ErrMalformedEntity
	}

	if entity.EntityType == nil || *entity.EntityType == "" {
		return ErrMalformedEntity
	}
	if entity.Count == nil {
		return ErrMalformedEntity
	}
	if entity.Records == nil {
		return ErrMalformedEntity
	}

	return nil
}

func (v *PayloadValidator) validateSyncPayload(ctx context.Context, payload models.SyncPayload, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldVersion, FieldExportedAt, FieldEntities}
	}

	for _, f := range fields {
		switch f {
		case FieldVersion:
			if payload.Version != models.PayloadVersion {
				return ErrUnsupportedVersion
			}
		case FieldExportedAt:
			if payload.ExportedAt <= 0 {
				return ErrInvalidExportedAt
			}
		case FieldEntities:
			if payload.Entities == nil {
				return ErrMissingEntities
			}
			for i, entity := range payload.Entities {
				if err := v.validateEntityPayload(ctx, entity); err != nil {
					return fmt.Errorf("entity at index %d: %w", i, err)
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *PayloadValidator) validateBackupFile(ctx context.Context, file models.BackupFile, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldFormat, FieldVersion, FieldExportedAt, FieldEntities}
	}

	for _, f := range fields {
		switch f {
		case FieldFormat:
			if file.Format != models.BackupFormat {
				return ErrWrongFormat
			}
		default:
			if err := v.validateSyncPayload(ctx, file.SyncPayload, f); err != nil {
				return err
			}
		}
	}

	return nil
}

func (v *PayloadValidator) validateEntityPayload(ctx context.Context, entity models.EntityPayload) error {
	if !models.KnownEntityType(entity.EntityType) {
		return ErrUnknownEntityTag
	}
	if entity.Records == nil {
		return ErrMalformedEntity
	}

	return nil
}

func (v *PayloadValidator) validateRecord(ctx context.Context, record models.Record, fields ...string) error {
	meta := record.Meta()
	if len(fields) == 0 {
		fields = []string{FieldID, FieldUpdatedAt}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if meta.ID == "" {
				return ErrInvalidRecordID
			}
		case FieldUpdatedAt:
			if meta.UpdatedAt < 0 {
				return ErrInvalidUpdatedAt
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
