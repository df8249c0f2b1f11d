package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	// Document-level rejections, surfaced verbatim to the user when an
	// import is refused.
	ErrNotAnObject        = errors.New("content is not a valid object")
	ErrWrongFormat        = errors.New("not a balance backup file")
	ErrUnsupportedVersion = errors.New("unsupported payload version")
	ErrInvalidExportedAt  = errors.New("payload is missing a valid export timestamp")
	ErrMissingEntities    = errors.New("payload is missing its entities array")
	ErrMalformedEntity    = errors.New("malformed entity section")

	// Record envelope rejections.
	ErrInvalidRecordID  = errors.New("record id is required")
	ErrInvalidUpdatedAt = errors.New("record updated timestamp is invalid")
	ErrUnknownEntityTag = errors.New("unknown entity type")
)
