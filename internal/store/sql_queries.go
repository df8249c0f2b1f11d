// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// psql builds every statement with $N placeholders. The pgx driver requires
// them and mattn/go-sqlite3 accepts them, so one builder serves both stores.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Column lists in physical order. values/scan helpers in the per-entity
// repository files must follow the same order.
var (
	taskColumns = []string{
		"id", "title", "notes", "priority", "due_at", "category_id",
		"location_id", "updated_at", "device_id", "deleted_at",
	}
	categoryColumns = []string{
		"id", "name", "color", "icon", "sort_order",
		"updated_at", "device_id", "deleted_at",
	}
	completionColumns = []string{
		"id", "task_id", "completed_at", "note",
		"updated_at", "device_id", "deleted_at",
	}
	locationColumns = []string{
		"id", "name", "latitude", "longitude", "radius_meters",
		"updated_at", "device_id", "deleted_at",
	}
	snoozeColumns = []string{
		"id", "entries", "updated_at", "device_id", "deleted_at",
	}
	preferencesColumns = []string{
		"id", "display_name", "theme", "week_starts_on", "relay_servers",
		"last_sync_timestamp", "updated_at", "device_id", "deleted_at",
	}
)

// upsertSuffix renders the ON CONFLICT clause that turns an INSERT into a
// whole-row overwrite. Both SQLite and PostgreSQL understand the excluded
// pseudo-table.
func upsertSuffix(columns []string) string {
	assignments := make([]string, 0, len(columns)-1)
	for _, col := range columns {
		if col == "id" {
			continue
		}
		assignments = append(assignments, col+" = excluded."+col)
	}

	return "ON CONFLICT (id) DO UPDATE SET " + strings.Join(assignments, ", ")
}

func selectRecords(table string, columns []string) sq.SelectBuilder {
	return psql.Select(columns...).From(table).OrderBy("id")
}

func insertRecord(table string, columns []string, values []any) sq.InsertBuilder {
	return psql.Insert(table).
		Columns(columns...).
		Values(values...).
		Suffix(upsertSuffix(columns))
}

// ── nullable column helpers ─────────────────────────────────────────────────

func nullInt64(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullString(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

func fromNullInt64(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func fromNullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

// ── JSON column helpers ─────────────────────────────────────────────────────

func marshalJSONColumn(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal json column: %w", err)
	}
	return string(b), nil
}

func unmarshalJSONColumn(raw string, dst any) error {
	if raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("unmarshal json column: %w", err)
	}
	return nil
}
