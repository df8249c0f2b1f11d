package store

import (
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-balance-sync/internal/logger"
	"github.com/MKhiriev/go-balance-sync/models"
)

// NewTaskRepository constructs the [EntityStore] for the tasks table.
func NewTaskRepository(db *DB, log *logger.Logger) EntityStore {
	return newRecordRepository(db, log, entityDescriptor{
		entity:  models.EntityTasks,
		table:   "tasks",
		columns: taskColumns,
		values:  taskValues,
		scan:    scanTask,
	})
}

func taskValues(rec models.Record) ([]any, error) {
	task, ok := rec.(*models.Task)
	if !ok {
		return nil, fmt.Errorf("%w: want *models.Task, got %T", ErrWrongRecordType, rec)
	}

	return []any{
		task.ID,
		task.Title,
		task.Notes,
		task.Priority,
		nullInt64(task.DueAt),
		nullString(task.CategoryID),
		nullString(task.LocationID),
		task.UpdatedAt,
		task.DeviceID,
		nullInt64(task.DeletedAt),
	}, nil
}

func scanTask(row rowScanner) (models.Record, error) {
	var task models.Task
	var dueAt, deletedAt sql.NullInt64
	var categoryID, locationID sql.NullString

	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Notes,
		&task.Priority,
		&dueAt,
		&categoryID,
		&locationID,
		&task.UpdatedAt,
		&task.DeviceID,
		&deletedAt,
	)
	if err != nil {
		return nil, err
	}

	task.DueAt = fromNullInt64(dueAt)
	task.CategoryID = fromNullString(categoryID)
	task.LocationID = fromNullString(locationID)
	task.DeletedAt = fromNullInt64(deletedAt)

	return &task, nil
}
