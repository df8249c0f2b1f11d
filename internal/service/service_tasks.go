// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-balance-sync/internal/logger"
	"github.com/MKhiriev/go-balance-sync/internal/store"
	"github.com/MKhiriev/go-balance-sync/models"
)

type taskService struct {
	tasks       store.EntityStore
	completions store.EntityStore
	envelope    *envelopeStamper

	logger *logger.Logger
}

func NewTaskService(tasks, completions store.EntityStore, envelope *envelopeStamper, logger *logger.Logger) TaskService {
	return &taskService{
		tasks:       tasks,
		completions: completions,
		envelope:    envelope,
		logger:      logger,
	}
}

func (t *taskService) Create(ctx context.Context, task models.Task) (models.Task, error) {
	if strings.TrimSpace(task.Title) == "" {
		return models.Task{}, ErrEmptyTaskTitle
	}

	task.ID = ""
	task.DeletedAt = nil
	if err := t.envelope.stamp(ctx, task.Meta()); err != nil {
		return models.Task{}, err
	}

	if err := t.tasks.BulkUpsert(ctx, []models.Record{&task}); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// List returns live tasks only; tombstones stay internal to replication.
func (t *taskService) List(ctx context.Context) ([]models.Task, error) {
	records, err := t.tasks.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	tasks := make([]models.Task, 0, len(records))
	for _, rec := range records {
		task, ok := rec.(*models.Task)
		if !ok || task.Deleted() {
			continue
		}
		tasks = append(tasks, *task)
	}
	return tasks, nil
}

func (t *taskService) Get(ctx context.Context, id string) (models.Task, error) {
	records, err := t.tasks.GetAll(ctx)
	if err != nil {
		return models.Task{}, err
	}

	for _, rec := range records {
		task, ok := rec.(*models.Task)
		if ok && task.ID == id && !task.Deleted() {
			return *task, nil
		}
	}
	return models.Task{}, ErrTaskNotFound
}

func (t *taskService) Update(ctx context.Context, task models.Task) (models.Task, error) {
	if strings.TrimSpace(task.Title) == "" {
		return models.Task{}, ErrEmptyTaskTitle
	}

	existing, err := t.Get(ctx, task.ID)
	if err != nil {
		return models.Task{}, err
	}

	task.ID = existing.ID
	task.DeletedAt = nil
	if err := t.envelope.stamp(ctx, task.Meta()); err != nil {
		return models.Task{}, err
	}

	if err := t.tasks.BulkUpsert(ctx, []models.Record{&task}); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

func (t *taskService) Complete(ctx context.Context, taskID, note string) (models.Completion, error) {
	task, err := t.Get(ctx, taskID)
	if err != nil {
		return models.Completion{}, err
	}

	completion := models.Completion{
		TaskID: task.ID,
		Note:   note,
	}
	if err := t.envelope.stamp(ctx, completion.Meta()); err != nil {
		return models.Completion{}, err
	}
	completion.CompletedAt = completion.UpdatedAt

	if err := t.completions.BulkUpsert(ctx, []models.Record{&completion}); err != nil {
		return models.Completion{}, err
	}
	return completion, nil
}

func (t *taskService) Delete(ctx context.Context, id string) error {
	task, err := t.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := t.envelope.stamp(ctx, task.Meta()); err != nil {
		return err
	}
	deletedAt := task.UpdatedAt
	task.DeletedAt = &deletedAt

	return t.tasks.BulkUpsert(ctx, []models.Record{&task})
}
