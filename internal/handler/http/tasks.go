// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/MKhiriev/go-balance-sync/internal/logger"
	"github.com/MKhiriev/go-balance-sync/internal/utils"
	"github.com/MKhiriev/go-balance-sync/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) listTasks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	tasks, err := h.services.TaskService.List(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.listTasks").Msg("error listing tasks")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.TaskList{Tasks: tasks, Count: len(tasks)}, http.StatusOK)
}

func (h *Handler) createTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var task models.Task
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		log.Err(err).Str("func", "*Handler.createTask").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	created, err := h.services.TaskService.Create(r.Context(), task)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createTask").Msg("error creating task")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) updateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var task models.Task
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		log.Err(err).Str("func", "*Handler.updateTask").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	// id в пути важнее id в теле.
	task.ID = chi.URLParam(r, "id")

	updated, err := h.services.TaskService.Update(r.Context(), task)
	if err != nil {
		log.Err(err).Str("func", "*Handler.updateTask").Msg("error updating task")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if err := h.services.TaskService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		log.Err(err).Str("func", "*Handler.deleteTask").Msg("error deleting task")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) completeTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	// Body is optional: completing without a note is the common case.
	var req models.CompleteTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Err(err).Str("func", "*Handler.completeTask").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	completion, err := h.services.TaskService.Complete(r.Context(), chi.URLParam(r, "id"), req.Note)
	if err != nil {
		log.Err(err).Str("func", "*Handler.completeTask").Msg("error completing task")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, completion, http.StatusCreated)
}
