// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer balancectl uses to talk to the
// Balance agent.
//
// The primary abstraction is [AgentAdapter], which decouples the CLI commands
// and the sync wizard from the agent's REST API. The package ships an
// HTTP/REST implementation ([NewHTTPAgentAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrConflict] for 409, [ErrNotFound] for 404).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-balance-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/agent_adapter_mock.go -package=mock

// AgentAdapter defines transport-agnostic communication with the Balance
// agent. Implementations are responsible for serialisation and for mapping
// transport-level errors to the sentinel values defined in this package.
type AgentAdapter interface {
	// Health fetches the agent's health report, including its version and
	// device identity. It doubles as the reachability probe: a transport
	// error here means the agent is not running.
	Health(ctx context.Context) (models.HealthStatus, error)

	// ListTasks fetches every live task known to the agent.
	ListTasks(ctx context.Context) (models.TaskList, error)

	// CreateTask submits a new task and returns it with the agent-assigned
	// identity and write stamp filled in.
	CreateTask(ctx context.Context, task models.Task) (models.Task, error)

	// UpdateTask replaces the task identified by task.ID with the provided
	// record. Returns [ErrNotFound] (wrapped) if no such task exists.
	UpdateTask(ctx context.Context, task models.Task) (models.Task, error)

	// DeleteTask removes the task with the given id. Returns [ErrNotFound]
	// (wrapped) if no such task exists.
	DeleteTask(ctx context.Context, taskID string) error

	// CompleteTask records a completion for the task with the given id. The
	// note may be empty.
	CompleteTask(ctx context.Context, taskID, note string) (models.Completion, error)

	// ListCategories fetches every live category known to the agent.
	ListCategories(ctx context.Context) (models.CategoryList, error)

	// CreateCategory submits a new category and returns it with the
	// agent-assigned identity and write stamp filled in.
	CreateCategory(ctx context.Context, category models.Category) (models.Category, error)

	// GetPreferences fetches the device's preferences singleton.
	GetPreferences(ctx context.Context) (models.Preferences, error)

	// UpdatePreferences replaces the preferences singleton and returns the
	// stored record.
	UpdatePreferences(ctx context.Context, prefs models.Preferences) (models.Preferences, error)

	// ExportBackup asks the agent for a full backup and returns the raw
	// document bytes, ready to be written to a file verbatim.
	ExportBackup(ctx context.Context) ([]byte, error)

	// ExportBackupToFile asks the agent to write a backup into its own
	// backup directory and reports where the file landed.
	ExportBackupToFile(ctx context.Context, path string) (models.ExportedBackup, error)

	// ImportBackup uploads a backup document and applies it with the given
	// mode (merge or replace). An empty mode means merge.
	ImportBackup(ctx context.Context, document []byte, mode models.ImportMode) (models.ImportResult, error)

	// ImportBackupFromFile asks the agent to apply a backup file from its
	// own disk with the given mode. An empty mode means merge.
	ImportBackupFromFile(ctx context.Context, path string, mode models.ImportMode) (models.ImportResult, error)

	// StartOffer opens a pairing session on the agent and returns the offer
	// codes to hand to the peer device. Returns [ErrConflict] (wrapped) if a
	// session is already active.
	StartOffer(ctx context.Context) (models.PairingCodes, error)

	// JoinOffer feeds a peer's offer codes to the agent and returns the
	// answer codes to hand back.
	JoinOffer(ctx context.Context, codes []string) (models.PairingCodes, error)

	// CompleteOffer feeds the peer's answer codes to the agent, which then
	// connects and syncs in the background. The returned snapshot reflects
	// the session state at the moment the exchange was kicked off; poll
	// SyncStatus for progress.
	CompleteOffer(ctx context.Context, codes []string) (models.SyncStatus, error)

	// SyncStatus fetches the current sync session snapshot. With no active
	// session the snapshot reports an idle connection state.
	SyncStatus(ctx context.Context) (models.SyncStatus, error)

	// CancelSync aborts the active sync session, if any, and returns the
	// resulting snapshot. Returns [ErrConflict] (wrapped) if there is no
	// session to cancel.
	CancelSync(ctx context.Context) (models.SyncStatus, error)
}
