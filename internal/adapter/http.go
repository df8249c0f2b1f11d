package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-balance-sync/internal/config"
	"github.com/MKhiriev/go-balance-sync/internal/logger"
	"github.com/MKhiriev/go-balance-sync/internal/utils"
	"github.com/MKhiriev/go-balance-sync/models"
	"github.com/go-resty/resty/v2"
)

type httpAgentAdapter struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewHTTPAgentAdapter constructs an HTTP/REST implementation of
// [AgentAdapter]. It normalises and validates the base URL from
// adapterCfg.HTTPAddress and configures the underlying HTTP client with the
// resolved base URL and request timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as
// a valid URL.
func NewHTTPAgentAdapter(adapterCfg config.CLIAdapter, logger *logger.Logger) (AgentAdapter, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	return &httpAgentAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Health implements [AgentAdapter]. It GETs /api/health and decodes the
// agent's health report. Returns an error if the request fails, the agent
// answers a non-2xx status, or the response cannot be decoded.
func (h *httpAgentAdapter) Health(ctx context.Context) (models.HealthStatus, error) {
	resp, err := h.request(ctx).Get("/api/health")
	if err != nil {
		return models.HealthStatus{}, fmt.Errorf("health request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.HealthStatus{}, err
	}

	var status models.HealthStatus
	if err = json.Unmarshal(resp.Body(), &status); err != nil {
		return models.HealthStatus{}, fmt.Errorf("decode health response: %w", err)
	}

	return status, nil
}

// ListTasks implements [AgentAdapter]. It GETs /api/tasks and decodes the
// task collection.
func (h *httpAgentAdapter) ListTasks(ctx context.Context) (models.TaskList, error) {
	resp, err := h.request(ctx).Get("/api/tasks")
	if err != nil {
		return models.TaskList{}, fmt.Errorf("list tasks request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.TaskList{}, err
	}

	var list models.TaskList
	if err = json.Unmarshal(resp.Body(), &list); err != nil {
		return models.TaskList{}, fmt.Errorf("decode task list response: %w", err)
	}

	return list, nil
}

// CreateTask implements [AgentAdapter]. It POSTs the task to /api/tasks and
// returns the stored record with the agent-assigned id and write stamp.
func (h *httpAgentAdapter) CreateTask(ctx context.Context, task models.Task) (models.Task, error) {
	var created models.Task

	resp, err := h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(task).
		SetResult(&created).
		Post("/api/tasks")
	if err != nil {
		return models.Task{}, fmt.Errorf("create task request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Task{}, err
	}

	return created, nil
}

// UpdateTask implements [AgentAdapter]. It PUTs the task to
// /api/tasks/{task.ID}. The agent takes the id from the path, so the body id
// does not have to match.
func (h *httpAgentAdapter) UpdateTask(ctx context.Context, task models.Task) (models.Task, error) {
	var updated models.Task

	resp, err := h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", task.ID).
		SetBody(task).
		SetResult(&updated).
		Put("/api/tasks/{id}")
	if err != nil {
		return models.Task{}, fmt.Errorf("update task request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Task{}, err
	}

	return updated, nil
}

// DeleteTask implements [AgentAdapter]. It sends DELETE /api/tasks/{id}.
func (h *httpAgentAdapter) DeleteTask(ctx context.Context, taskID string) error {
	resp, err := h.request(ctx).
		SetPathParam("id", taskID).
		Delete("/api/tasks/{id}")
	if err != nil {
		return fmt.Errorf("delete task request: %w", err)
	}

	return mapHTTPError(resp)
}

// CompleteTask implements [AgentAdapter]. It POSTs the completion note to
// /api/tasks/{id}/complete and returns the recorded completion.
func (h *httpAgentAdapter) CompleteTask(ctx context.Context, taskID, note string) (models.Completion, error) {
	var completion models.Completion

	resp, err := h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", taskID).
		SetBody(models.CompleteTaskRequest{Note: note}).
		SetResult(&completion).
		Post("/api/tasks/{id}/complete")
	if err != nil {
		return models.Completion{}, fmt.Errorf("complete task request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Completion{}, err
	}

	return completion, nil
}

// ListCategories implements [AgentAdapter]. It GETs /api/categories and
// decodes the category collection.
func (h *httpAgentAdapter) ListCategories(ctx context.Context) (models.CategoryList, error) {
	resp, err := h.request(ctx).Get("/api/categories")
	if err != nil {
		return models.CategoryList{}, fmt.Errorf("list categories request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.CategoryList{}, err
	}

	var list models.CategoryList
	if err = json.Unmarshal(resp.Body(), &list); err != nil {
		return models.CategoryList{}, fmt.Errorf("decode category list response: %w", err)
	}

	return list, nil
}

// CreateCategory implements [AgentAdapter]. It POSTs the category to
// /api/categories and returns the stored record.
func (h *httpAgentAdapter) CreateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	var created models.Category

	resp, err := h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(category).
		SetResult(&created).
		Post("/api/categories")
	if err != nil {
		return models.Category{}, fmt.Errorf("create category request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Category{}, err
	}

	return created, nil
}

// GetPreferences implements [AgentAdapter]. It GETs /api/preferences and
// decodes the preferences singleton.
func (h *httpAgentAdapter) GetPreferences(ctx context.Context) (models.Preferences, error) {
	resp, err := h.request(ctx).Get("/api/preferences")
	if err != nil {
		return models.Preferences{}, fmt.Errorf("get preferences request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Preferences{}, err
	}

	var prefs models.Preferences
	if err = json.Unmarshal(resp.Body(), &prefs); err != nil {
		return models.Preferences{}, fmt.Errorf("decode preferences response: %w", err)
	}

	return prefs, nil
}

// UpdatePreferences implements [AgentAdapter]. It PUTs the preferences to
// /api/preferences and returns the stored record.
func (h *httpAgentAdapter) UpdatePreferences(ctx context.Context, prefs models.Preferences) (models.Preferences, error) {
	var updated models.Preferences

	resp, err := h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(prefs).
		SetResult(&updated).
		Put("/api/preferences")
	if err != nil {
		return models.Preferences{}, fmt.Errorf("update preferences request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Preferences{}, err
	}

	return updated, nil
}

// ExportBackup implements [AgentAdapter]. It POSTs /api/backup/export and
// returns the backup document bytes exactly as the agent produced them.
func (h *httpAgentAdapter) ExportBackup(ctx context.Context) ([]byte, error) {
	resp, err := h.request(ctx).Post("/api/backup/export")
	if err != nil {
		return nil, fmt.Errorf("export backup request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return resp.Body(), nil
}

// ExportBackupToFile implements [AgentAdapter]. It POSTs
// /api/backup/export?path= so the agent writes the backup on its own disk,
// and returns the resolved destination.
func (h *httpAgentAdapter) ExportBackupToFile(ctx context.Context, path string) (models.ExportedBackup, error) {
	var exported models.ExportedBackup

	resp, err := h.request(ctx).
		SetQueryParam("path", path).
		SetResult(&exported).
		Post("/api/backup/export")
	if err != nil {
		return models.ExportedBackup{}, fmt.Errorf("export backup to file request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ExportedBackup{}, err
	}

	return exported, nil
}

// ImportBackup implements [AgentAdapter]. It POSTs the raw backup document to
// /api/backup/import and returns the import summary. The mode query is only
// sent when mode is non-empty; the agent defaults to merge.
func (h *httpAgentAdapter) ImportBackup(ctx context.Context, document []byte, mode models.ImportMode) (models.ImportResult, error) {
	var result models.ImportResult

	req := h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(document).
		SetResult(&result)
	if mode != "" {
		req.SetQueryParam("mode", string(mode))
	}

	resp, err := req.Post("/api/backup/import")
	if err != nil {
		return models.ImportResult{}, fmt.Errorf("import backup request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ImportResult{}, err
	}

	return result, nil
}

// ImportBackupFromFile implements [AgentAdapter]. It POSTs
// /api/backup/import?path= so the agent reads the backup from its own disk,
// and returns the import summary.
func (h *httpAgentAdapter) ImportBackupFromFile(ctx context.Context, path string, mode models.ImportMode) (models.ImportResult, error) {
	var result models.ImportResult

	req := h.request(ctx).
		SetQueryParam("path", path).
		SetResult(&result)
	if mode != "" {
		req.SetQueryParam("mode", string(mode))
	}

	resp, err := req.Post("/api/backup/import")
	if err != nil {
		return models.ImportResult{}, fmt.Errorf("import backup from file request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ImportResult{}, err
	}

	return result, nil
}

// StartOffer implements [AgentAdapter]. It POSTs /api/sync/offer and returns
// the pairing codes of the freshly created offer.
func (h *httpAgentAdapter) StartOffer(ctx context.Context) (models.PairingCodes, error) {
	var codes models.PairingCodes

	resp, err := h.request(ctx).
		SetResult(&codes).
		Post("/api/sync/offer")
	if err != nil {
		return models.PairingCodes{}, fmt.Errorf("start offer request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PairingCodes{}, err
	}

	return codes, nil
}

// JoinOffer implements [AgentAdapter]. It POSTs the peer's offer codes to
// /api/sync/join and returns the answer codes.
func (h *httpAgentAdapter) JoinOffer(ctx context.Context, codes []string) (models.PairingCodes, error) {
	var answer models.PairingCodes

	resp, err := h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.PairingCodes{Codes: codes}).
		SetResult(&answer).
		Post("/api/sync/join")
	if err != nil {
		return models.PairingCodes{}, fmt.Errorf("join offer request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PairingCodes{}, err
	}

	return answer, nil
}

// CompleteOffer implements [AgentAdapter]. It POSTs the peer's answer codes
// to /api/sync/complete and returns the session snapshot taken right after
// the exchange was started.
func (h *httpAgentAdapter) CompleteOffer(ctx context.Context, codes []string) (models.SyncStatus, error) {
	var status models.SyncStatus

	resp, err := h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.PairingCodes{Codes: codes}).
		SetResult(&status).
		Post("/api/sync/complete")
	if err != nil {
		return models.SyncStatus{}, fmt.Errorf("complete offer request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SyncStatus{}, err
	}

	return status, nil
}

// SyncStatus implements [AgentAdapter]. It GETs /api/sync/status and decodes
// the session snapshot.
func (h *httpAgentAdapter) SyncStatus(ctx context.Context) (models.SyncStatus, error) {
	resp, err := h.request(ctx).Get("/api/sync/status")
	if err != nil {
		return models.SyncStatus{}, fmt.Errorf("sync status request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SyncStatus{}, err
	}

	var status models.SyncStatus
	if err = json.Unmarshal(resp.Body(), &status); err != nil {
		return models.SyncStatus{}, fmt.Errorf("decode sync status response: %w", err)
	}

	return status, nil
}

// CancelSync implements [AgentAdapter]. It POSTs /api/sync/cancel and returns
// the snapshot of the aborted session.
func (h *httpAgentAdapter) CancelSync(ctx context.Context) (models.SyncStatus, error) {
	var status models.SyncStatus

	resp, err := h.request(ctx).
		SetResult(&status).
		Post("/api/sync/cancel")
	if err != nil {
		return models.SyncStatus{}, fmt.Errorf("cancel sync request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SyncStatus{}, err
	}

	return status, nil
}

func (h *httpAgentAdapter) request(ctx context.Context) *resty.Request {
	return h.client.R().SetContext(ctx)
}
