// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/MKhiriev/go-balance-sync/internal/logger"
	"github.com/MKhiriev/go-balance-sync/internal/syncer"
	"github.com/MKhiriev/go-balance-sync/internal/utils"
	"github.com/MKhiriev/go-balance-sync/models"
)

// exportBackup streams the backup document, or writes it into the agent's
// backup directory when a ?path= query is present.
func (h *Handler) exportBackup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if path := r.URL.Query().Get("path"); path != "" {
		written, err := h.services.BackupService.ExportToFile(ctx, path)
		if err != nil {
			log.Err(err).Str("func", "*Handler.exportBackup").Msg("error exporting backup to file")
			http.Error(w, err.Error(), statusFromError(err))
			return
		}

		utils.WriteJSON(w, models.ExportedBackup{Path: written}, http.StatusCreated)
		return
	}

	backup, err := h.services.BackupService.Export(ctx)
	if err != nil {
		log.Err(err).Str("func", "*Handler.exportBackup").Msg("error exporting backup")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, backup, http.StatusOK)
}

// importBackup applies a backup document from the request body, or from a
// file on the agent's disk when a ?path= query is present. The ?mode= query
// selects merge (default) or replace.
func (h *Handler) importBackup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	mode := models.ImportMode(r.URL.Query().Get("mode"))
	if mode == "" {
		mode = models.ImportModeMerge
	}

	if path := r.URL.Query().Get("path"); path != "" {
		result, err := h.services.BackupService.ImportFromFile(ctx, path, mode)
		h.writeImportResult(w, r, result, err)
		return
	}

	document, err := io.ReadAll(r.Body)
	if err != nil {
		log.Err(err).Str("func", "*Handler.importBackup").Msg("error reading request body")
		http.Error(w, "error reading request body", http.StatusBadRequest)
		return
	}

	result, err := h.services.BackupService.Import(ctx, document, mode)
	h.writeImportResult(w, r, result, err)
}

// writeImportResult answers an import request. A partial merge still carries a
// result: the committed batches stay committed and the failed ones are listed
// in the summary, so the client gets the full picture instead of a bare 500.
func (h *Handler) writeImportResult(w http.ResponseWriter, r *http.Request, result *models.ImportResult, err error) {
	log := logger.FromRequest(r)

	switch {
	case err == nil:
		utils.WriteJSON(w, result, http.StatusOK)
	case errors.Is(err, syncer.ErrPartialMerge):
		log.Warn().Str("func", "*Handler.importBackup").Msgf("backup import finished partially: %v", err)
		utils.WriteJSON(w, result, http.StatusOK)
	default:
		log.Err(err).Str("func", "*Handler.importBackup").Msg("error importing backup")
		http.Error(w, err.Error(), statusFromError(err))
	}
}
