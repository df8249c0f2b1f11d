package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-balance-sync/internal/logger"
	"github.com/MKhiriev/go-balance-sync/internal/utils"
	"github.com/MKhiriev/go-balance-sync/models"
)

func (h *Handler) startOffer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	codes, err := h.services.SyncService.StartOffer(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.startOffer").Msg("error starting offer session")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.PairingCodes{Codes: codes}, http.StatusCreated)
}

func (h *Handler) joinOffer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.PairingCodes
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.joinOffer").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	codes, err := h.services.SyncService.Join(r.Context(), req.Codes)
	if err != nil {
		log.Err(err).Str("func", "*Handler.joinOffer").Msg("error joining offer")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.PairingCodes{Codes: codes}, http.StatusCreated)
}

func (h *Handler) completeOffer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.PairingCodes
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.completeOffer").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.SyncService.Complete(ctx, req.Codes); err != nil {
		log.Err(err).Str("func", "*Handler.completeOffer").Msg("error completing pairing")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	// Сам sync идёт в фоне — отдаём снимок состояния.
	utils.WriteJSON(w, h.services.SyncService.Status(ctx), http.StatusAccepted)
}

func (h *Handler) syncStatus(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.SyncService.Status(r.Context()), http.StatusOK)
}

func (h *Handler) cancelSync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if err := h.services.SyncService.Cancel(ctx); err != nil {
		log.Err(err).Str("func", "*Handler.cancelSync").Msg("error cancelling sync session")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, h.services.SyncService.Status(ctx), http.StatusOK)
}
