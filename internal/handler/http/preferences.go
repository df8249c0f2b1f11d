package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-balance-sync/internal/logger"
	"github.com/MKhiriev/go-balance-sync/internal/utils"
	"github.com/MKhiriev/go-balance-sync/models"
)

func (h *Handler) getPreferences(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	prefs, err := h.services.PreferencesService.Get(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.getPreferences").Msg("error reading preferences")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, prefs, http.StatusOK)
}

func (h *Handler) updatePreferences(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var prefs models.Preferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		log.Err(err).Str("func", "*Handler.updatePreferences").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	updated, err := h.services.PreferencesService.Update(r.Context(), prefs)
	if err != nil {
		log.Err(err).Str("func", "*Handler.updatePreferences").Msg("error updating preferences")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}
