package http

import (
	"net/http"

	"github.com/MKhiriev/go-balance-sync/internal/logger"
	"github.com/MKhiriev/go-balance-sync/internal/utils"
	"github.com/MKhiriev/go-balance-sync/models"
)

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	info, err := h.services.AppInfoService.Info(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.health").Msg("error reading device identity")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.HealthStatus{Status: "ok", AppInfo: info}, http.StatusOK)
}
