package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-balance-sync/internal/logger"
	"github.com/MKhiriev/go-balance-sync/internal/utils"
	"github.com/MKhiriev/go-balance-sync/models"
)

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	categories, err := h.services.CategoryService.List(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.listCategories").Msg("error listing categories")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.CategoryList{Categories: categories, Count: len(categories)}, http.StatusOK)
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var category models.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		log.Err(err).Str("func", "*Handler.createCategory").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	created, err := h.services.CategoryService.Create(r.Context(), category)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createCategory").Msg("error creating category")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}
