package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/raushankrgupta/skinbox/models"
	"github.com/raushankrgupta/skinbox/utils"
)

// ImportRequest asks for a catalog item to be drafted from a shop page
type ImportRequest struct {
	URL  string `json:"url"`
	Type string `json:"type"`
}

func (h *Handler) handleListCatalog(w http.ResponseWriter, r *http.Request) {
	items, err := h.Gateway.GetCatalog(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	images := make([]string, len(items))
	for i, item := range items {
		images[i] = item.ImageURL
	}
	for i, url := range utils.PresignImageURLs(r.Context(), h.Presigner, images) {
		items[i].ImageURL = url
	}

	utils.RespondJSON(w, http.StatusOK, items)
}

func (h *Handler) handleCreateCatalogItem(w http.ResponseWriter, r *http.Request) {
	var item models.CatalogItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		utils.RespondError(w, r, "invalid request body", http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(item.ID) == "" {
		item.ID = "p-" + strings.SplitN(uuid.NewString(), "-", 2)[0]
	}
	if item.Category == "" {
		item.Category = models.CategoryOther
	}
	if err := item.Validate(); err != nil {
		utils.RespondError(w, r, err.Error(), http.StatusBadRequest, err)
		return
	}

	if err := h.Gateway.AddCatalogItem(r.Context(), item); err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, item)
}

func (h *Handler) handleUpdateCatalogItem(w http.ResponseWriter, r *http.Request) {
	var item models.CatalogItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		utils.RespondError(w, r, "invalid request body", http.StatusBadRequest, err)
		return
	}
	item.ID = chi.URLParam(r, "id")
	if err := item.Validate(); err != nil {
		utils.RespondError(w, r, err.Error(), http.StatusBadRequest, err)
		return
	}

	if err := h.Gateway.UpdateCatalogItem(r.Context(), item); err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, item)
}

func (h *Handler) handleDeleteCatalogItem(w http.ResponseWriter, r *http.Request) {
	if err := h.Gateway.DeleteCatalogItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleImportCatalogItem(w http.ResponseWriter, r *http.Request) {
	if h.Importer == nil {
		utils.RespondError(w, r, "catalog import is disabled", http.StatusNotImplemented, nil)
		return
	}

	var req ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.URL) == "" {
		utils.RespondError(w, r, "please provide a product 'url'", http.StatusBadRequest, err)
		return
	}

	var category models.Category
	if req.Type != "" {
		c, err := models.ParseCategory(req.Type)
		if err != nil {
			utils.RespondError(w, r, err.Error(), http.StatusBadRequest, err)
			return
		}
		category = c
	}

	item, err := h.Importer.Import(r.Context(), req.URL, category)
	if err != nil {
		utils.RespondError(w, r, "import failed", http.StatusBadGateway, err)
		return
	}
	if err := h.Gateway.AddCatalogItem(r.Context(), item); err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, item)
}
