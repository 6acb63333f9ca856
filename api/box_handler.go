package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/raushankrgupta/skinbox/models"
	"github.com/raushankrgupta/skinbox/storage"
	"github.com/raushankrgupta/skinbox/utils"
)

// GenerateRequest is the submitted questionnaire. Photo is a browser data URL.
type GenerateRequest struct {
	SkinType    models.SkinType `json:"skinType"`
	Concerns    []string        `json:"concerns"`
	Season      string          `json:"season"`
	Allergies   string          `json:"allergies"`
	Budget      string          `json:"budget"`
	Description string          `json:"description"`
	Language    string          `json:"language"`
	Photo       string          `json:"photo"`
}

// StatusRequest moves a box to a new lifecycle status
type StatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) handleGenerateBox(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, r, "invalid request body", http.StatusBadRequest, err)
		return
	}

	profile := models.DiagnosticProfile{
		SkinType:    req.SkinType,
		Concerns:    req.Concerns,
		Season:      req.Season,
		Allergies:   req.Allergies,
		Budget:      req.Budget,
		Description: req.Description,
		Language:    req.Language,
	}
	if req.Photo != "" {
		photo, err := models.PhotoFromDataURL(req.Photo)
		if err != nil {
			utils.RespondError(w, r, err.Error(), http.StatusBadRequest, err)
			return
		}
		profile.Photo = photo
	}

	box, err := h.Boxes.Generate(r.Context(), identityFrom(r.Context()), profile)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, box)
}

func (h *Handler) handleListBoxes(w http.ResponseWriter, r *http.Request) {
	boxes, err := h.Gateway.GetBoxesForUser(r.Context(), identityFrom(r.Context()).ID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, boxes)
}

func (h *Handler) handleListAllBoxes(w http.ResponseWriter, r *http.Request) {
	boxes, err := h.Gateway.GetAllBoxes(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	storage.SortNewestFirst(boxes)
	utils.RespondJSON(w, http.StatusOK, boxes)
}

// visibleBox loads a box the caller may see; other users' boxes look missing
func (h *Handler) visibleBox(r *http.Request) (models.Box, error) {
	id := chi.URLParam(r, "id")
	box, err := h.Gateway.GetBox(r.Context(), id)
	if err != nil {
		return models.Box{}, err
	}
	user := identityFrom(r.Context())
	if box.UserID != user.ID && !user.IsAdmin() {
		return models.Box{}, fmt.Errorf("box %s: %w", id, storage.ErrNotFound)
	}
	return box, nil
}

func (h *Handler) handleGetBox(w http.ResponseWriter, r *http.Request) {
	box, err := h.visibleBox(r)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, box)
}

func (h *Handler) handleBoxPhoto(w http.ResponseWriter, r *http.Request) {
	box, err := h.visibleBox(r)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if h.Presigner == nil || box.Profile.Photo == nil || box.Profile.Photo.Key == "" {
		utils.RespondError(w, r, "photo not found", http.StatusNotFound, nil)
		return
	}

	url, err := h.Presigner.PresignedURL(r.Context(), box.Profile.Photo.Key)
	if err != nil {
		utils.RespondError(w, r, "could not sign photo url", http.StatusInternalServerError, err)
		return
	}
	http.Redirect(w, r, url, http.StatusFound)
}

func (h *Handler) handleOrderBox(w http.ResponseWriter, r *http.Request) {
	box, err := h.visibleBox(r)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	var contact models.OrderContact
	if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
		utils.RespondError(w, r, "invalid request body", http.StatusBadRequest, err)
		return
	}

	order, err := h.Orders.Submit(r.Context(), box, contact)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, order)
}

func (h *Handler) handleSetBoxStatus(w http.ResponseWriter, r *http.Request) {
	var req StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, r, "invalid request body", http.StatusBadRequest, err)
		return
	}
	status, err := models.ParseBoxStatus(req.Status)
	if err != nil {
		utils.RespondError(w, r, err.Error(), http.StatusBadRequest, err)
		return
	}

	box, err := h.Statuses.Transition(r.Context(), chi.URLParam(r, "id"), status)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, box)
}
