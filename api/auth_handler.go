package api

import (
	"encoding/json"
	"net/http"

	"github.com/raushankrgupta/skinbox/models"
	"github.com/raushankrgupta/skinbox/utils"
)

// LoginRequest represents the payload for login
type LoginRequest struct {
	Email string `json:"email"`
}

// LoginResponse carries the bearer token and who it belongs to
type LoginResponse struct {
	Token string                 `json:"token"`
	User  models.SessionIdentity `json:"user"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, r, "invalid request body", http.StatusBadRequest, err)
		return
	}

	identity, err := h.Auth.Authenticate(r.Context(), req.Email)
	if err != nil {
		utils.RespondError(w, r, err.Error(), http.StatusBadRequest, err)
		return
	}

	token, err := h.Tokens.GenerateToken(identity)
	if err != nil {
		utils.RespondError(w, r, "could not issue token", http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, LoginResponse{Token: token, User: identity})
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, identityFrom(r.Context()))
}
