package api

import (
	"errors"
	"net/http"

	"github.com/raushankrgupta/skinbox/boxes"
	"github.com/raushankrgupta/skinbox/models"
	"github.com/raushankrgupta/skinbox/recommender"
	"github.com/raushankrgupta/skinbox/storage"
	"github.com/raushankrgupta/skinbox/utils"
)

// respondServiceError maps domain errors onto HTTP statuses.
// Generation failures always carry the same message whatever the cause.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidProfile), errors.Is(err, models.ErrIncompleteContact):
		utils.RespondError(w, r, err.Error(), http.StatusBadRequest, err)
	case errors.Is(err, recommender.ErrGenerationFailed):
		utils.RespondError(w, r, recommender.ErrGenerationFailed.Error(), http.StatusBadGateway, errors.Unwrap(err))
	case errors.Is(err, storage.ErrNotFound):
		utils.RespondError(w, r, "not found", http.StatusNotFound, err)
	case errors.Is(err, boxes.ErrInvalidTransition), errors.Is(err, storage.ErrAlreadyExists):
		utils.RespondError(w, r, err.Error(), http.StatusConflict, err)
	default:
		utils.RespondError(w, r, "internal error", http.StatusInternalServerError, err)
	}
}
