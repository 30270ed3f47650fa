package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/fintrack/scheme-engine/internal/service"
	customError "github.com/fintrack/scheme-engine/pkg/errors"
	"github.com/fintrack/scheme-engine/pkg/response"
)

type ProgressHandler struct {
	progress *service.ProgressService
}

func NewProgressHandler(progress *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progress: progress}
}

// GetProgress returns the holder's current progress snapshot.
func (h *ProgressHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	holderID := mux.Vars(r)["holderId"]
	if holderID == "" {
		response.BadRequest(w, "holderId is required", nil)
		return
	}

	snapshot, err := h.progress.GetProgress(r.Context(), holderID, time.Now())
	if err != nil {
		if errors.Is(err, customError.ErrHolderNotFound) || errors.Is(err, customError.ErrSchemeNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalServerError(w, "failed to compute progress", err)
		return
	}

	response.Success(w, snapshot)
}
