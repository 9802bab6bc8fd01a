package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"orderdesk-be/internal/apperr"
	"orderdesk-be/internal/logger"

	"go.uber.org/zap"
)

type errorResponse struct {
	Error     string `json:"error"`
	ProductID string `json:"productId,omitempty"`
	Available *int   `json:"available,omitempty"`
	Requested *int   `json:"requested,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// writeError maps the service error taxonomy onto HTTP status codes. Every
// category stays distinguishable for the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ise *apperr.InsufficientStockError
	if errors.As(err, &ise) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:     ise.Error(),
			ProductID: ise.ProductID.String(),
			Available: &ise.Available,
			Requested: &ise.Requested,
		})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperr.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperr.ErrDuplicate), errors.Is(err, apperr.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, apperr.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, apperr.ErrUnavailable):
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		logger.FromCtx(r.Context()).Error("unhandled error", zap.Error(err))
		writeJSON(w, status, errorResponse{Error: "internal server error"})
		return
	}

	writeJSON(w, status, errorResponse{Error: err.Error()})
}
