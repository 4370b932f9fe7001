package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Billy-Davies-2/tierboard/internal/board"
	"github.com/Billy-Davies-2/tierboard/internal/dal"
	"github.com/Billy-Davies-2/tierboard/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode JSON response", "error", err)
	}
}

func respondWithError(w http.ResponseWriter, err error) {
	respondWithJSON(w, statusFromError(err), errorResponse{Error: errorMessage(err)})
}

// statusFromError maps domain errors to HTTP status codes.
func statusFromError(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, board.ErrPlayerNotFound):
		return http.StatusNotFound
	case errors.Is(err, board.ErrNotLoaded):
		return http.StatusServiceUnavailable
	case errors.Is(err, dal.ErrInvalidRoster):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage keeps client-facing messages to the sentinel text so names
// and source details stay in the logs.
func errorMessage(err error) string {
	for _, sentinel := range []error{board.ErrPlayerNotFound, board.ErrNotLoaded, dal.ErrInvalidRoster} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return "internal server error"
}
