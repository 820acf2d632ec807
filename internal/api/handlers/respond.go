package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/snoody/tft-tierlist/internal/domain"
	"go.uber.org/zap"
)

type envelope struct {
	Success bool                     `json:"success"`
	Data    interface{}              `json:"data,omitempty"`
	Count   *int                     `json:"count,omitempty"`
	Error   string                   `json:"error,omitempty"`
	Errors  []domain.ValidationError `json:"errors,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	writeEnvelope(w, status, envelope{Success: true, Data: data})
}

func respondList(w http.ResponseWriter, data interface{}, count int) {
	writeEnvelope(w, http.StatusOK, envelope{Success: true, Data: data, Count: &count})
}

func respondError(w http.ResponseWriter, status int, message string) {
	writeEnvelope(w, status, envelope{Success: false, Error: message})
}

// respondFailure maps service errors to a status. Validation failures carry
// every field error; anything unrecognised is logged and reported as 500.
func respondFailure(w http.ResponseWriter, logger *zap.Logger, handler string, err error, known map[error]int) {
	var verrs domain.ValidationErrors
	if errors.As(err, &verrs) {
		writeEnvelope(w, http.StatusBadRequest, envelope{
			Success: false,
			Error:   "validation failed",
			Errors:  verrs,
		})
		return
	}

	for target, status := range known {
		if errors.Is(err, target) {
			respondError(w, status, err.Error())
			return
		}
	}

	logger.Error("request failed", zap.String("handler", handler), zap.Error(err))
	respondError(w, http.StatusInternalServerError, "Internal server error")
}

func writeEnvelope(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}
