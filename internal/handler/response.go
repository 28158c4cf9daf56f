package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wishkeeper/wishkeeper-go/internal/repository"
	"github.com/wishkeeper/wishkeeper-go/internal/service"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20 // 1MB

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func errorResponse(msg string) map[string]string {
	return map[string]string{"error": msg}
}

// decodeJSON reads a size-limited JSON body into dst. On failure it writes
// the error response and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
			return false
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return false
	}
	return true
}

// writeError maps validation and conflict errors to 4xx and everything else
// to a logged 500 carrying msg.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error, msg string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse(verr.Message))
	case errors.Is(err, repository.ErrConflict):
		logger.Warn(msg, zap.Error(err))
		writeJSON(w, http.StatusConflict, errorResponse("data changed concurrently, please retry"))
	default:
		logger.Error(msg, zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse(msg))
	}
}
