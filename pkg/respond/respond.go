// Package respond writes API responses.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"personalportal/pkg/logger"
	"personalportal/pkg/validation"
	"personalportal/store"
)

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Sugar.Errorf("Failed to encode response: %v", err)
	}
}

// Error maps err onto a status code. Unexpected errors are logged with the
// failed action and reported without internals.
func Error(w http.ResponseWriter, err error, action string) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		JSON(w, http.StatusBadRequest, verr)
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, "Not found", http.StatusNotFound)
	default:
		logger.Sugar.Errorf("Handler: Failed to %s: %v", action, err)
		http.Error(w, "Failed to "+action, http.StatusInternalServerError)
	}
}
