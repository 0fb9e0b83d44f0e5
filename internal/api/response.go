package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/mlakar/zaloga/internal/store"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

// respondStoreError maps store errors onto HTTP statuses: validation errors
// become 400 with field context, not-found (including cross-tenant access)
// becomes 404 naming the identifier, anything else is a persistence failure
// logged at error level and reported as an opaque 500.
func respondStoreError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var verr *store.ValidationError
	if errors.As(err, &verr) {
		jsonError(w, http.StatusBadRequest, verr.Error())
		return
	}
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, http.StatusNotFound, err.Error())
		return
	}
	logger.Error("storage failure", zap.Error(err))
	jsonError(w, http.StatusInternalServerError, "internal server error")
}
