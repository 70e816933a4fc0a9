package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gestorhub/caixa/internal/adapter/http/dto"
	"github.com/gestorhub/caixa/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response. Transfer validation failures carry
// their reason code so UI layers can render specific messages.
func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := dto.ErrorResponse{Error: message}

	if err != nil {
		resp.Message = err.Error()
		resp.Reason = domain.TransferReason(err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	var inconsistent *domain.InconsistentTransferError

	switch {
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrEntryNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSameAccount),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidKind):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrExternalEntry):
		return http.StatusConflict
	case errors.As(err, &inconsistent):
		// Books are inconsistent; distinct from an ordinary failed write.
		return http.StatusInternalServerError
	case errors.Is(err, domain.ErrTransferAborted),
		errors.Is(err, domain.ErrTransferRolledBack):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}

// parseBoolQuery parses a boolean query parameter, defaulting to false.
func parseBoolQuery(r *http.Request, key string) bool {
	b, err := strconv.ParseBool(r.URL.Query().Get(key))
	if err != nil {
		return false
	}
	return b
}
