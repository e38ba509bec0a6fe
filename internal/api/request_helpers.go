package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/bchastanier/esltrack/internal/api/shared"
	"github.com/go-playground/validator/v10"
)

// decodeAndValidate decodes the request body into dst and runs structural
// validation on it. On failure it writes a 400 response and returns false;
// the caller should return immediately.
func decodeAndValidate(
	w http.ResponseWriter,
	r *http.Request,
	validate *validator.Validate,
	log *slog.Logger,
	dst any,
) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		log.Warn("failed to decode request body", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return false
	}

	if err := validate.Struct(dst); err != nil {
		log.Warn("request validation failed", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return false
	}

	return true
}

// requireQueryParam extracts a mandatory query parameter. On absence it
// writes a 400 response and returns false.
func requireQueryParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	value := r.URL.Query().Get(name)
	if value == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, name+" is required")
		return "", false
	}
	return value, true
}
