package api

import (
	"log/slog"
	"net/http"

	"github.com/bchastanier/esltrack/internal/api/shared"
	"github.com/bchastanier/esltrack/internal/domain"
	"github.com/bchastanier/esltrack/internal/platform/logger"
	"github.com/bchastanier/esltrack/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// EslHandler handles price-tag record HTTP requests. It is backend-agnostic:
// the wired store decides whether records land in Postgres or in the object
// store.
type EslHandler struct {
	eslStore store.EslStore
	validate *validator.Validate
	logger   *slog.Logger
}

// NewEslHandler creates a new EslHandler
func NewEslHandler(eslStore store.EslStore, logger *slog.Logger) *EslHandler {
	if eslStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("eslStore cannot be nil for EslHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for EslHandler")
	}

	return &EslHandler{
		eslStore: eslStore,
		validate: validator.New(),
		logger:   logger.With(slog.String("component", "esl_handler")),
	}
}

// CreateEsl handles POST /api/esls requests.
// It registers a fresh record and responds 201 with the saved record,
// including its backend-assigned objectId and createdAt.
func (h *EslHandler) CreateEsl(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateEslRequest
	if !decodeAndValidate(w, r, h.validate, log, &req) {
		return
	}

	saved, err := h.eslStore.Save(r.Context(), req.toDomain())
	if err != nil {
		HandleStoreError(w, r, err, "Failed to save esl")
		return
	}

	log.Info("esl created",
		slog.String("object_id", saved.ObjectID),
		slog.String("serial", saved.Serial),
		slog.String("type", string(saved.Type)))
	shared.RespondWithJSON(w, r, http.StatusCreated, saved)
}

// ListUnprinted handles GET /api/esls/unprinted requests.
// It returns every record for the given serial whose tag has not been
// printed yet; an empty list is a JSON array, never null.
func (h *EslHandler) ListUnprinted(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	serial, ok := requireQueryParam(w, r, "serial")
	if !ok {
		return
	}

	esls, err := h.eslStore.FindUnprintedBySerial(r.Context(), serial)
	if err != nil {
		HandleStoreError(w, r, err, "Failed to list unprinted esls")
		return
	}

	log.Debug("unprinted esls listed",
		slog.String("serial", serial),
		slog.Int("count", len(esls)))
	shared.RespondWithJSON(w, r, http.StatusOK, esls)
}

// MarkPrinted handles POST /api/esls/{objectID}/printed requests.
// The flip is monotonic: re-marking an already printed record succeeds.
func (h *EslHandler) MarkPrinted(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	objectID := chi.URLParam(r, "objectID")
	if objectID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "objectID is required")
		return
	}

	printed, err := h.eslStore.MarkPrinted(r.Context(), &domain.Esl{ObjectID: objectID})
	if err != nil {
		HandleStoreError(w, r, err, "Failed to mark esl printed")
		return
	}

	log.Info("esl marked printed", slog.String("object_id", printed.ObjectID))
	shared.RespondWithJSON(w, r, http.StatusOK, MarkPrintedResponse{
		ObjectID: printed.ObjectID,
		Printed:  printed.Printed,
	})
}

// ListByDateRange handles GET /api/esls requests.
// Both bounds are exclusive and must use the "YYYY-MM-DD HH:MM:SS:mmm"
// format shared by the backends; malformed bounds respond 400.
func (h *EslHandler) ListByDateRange(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	serial, ok := requireQueryParam(w, r, "serial")
	if !ok {
		return
	}
	start, ok := requireQueryParam(w, r, "start")
	if !ok {
		return
	}
	end, ok := requireQueryParam(w, r, "end")
	if !ok {
		return
	}

	esls, err := h.eslStore.FindByDateRange(r.Context(), serial, start, end)
	if err != nil {
		HandleStoreError(w, r, err, "Failed to list esls by date range")
		return
	}

	log.Debug("esls listed by date range",
		slog.String("serial", serial),
		slog.Int("count", len(esls)))
	shared.RespondWithJSON(w, r, http.StatusOK, esls)
}
