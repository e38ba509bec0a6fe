package parse

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bchastanier/esltrack/internal/domain"
	"github.com/bchastanier/esltrack/internal/platform/logger"
	"github.com/bchastanier/esltrack/internal/store"
)

// DefaultCollection is the object store collection holding ESL records.
const DefaultCollection = "GenericEsl"

// ParseEslStore implements the store.EslStore interface against a
// Parse-style object store. Identity and creation timestamp are assigned
// by the remote side at save time.
type ParseEslStore struct {
	client     *Client
	collection string
	logger     *slog.Logger
}

// NewParseEslStore creates a new object store implementation of the
// EslStore interface on top of an existing client. An empty collection
// falls back to DefaultCollection.
// If logger is nil, a default logger will be used.
func NewParseEslStore(client *Client, collection string, logger *slog.Logger) *ParseEslStore {
	if client == nil {
		panic("client cannot be nil")
	}

	if collection == "" {
		collection = DefaultCollection
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &ParseEslStore{
		client:     client,
		collection: collection,
		logger:     logger.With(slog.String("component", "parse_esl_store")),
	}
}

// Ensure ParseEslStore implements store.EslStore interface
var _ store.EslStore = (*ParseEslStore)(nil)

// Save implements store.EslStore.Save.
// The save body omits objectId and createdAt; the object store assigns
// both and returns them in the 201 response.
func (s *ParseEslStore) Save(ctx context.Context, esl *domain.Esl) (*domain.Esl, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := esl.Validate(); err != nil {
		log.Warn("esl validation failed during save",
			slog.String("error", err.Error()),
			slog.String("serial", esl.Serial))
		return nil, err
	}

	if esl.Saved() {
		log.Warn("save attempted on an already saved esl",
			slog.String("object_id", esl.ObjectID),
			slog.String("serial", esl.Serial))
		return nil, fmt.Errorf("%w: %s", store.ErrIdentityAssigned, esl.ObjectID)
	}

	created, err := s.client.Create(ctx, s.collection, esl)
	if err != nil {
		log.Error("failed to save esl",
			slog.String("error", err.Error()),
			slog.String("serial", esl.Serial),
			slog.String("esl_id", esl.EslID))
		return nil, err
	}

	createdAt, err := time.Parse(time.RFC3339, created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid createdAt %q in creation response: %v",
			store.ErrSerialization, created.CreatedAt, err)
	}

	saved := *esl
	saved.ObjectID = created.ObjectID
	saved.CreatedAt = &createdAt

	log.Info("esl saved",
		slog.String("object_id", saved.ObjectID),
		slog.String("serial", saved.Serial),
		slog.String("type", string(saved.Type)))
	return &saved, nil
}

// FindUnprintedBySerial implements store.EslStore.FindUnprintedBySerial.
func (s *ParseEslStore) FindUnprintedBySerial(ctx context.Context, serial string) ([]*domain.Esl, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("finding unprinted esls", slog.String("serial", serial))

	esls := []*domain.Esl{}
	if err := s.client.Query(ctx, s.collection, UnprintedBySerial(serial), &esls); err != nil {
		log.Error("failed to query unprinted esls",
			slog.String("error", err.Error()),
			slog.String("serial", serial))
		return nil, err
	}

	log.Debug("esls found", slog.Int("count", len(esls)))
	return esls, nil
}

// MarkPrinted implements store.EslStore.MarkPrinted.
// The printed flag only flips locally after the object store confirms the
// partial update.
func (s *ParseEslStore) MarkPrinted(ctx context.Context, esl *domain.Esl) (*domain.Esl, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !esl.Saved() {
		log.Warn("mark printed attempted without identity",
			slog.String("serial", esl.Serial),
			slog.String("esl_id", esl.EslID))
		return nil, store.ErrMissingIdentity
	}

	patch := map[string]bool{"printed": true}
	if err := s.client.Update(ctx, s.collection, esl.ObjectID, patch); err != nil {
		log.Error("failed to mark esl printed",
			slog.String("error", err.Error()),
			slog.String("object_id", esl.ObjectID))
		return nil, err
	}

	printed := *esl
	printed.Printed = true

	log.Info("esl marked printed",
		slog.String("object_id", printed.ObjectID),
		slog.String("serial", printed.Serial))
	return &printed, nil
}

// FindByDateRange implements store.EslStore.FindByDateRange.
// The bounds are validated against the shared timestamp format before the
// request is built, then travel verbatim inside the range predicate.
func (s *ParseEslStore) FindByDateRange(ctx context.Context, serial, start, end string) ([]*domain.Esl, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := store.ParseTimestamp(start); err != nil {
		return nil, err
	}
	if _, err := store.ParseTimestamp(end); err != nil {
		return nil, err
	}

	log.Debug("finding esls by date range",
		slog.String("serial", serial),
		slog.String("start", start),
		slog.String("end", end))

	esls := []*domain.Esl{}
	if err := s.client.Query(ctx, s.collection, BySerialBetween(serial, start, end), &esls); err != nil {
		log.Error("failed to query esls by date range",
			slog.String("error", err.Error()),
			slog.String("serial", serial))
		return nil, err
	}

	log.Debug("esls found", slog.Int("count", len(esls)))
	return esls, nil
}
