package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bchastanier/esltrack/internal/domain"
	"github.com/bchastanier/esltrack/internal/platform/logger"
	"github.com/bchastanier/esltrack/internal/store"
	"github.com/google/uuid"
)

// eslColumns pins the column order of every SELECT so that scanning never
// depends on the table's physical column ordering. The camelCase names are
// historical and must be quoted or Postgres folds them to lowercase.
const eslColumns = `"objectId", nom, "nomScientifique", plu, "congelInfos", type, origine,
		serial, printed, "eslId", prix, zone, "sousZone", engin, "zoneCode",
		"sousZoneCode", "infosPrix", taille, production, allergenes, "itemId",
		label, tva, "codeCategorie", "prixAchat", "createdAt"`

// PostgresEslStore implements the store.EslStore interface
// using a PostgreSQL database as the storage backend.
type PostgresEslStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresEslStore creates a new PostgreSQL implementation of the
// EslStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresEslStore(db store.DBTX, logger *slog.Logger) *PostgresEslStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresEslStore{
		db:     db,
		logger: logger.With(slog.String("component", "esl_store")),
	}
}

// Ensure PostgresEslStore implements store.EslStore interface
var _ store.EslStore = (*PostgresEslStore)(nil)

// Save implements store.EslStore.Save.
// The identity is a client-side v4 UUID; the creation timestamp is assigned
// by the database via now() and read back through RETURNING.
func (s *PostgresEslStore) Save(ctx context.Context, esl *domain.Esl) (*domain.Esl, error) {
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

	objectID := uuid.New().String()

	query := `
		INSERT INTO esl ("objectId", nom, "nomScientifique", plu, "congelInfos", type,
			origine, serial, printed, "eslId", prix, zone, "sousZone", engin,
			"zoneCode", "sousZoneCode", "infosPrix", taille, production, allergenes,
			"itemId", label, tva, "codeCategorie", "prixAchat", "createdAt")
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, now())
		RETURNING "createdAt"
	`

	var createdAt time.Time
	err := s.db.QueryRowContext(
		ctx,
		query,
		objectID,
		esl.Name,
		esl.ScientificName,
		esl.PLU,
		esl.FrozenInfo,
		string(esl.Type),
		esl.Origin,
		esl.Serial,
		esl.Printed,
		esl.EslID,
		esl.Price,
		esl.Zone,
		esl.SubZone,
		esl.Gear,
		esl.ZoneCode,
		esl.SubZoneCode,
		esl.PriceInfo,
		esl.Size,
		esl.Production,
		esl.Allergens,
		esl.ItemID,
		esl.Label,
		esl.VATRate,
		esl.CategoryCode,
		esl.PurchasePrice,
	).Scan(&createdAt)

	if err != nil {
		log.Error("failed to save esl",
			slog.String("error", err.Error()),
			slog.String("serial", esl.Serial),
			slog.String("esl_id", esl.EslID))
		return nil, MapError(err)
	}

	saved := *esl
	saved.ObjectID = objectID
	saved.CreatedAt = &createdAt

	log.Info("esl saved",
		slog.String("object_id", saved.ObjectID),
		slog.String("serial", saved.Serial),
		slog.String("type", string(saved.Type)))
	return &saved, nil
}

// FindUnprintedBySerial implements store.EslStore.FindUnprintedBySerial.
func (s *PostgresEslStore) FindUnprintedBySerial(ctx context.Context, serial string) ([]*domain.Esl, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("finding unprinted esls", slog.String("serial", serial))

	query := `
		SELECT ` + eslColumns + `
		FROM esl
		WHERE serial = $1 AND printed = false
	`

	return s.queryEsls(ctx, log, query, serial)
}

// MarkPrinted implements store.EslStore.MarkPrinted.
// The record only flips locally after the database confirms the update.
func (s *PostgresEslStore) MarkPrinted(ctx context.Context, esl *domain.Esl) (*domain.Esl, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !esl.Saved() {
		log.Warn("mark printed attempted without identity",
			slog.String("serial", esl.Serial),
			slog.String("esl_id", esl.EslID))
		return nil, store.ErrMissingIdentity
	}

	query := `
		UPDATE esl
		SET printed = true
		WHERE "objectId" = $1
	`

	result, err := s.db.ExecContext(ctx, query, esl.ObjectID)
	if err != nil {
		log.Error("failed to mark esl printed",
			slog.String("error", err.Error()),
			slog.String("object_id", esl.ObjectID))
		return nil, MapError(err)
	}

	if err := CheckRowsAffected(result, esl.ObjectID); err != nil {
		log.Error("mark printed affected no rows",
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
// Both bounds are exclusive; records created exactly at a bound are not
// returned. Printed and unprinted records both match.
func (s *PostgresEslStore) FindByDateRange(ctx context.Context, serial, start, end string) ([]*domain.Esl, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	startTime, err := store.ParseTimestamp(start)
	if err != nil {
		return nil, err
	}
	endTime, err := store.ParseTimestamp(end)
	if err != nil {
		return nil, err
	}

	log.Debug("finding esls by date range",
		slog.String("serial", serial),
		slog.Time("start", startTime),
		slog.Time("end", endTime))

	query := `
		SELECT ` + eslColumns + `
		FROM esl
		WHERE serial = $1 AND "createdAt" > $2 AND "createdAt" < $3
	`

	return s.queryEsls(ctx, log, query, serial, startTime, endTime)
}

// queryEsls runs a SELECT over eslColumns and maps every row to a record.
func (s *PostgresEslStore) queryEsls(
	ctx context.Context,
	log *slog.Logger,
	query string,
	args ...any,
) ([]*domain.Esl, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query esls", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	// Return empty slice instead of nil when nothing matches.
	esls := []*domain.Esl{}
	for rows.Next() {
		var esl domain.Esl
		var typ string
		var createdAt time.Time

		err := rows.Scan(
			&esl.ObjectID,
			&esl.Name,
			&esl.ScientificName,
			&esl.PLU,
			&esl.FrozenInfo,
			&typ,
			&esl.Origin,
			&esl.Serial,
			&esl.Printed,
			&esl.EslID,
			&esl.Price,
			&esl.Zone,
			&esl.SubZone,
			&esl.Gear,
			&esl.ZoneCode,
			&esl.SubZoneCode,
			&esl.PriceInfo,
			&esl.Size,
			&esl.Production,
			&esl.Allergens,
			&esl.ItemID,
			&esl.Label,
			&esl.VATRate,
			&esl.CategoryCode,
			&esl.PurchasePrice,
			&createdAt,
		)
		if err != nil {
			log.Error("failed to scan esl row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}

		esl.Type = domain.EslType(typ)
		esl.CreatedAt = &createdAt
		esls = append(esls, &esl)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	log.Debug("esls found", slog.Int("count", len(esls)))
	return esls, nil
}
