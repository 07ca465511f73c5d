package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/cards-api/internal/domain"
	"github.com/phrazzld/cards-api/internal/platform/logger"
	"github.com/phrazzld/cards-api/internal/redact"
	"github.com/phrazzld/cards-api/internal/store"
)

const cardColumns = `id, title, description, status, created_at, updated_at`

// PostgresCardStore implements the store.CardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCardStore creates a new PostgreSQL implementation of the CardStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresCardStore(db store.DBTX, logger *slog.Logger) *PostgresCardStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// Ensure PostgresCardStore implements store.CardStore interface
var _ store.CardStore = (*PostgresCardStore)(nil)

// Create implements store.CardStore.Create.
// The database assigns the ID and both timestamps.
func (s *PostgresCardStore) Create(ctx context.Context, in domain.CreateCardInput) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO cards (title, description, status)
		VALUES ($1, $2, $3)
		RETURNING ` + cardColumns

	card, err := scanCard(s.db.QueryRowContext(ctx, query, in.Title, in.Description, string(in.Status)))
	if err != nil {
		log.Error("failed to create card", slog.String("error", redact.Error(err)))
		return nil, MapError(err)
	}

	log.Info("card created successfully",
		slog.Int64("card_id", card.ID),
		slog.String("status", string(card.Status)))
	return card, nil
}

// List implements store.CardStore.List.
func (s *PostgresCardStore) List(ctx context.Context) ([]domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + cardColumns + ` FROM cards ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list cards", slog.String("error", redact.Error(err)))
		return nil, MapError(err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			log.Warn("failed to close rows", slog.String("error", redact.Error(cerr)))
		}
	}()

	cards := []domain.Card{}
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			log.Error("failed to scan card row", slog.String("error", redact.Error(err)))
			return nil, MapError(err)
		}
		cards = append(cards, *card)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating card rows", slog.String("error", redact.Error(err)))
		return nil, MapError(err)
	}

	log.Debug("listed cards", slog.Int("count", len(cards)))
	return cards, nil
}

// Update implements store.CardStore.Update.
// Nil fields keep their current value; updated_at is always refreshed.
func (s *PostgresCardStore) Update(
	ctx context.Context,
	id int64,
	in domain.UpdateCardInput,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var status *string
	if in.Status != nil {
		v := string(*in.Status)
		status = &v
	}

	query := `
		UPDATE cards
		SET title = COALESCE($2, title),
			description = COALESCE($3, description),
			status = COALESCE($4, status),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + cardColumns

	card, err := scanCard(s.db.QueryRowContext(ctx, query, id, in.Title, in.Description, status))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("card not found for update", slog.Int64("card_id", id))
			return nil, store.ErrCardNotFound
		}
		log.Error("failed to update card",
			slog.String("error", redact.Error(err)),
			slog.Int64("card_id", id))
		return nil, MapError(err)
	}

	log.Info("card updated successfully", slog.Int64("card_id", id))
	return card, nil
}

// Delete implements store.CardStore.Delete.
func (s *PostgresCardStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM cards WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete card",
			slog.String("error", redact.Error(err)),
			slog.Int64("card_id", id))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrCardNotFound); err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("card not found for deletion", slog.Int64("card_id", id))
		}
		return err
	}

	log.Info("card deleted successfully", slog.Int64("card_id", id))
	return nil
}

// Ping implements store.CardStore.Ping.
func (s *PostgresCardStore) Ping(ctx context.Context) error {
	if p, ok := s.db.(interface{ PingContext(context.Context) error }); ok {
		return p.PingContext(ctx)
	}
	var one int
	if err := s.db.QueryRowContext(ctx, `SELECT 1`).Scan(&one); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (*domain.Card, error) {
	var (
		card   domain.Card
		status string
	)
	if err := row.Scan(
		&card.ID,
		&card.Title,
		&card.Description,
		&status,
		&card.CreatedAt,
		&card.UpdatedAt,
	); err != nil {
		return nil, err
	}
	card.Status = domain.CardStatus(status)
	return &card, nil
}
