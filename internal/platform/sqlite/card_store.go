package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/cards-api/internal/domain"
	"github.com/phrazzld/cards-api/internal/platform/logger"
	"github.com/phrazzld/cards-api/internal/redact"
	"github.com/phrazzld/cards-api/internal/store"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

const cardColumns = `id, title, description, status, created_at, updated_at`

// cardRow mirrors the cards table. Timestamps are stored as Unix milliseconds.
type cardRow struct {
	ID          int64   `db:"id"`
	Title       string  `db:"title"`
	Description *string `db:"description"`
	Status      string  `db:"status"`
	CreatedAt   int64   `db:"created_at"`
	UpdatedAt   int64   `db:"updated_at"`
}

func (r cardRow) toDomain() domain.Card {
	return domain.Card{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Status:      domain.CardStatus(r.Status),
		CreatedAt:   time.UnixMilli(r.CreatedAt).UTC(),
		UpdatedAt:   time.UnixMilli(r.UpdatedAt).UTC(),
	}
}

// CardStore implements store.CardStore on SQLite.
type CardStore struct {
	db     *sqlx.DB
	logger *slog.Logger
	now    func() time.Time
}

// NewCardStore creates a SQLite card store. The schema must already be migrated.
// If logger is nil, a default logger will be used.
func NewCardStore(db *sqlx.DB, logger *slog.Logger) *CardStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
		now:    time.Now,
	}
}

var _ store.CardStore = (*CardStore)(nil)

// Create implements store.CardStore.Create.
func (s *CardStore) Create(ctx context.Context, in domain.CreateCardInput) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.now().UnixMilli()

	var row cardRow
	err := s.db.GetContext(ctx, &row, `
		INSERT INTO cards (title, description, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING `+cardColumns,
		in.Title, in.Description, string(in.Status), now, now,
	)
	if err != nil {
		log.Error("failed to create card", slog.String("error", redact.Error(err)))
		return nil, mapError(err)
	}

	card := row.toDomain()
	log.Info("card created successfully",
		slog.Int64("card_id", card.ID),
		slog.String("status", string(card.Status)))
	return &card, nil
}

// List implements store.CardStore.List.
func (s *CardStore) List(ctx context.Context) ([]domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var rows []cardRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT `+cardColumns+` FROM cards ORDER BY created_at DESC, id DESC`)
	if err != nil {
		log.Error("failed to list cards", slog.String("error", redact.Error(err)))
		return nil, mapError(err)
	}

	cards := make([]domain.Card, 0, len(rows))
	for _, r := range rows {
		cards = append(cards, r.toDomain())
	}

	log.Debug("listed cards", slog.Int("count", len(cards)))
	return cards, nil
}

// Update implements store.CardStore.Update.
func (s *CardStore) Update(ctx context.Context, id int64, in domain.UpdateCardInput) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var status *string
	if in.Status != nil {
		v := string(*in.Status)
		status = &v
	}

	var row cardRow
	err := s.db.GetContext(ctx, &row, `
		UPDATE cards
		SET title = COALESCE(?, title),
			description = COALESCE(?, description),
			status = COALESCE(?, status),
			updated_at = ?
		WHERE id = ?
		RETURNING `+cardColumns,
		in.Title, in.Description, status, s.now().UnixMilli(), id,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("card not found for update", slog.Int64("card_id", id))
			return nil, store.ErrCardNotFound
		}
		log.Error("failed to update card",
			slog.String("error", redact.Error(err)),
			slog.Int64("card_id", id))
		return nil, mapError(err)
	}

	card := row.toDomain()
	log.Info("card updated successfully", slog.Int64("card_id", id))
	return &card, nil
}

// Delete implements store.CardStore.Delete.
func (s *CardStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete card",
			slog.String("error", redact.Error(err)),
			slog.Int64("card_id", id))
		return mapError(err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		log.Debug("card not found for deletion", slog.Int64("card_id", id))
		return store.ErrCardNotFound
	}

	log.Info("card deleted successfully", slog.Int64("card_id", id))
	return nil
}

// Ping implements store.CardStore.Ping.
func (s *CardStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// mapError converts SQLite constraint failures to store errors.
func mapError(err error) error {
	var sqliteErr *msqlite.Error
	if !errors.As(err, &sqliteErr) {
		return err
	}
	switch sqliteErr.Code() {
	case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
		return fmt.Errorf("%w: %w", store.ErrDuplicate, err)
	case sqlite3lib.SQLITE_CONSTRAINT_CHECK,
		sqlite3lib.SQLITE_CONSTRAINT_NOTNULL,
		sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY:
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	return err
}
