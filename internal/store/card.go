package store

import (
	"context"

	"github.com/phrazzld/cards-api/internal/domain"
)

// CardStore defines the interface for card persistence.
// Inputs are expected to come from the domain parsers; implementations do not
// re-validate titles or statuses.
type CardStore interface {
	// Create inserts a new card and returns it with its assigned ID and timestamps.
	Create(ctx context.Context, in domain.CreateCardInput) (*domain.Card, error)

	// List returns every card ordered newest first (created_at DESC, then id DESC).
	// An empty store yields an empty, non-nil slice.
	List(ctx context.Context) ([]domain.Card, error)

	// Update applies the non-nil fields of in to the card with the given ID and
	// returns the updated card.
	// Returns ErrCardNotFound if the card does not exist.
	Update(ctx context.Context, id int64, in domain.UpdateCardInput) (*domain.Card, error)

	// Delete removes the card with the given ID.
	// Returns ErrCardNotFound if the card does not exist.
	Delete(ctx context.Context, id int64) error

	// Ping verifies the underlying database is reachable.
	Ping(ctx context.Context) error
}
