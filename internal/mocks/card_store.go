package mocks

import (
	"context"

	"github.com/phrazzld/cards-api/internal/domain"
	"github.com/phrazzld/cards-api/internal/store"
)

// MockCardStore implements store.CardStore for testing
type MockCardStore struct {
	// Custom behavior functions
	CreateFn func(ctx context.Context, in domain.CreateCardInput) (*domain.Card, error)
	ListFn   func(ctx context.Context) ([]domain.Card, error)
	UpdateFn func(ctx context.Context, id int64, in domain.UpdateCardInput) (*domain.Card, error)
	DeleteFn func(ctx context.Context, id int64) error
	PingFn   func(ctx context.Context) error

	// Default return values
	Card         *domain.Card
	Cards        []domain.Card
	DefaultError error

	// Calls counts invocations per method name.
	Calls map[string]int
}

var _ store.CardStore = (*MockCardStore)(nil)

func (m *MockCardStore) record(method string) {
	if m.Calls == nil {
		m.Calls = make(map[string]int)
	}
	m.Calls[method]++
}

// Create implements the CardStore.Create method
func (m *MockCardStore) Create(ctx context.Context, in domain.CreateCardInput) (*domain.Card, error) {
	m.record("Create")
	if m.CreateFn != nil {
		return m.CreateFn(ctx, in)
	}
	return m.Card, m.DefaultError
}

// List implements the CardStore.List method
func (m *MockCardStore) List(ctx context.Context) ([]domain.Card, error) {
	m.record("List")
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return m.Cards, m.DefaultError
}

// Update implements the CardStore.Update method
func (m *MockCardStore) Update(ctx context.Context, id int64, in domain.UpdateCardInput) (*domain.Card, error) {
	m.record("Update")
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, in)
	}
	return m.Card, m.DefaultError
}

// Delete implements the CardStore.Delete method
func (m *MockCardStore) Delete(ctx context.Context, id int64) error {
	m.record("Delete")
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.DefaultError
}

// Ping implements the CardStore.Ping method
func (m *MockCardStore) Ping(ctx context.Context) error {
	m.record("Ping")
	if m.PingFn != nil {
		return m.PingFn(ctx)
	}
	return m.DefaultError
}
