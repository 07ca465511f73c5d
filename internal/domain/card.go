package domain

import (
	"time"
)

// CardStatus is the workflow state of a card.
type CardStatus string

// Supported card statuses.
const (
	CardStatusTodo  CardStatus = "todo"
	CardStatusDoing CardStatus = "doing"
	CardStatusDone  CardStatus = "done"
)

// DefaultCardStatus is applied when a card is created without a status.
const DefaultCardStatus = CardStatusTodo

// MaxCardTitleLength is the maximum number of characters allowed in a title.
const MaxCardTitleLength = 100

// CardStatuses lists every valid status in display order.
var CardStatuses = []CardStatus{CardStatusTodo, CardStatusDoing, CardStatusDone}

// Valid reports whether s is one of the supported statuses.
func (s CardStatus) Valid() bool {
	switch s {
	case CardStatusTodo, CardStatusDoing, CardStatusDone:
		return true
	default:
		return false
	}
}

// Card is a single board item. The ID and CreatedAt are assigned by the store
// on creation and never change afterwards.
type Card struct {
	ID          int64      `json:"id"          db:"id"`
	Title       string     `json:"title"       db:"title"`
	Description *string    `json:"description" db:"description"`
	Status      CardStatus `json:"status"      db:"status"`
	CreatedAt   time.Time  `json:"createdAt"   db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt"   db:"updated_at"`
}

// CreateCardInput is the normalized payload for creating a card.
// Status is always set; ParseCreate fills in DefaultCardStatus.
type CreateCardInput struct {
	Title       string
	Description *string
	Status      CardStatus
}

// UpdateCardInput is a partial card update. Nil fields are left untouched.
type UpdateCardInput struct {
	Title       *string
	Description *string
	Status      *CardStatus
}

// IsEmpty reports whether the update would change nothing.
func (u UpdateCardInput) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Status == nil
}
