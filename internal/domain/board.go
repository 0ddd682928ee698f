package domain

import (
	"time"

	"github.com/google/uuid"
)

// Board is a named topical collection. It owns lessons and references records.
type Board struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Type      BoardType `json:"type"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}

// Lesson is an ordered sub-unit owned by exactly one board.
type Lesson struct {
	ID        uuid.UUID `json:"id"`
	BoardID   uuid.UUID `json:"boardId"`
	Title     string    `json:"title"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}
