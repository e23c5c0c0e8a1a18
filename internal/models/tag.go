package models

import (
	"time"

	"github.com/google/uuid"
)

// Tag is a named classification label applied to synced contacts. Looked up by
// exact name and created with DefaultTagColor when absent.
type Tag struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Color     int       `json:"color" db:"color"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

const DefaultTagColor = 4
