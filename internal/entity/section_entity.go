package entity

import (
	"time"

	"github.com/google/uuid"
)

// Section is a user-owned grouping of notebooks. Deleting a section removes
// all notebooks attached to it.
type Section struct {
	Id        uuid.UUID
	Name      string
	UserId    uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}
