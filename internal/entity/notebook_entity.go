package entity

import (
	"time"

	"github.com/google/uuid"
)

// Notebook is a rich-text document attached to exactly one section. Content
// is opaque serialized rich text; the store never inspects it.
type Notebook struct {
	Id        uuid.UUID
	Name      string
	Content   string
	SectionId uuid.UUID
	UserId    uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}
