package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateNotebookRequest struct {
	Name      string     `json:"name" validate:"required"`
	SectionId *uuid.UUID `json:"section_id" validate:"required"`
	Content   string     `json:"content"`
}

// UpdateNotebookRequest carries a full update. Omitted fields keep their
// current value, matching the partial-merge behavior of the PUT route.
type UpdateNotebookRequest struct {
	Name      *string    `json:"name"`
	Content   *string    `json:"content"`
	SectionId *uuid.UUID `json:"section_id"`
}

type UpdateContentRequest struct {
	Content *string `json:"content"`
}

type DuplicateNotebookRequest struct {
	Name      string     `json:"name"`
	SectionId *uuid.UUID `json:"section_id"`
}

type NotebookResponse struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	SectionId uuid.UUID `json:"section_id"`
	UserId    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type DuplicateNotebookResponse struct {
	Message  string           `json:"message"`
	Notebook NotebookResponse `json:"notebook"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
