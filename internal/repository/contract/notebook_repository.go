package contract

import (
	"context"

	"booknotion-be/internal/entity"

	"github.com/google/uuid"
)

// NotebookRepository is scoped by owning user on every operation except
// Create. Write operations report the number of rows affected; callers treat
// zero as not-found.
type NotebookRepository interface {
	Create(ctx context.Context, notebook *entity.Notebook) error
	FindAllByUser(ctx context.Context, userId uuid.UUID) ([]*entity.Notebook, error)
	FindAllBySection(ctx context.Context, sectionId, userId uuid.UUID) ([]*entity.Notebook, error)
	FindOne(ctx context.Context, id, userId uuid.UUID) (*entity.Notebook, error)
	Update(ctx context.Context, notebook *entity.Notebook) (int64, error)
	UpdateContent(ctx context.Context, id, userId uuid.UUID, content string) (int64, error)
	Delete(ctx context.Context, id, userId uuid.UUID) (int64, error)
	DeleteBySection(ctx context.Context, sectionId, userId uuid.UUID) (int64, error)
	CountBySection(ctx context.Context, sectionId, userId uuid.UUID) (int64, error)
	// Search matches the query as a case-insensitive substring of name or
	// content, optionally narrowed to one section.
	Search(ctx context.Context, query string, userId uuid.UUID, sectionId *uuid.UUID) ([]*entity.Notebook, error)
}
