package contract

import (
	"context"

	"booknotion-be/internal/entity"

	"github.com/google/uuid"
)

// SectionRepository is scoped by owning user on every operation except
// Create. Write operations report the number of rows affected; callers treat
// zero as not-found.
type SectionRepository interface {
	Create(ctx context.Context, section *entity.Section) error
	FindAllByUser(ctx context.Context, userId uuid.UUID) ([]*entity.Section, error)
	FindOne(ctx context.Context, id, userId uuid.UUID) (*entity.Section, error)
	UpdateName(ctx context.Context, id, userId uuid.UUID, name string) (int64, error)
	Delete(ctx context.Context, id, userId uuid.UUID) (int64, error)
}
