package unitofwork

import (
	"context"

	"booknotion-be/internal/repository/contract"
)

// UnitOfWork groups repository access for a single logical operation. Begin /
// Commit / Rollback are optional; without Begin every call runs standalone.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	SectionRepository() contract.SectionRepository
	NotebookRepository() contract.NotebookRepository
}
