package unitofwork

import "context"

// RepositoryFactory creates short-lived units of work, one per request. Kind
// identifies the backing store ("postgres" or "sqlite") for health reporting.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
	Kind() string
}
