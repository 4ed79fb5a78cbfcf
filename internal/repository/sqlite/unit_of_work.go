package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"booknotion-be/internal/repository/contract"
	"booknotion-be/internal/repository/unitofwork"
)

type UnitOfWorkImpl struct {
	db *sql.DB
	tx *sql.Tx // active transaction, nil outside Begin/Commit
}

func NewUnitOfWork(db *sql.DB) unitofwork.UnitOfWork {
	return &UnitOfWorkImpl{db: db}
}

func (u *UnitOfWorkImpl) getQuerier() querier {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	u.tx = tx
	return nil
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit()
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback()
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) UserRepository() contract.UserRepository {
	return NewUserRepository(u.getQuerier())
}

func (u *UnitOfWorkImpl) SectionRepository() contract.SectionRepository {
	return NewSectionRepository(u.getQuerier())
}

func (u *UnitOfWorkImpl) NotebookRepository() contract.NotebookRepository {
	return NewNotebookRepository(u.getQuerier())
}

type RepositoryFactoryImpl struct {
	db *sql.DB
}

func NewRepositoryFactory(db *sql.DB) unitofwork.RepositoryFactory {
	return &RepositoryFactoryImpl{db: db}
}

func (f *RepositoryFactoryImpl) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return NewUnitOfWork(f.db)
}

func (f *RepositoryFactoryImpl) Kind() string {
	return "sqlite"
}
