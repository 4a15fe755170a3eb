package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/jwhwang/atmbank/pkg/repository"
)

// UoW implements the unit of work port on a gorm transaction. Repositories
// handed out inside Do are bound to the transaction session, so everything a
// handler writes becomes visible together on commit, or not at all.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a UoW over the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs fn inside one database transaction. A non-nil error from fn rolls
// the transaction back; gorm also rolls back on panic.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

// AccountRepository returns the account store bound to the active transaction.
func (u *UoW) AccountRepository() (repository.AccountRepository, error) {
	if u.tx == nil {
		return nil, errors.New("no active transaction: AccountRepository is only available inside Do")
	}
	return NewAccountRepository(u.tx), nil
}
