// Package repository implements the account store port on GORM/postgres.
package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jwhwang/atmbank/pkg/domain"
	"github.com/jwhwang/atmbank/pkg/repository"
)

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates an account repository over the given *gorm.DB,
// which may be a transaction session.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// GetCard implements repository.AccountRepository.
func (r *accountRepository) GetCard(ctx context.Context, cardNumber int64) (*domain.Card, error) {
	var m BankCard
	err := r.db.WithContext(ctx).First(&m, "card_number = ?", cardNumber).Error
	if err != nil {
		return nil, mapGormError(err, domain.ErrInvalidCardNumber)
	}
	return &domain.Card{
		CardNumber:  m.CardNumber,
		UserID:      m.UserID,
		PinSaltHash: m.PinSaltHash,
	}, nil
}

// GetUserAccounts implements repository.AccountRepository. Each account is
// loaded with only its latest ledger record, which is enough for the current
// balance and the next record index.
func (r *accountRepository) GetUserAccounts(ctx context.Context, userID int64) ([]*domain.Account, error) {
	var rows []BankAccount
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, mapGormError(err, domain.ErrAccountNotFound)
	}
	accounts := make([]*domain.Account, 0, len(rows))
	for i := range rows {
		histories, err := r.latestHistory(ctx, rows[i].ID)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, domain.NewAccount(rows[i].ID, rows[i].UserID, rows[i].Name, histories))
	}
	return accounts, nil
}

// GetUserAccount implements repository.AccountRepository. An account owned by
// a different user is indistinguishable from a missing one.
func (r *accountRepository) GetUserAccount(ctx context.Context, userID, accountID int64) (*domain.Account, error) {
	var m BankAccount
	err := r.db.WithContext(ctx).First(&m, "user_id = ? AND id = ?", userID, accountID).Error
	if err != nil {
		return nil, mapGormError(err, domain.ErrAccountNotFound)
	}
	histories, err := r.latestHistory(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	return domain.NewAccount(m.ID, m.UserID, m.Name, histories), nil
}

// UpdateAccount implements repository.AccountRepository. All buffered records
// are inserted in one batch; the unique index on (account_id, record_index)
// rejects a collision with a concurrent writer, and the enclosing transaction
// guarantees none of the batch survives a failure.
func (r *accountRepository) UpdateAccount(ctx context.Context, account *domain.Account) error {
	newHistories := account.NewHistories()
	if len(newHistories) == 0 {
		return nil
	}
	rows := make([]AccountHistory, 0, len(newHistories))
	for _, rec := range newHistories {
		rows = append(rows, AccountHistory{
			AccountID:   account.ID,
			RecordIndex: rec.RecordIndex,
			Balance:     rec.Balance,
			Action:      string(rec.Action),
		})
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return mapGormError(err, domain.ErrAccountNotFound)
	}
	return nil
}

func (r *accountRepository) latestHistory(ctx context.Context, accountID int64) ([]domain.LedgerRecord, error) {
	var m AccountHistory
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("record_index DESC").
		First(&m).Error
	if err != nil {
		if mapped := mapGormError(err, nil); mapped != nil {
			return nil, mapped
		}
		// No records yet: a fresh account with balance 0.
		return nil, nil
	}
	timeAt := m.CreatedAt
	return []domain.LedgerRecord{{
		RecordIndex: m.RecordIndex,
		Action:      domain.Action(m.Action),
		Balance:     m.Balance,
		TimeAt:      &timeAt,
	}}, nil
}
