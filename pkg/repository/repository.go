// Package repository defines the data access ports consumed by the service
// layer. Concrete adapters live under infra.
package repository

import (
	"context"

	"github.com/jwhwang/atmbank/pkg/domain"
)

// AccountRepository is the account store port. Implementations own durable
// storage and are the sole enforcers of the (account_id, record_index)
// uniqueness constraint.
type AccountRepository interface {
	// GetCard returns the card issued under cardNumber, or
	// domain.ErrInvalidCardNumber when no such card exists.
	GetCard(ctx context.Context, cardNumber int64) (*domain.Card, error)

	// GetUserAccounts lists the user's accounts, each loaded with only its
	// latest ledger record, enough to know the current balance and the next
	// record index.
	GetUserAccounts(ctx context.Context, userID int64) ([]*domain.Account, error)

	// GetUserAccount returns one account owned by userID, or
	// domain.ErrAccountNotFound when it does not exist or belongs to someone
	// else.
	GetUserAccount(ctx context.Context, userID, accountID int64) (*domain.Account, error)

	// UpdateAccount persists every buffered record of the account. A record
	// whose (account_id, record_index) already exists fails with
	// domain.ErrHistoryIntegrity; either all buffered records are written or
	// none are. The uniqueness check is a storage constraint, not a prior
	// read, so it survives concurrent writers racing on the same account.
	UpdateAccount(ctx context.Context, account *domain.Account) error
}
