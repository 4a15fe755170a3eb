// Package atm provides the transaction handler for authenticated cardholder
// operations. Every operation runs single-pass inside exactly one unit of
// work: card lookup, session validation, the requested read or mutation,
// persistence of newly buffered ledger records, and a session TTL refresh.
// No state is held between invocations; the account aggregate is
// reconstructed fresh from storage on every call.
package atm

import (
	"context"
	"log/slog"

	"github.com/jwhwang/atmbank/pkg/domain"
	"github.com/jwhwang/atmbank/pkg/eventbus"
	"github.com/jwhwang/atmbank/pkg/repository"
	"github.com/jwhwang/atmbank/pkg/session"
)

// AccountView is the read model returned for account listings.
type AccountView struct {
	AccountID int64  `json:"account_id"`
	Name      string `json:"name"`
	Balance   int64  `json:"balance"`
}

// Service orchestrates authentication, session validation, aggregate
// mutation, and persistence as one unit of work per call.
type Service struct {
	uow      repository.UnitOfWork
	sessions session.Store
	bus      eventbus.EventBus
	logger   *slog.Logger
}

// New creates a Service with the provided dependencies.
func New(
	uow repository.UnitOfWork,
	sessions session.Store,
	bus eventbus.EventBus,
	logger *slog.Logger,
) *Service {
	return &Service{uow: uow, sessions: sessions, bus: bus, logger: logger}
}

// SetSession authenticates a card against a PIN and issues a session token.
// Fails with domain.ErrInvalidCardNumber when the card is unknown and
// domain.ErrIncorrectPin when the PIN does not match. A successful call
// overwrites any previous session for the cardholder.
func (s *Service) SetSession(ctx context.Context, cardNumber int64, pin string) (token string, err error) {
	logger := s.logger.With("card_number", cardNumber)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		card, err := repo.GetCard(ctx, cardNumber)
		if err != nil {
			return err
		}
		if !card.ValidatePin(pin) {
			logger.Warn("pin validation failed")
			return domain.ErrIncorrectPin
		}
		token, err = s.sessions.SetSession(ctx, card.UserID)
		return err
	})
	if err != nil {
		return "", err
	}
	logger.Info("session issued")
	return token, nil
}

// GetAccounts lists the cardholder's accounts with current balances. The
// session token must be valid for the card's user; a successful call extends
// the session TTL.
func (s *Service) GetAccounts(ctx context.Context, token string, cardNumber int64) (views []AccountView, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		card, err := repo.GetCard(ctx, cardNumber)
		if err != nil {
			return err
		}
		if err := s.requireSession(ctx, card.UserID, token); err != nil {
			return err
		}
		accounts, err := repo.GetUserAccounts(ctx, card.UserID)
		if err != nil {
			return err
		}
		views = make([]AccountView, 0, len(accounts))
		for _, a := range accounts {
			views = append(views, AccountView{AccountID: a.ID, Name: a.Name, Balance: a.Balance()})
		}
		return s.sessions.ExtendSession(ctx, card.UserID)
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

// AccountAction applies a deposit or withdrawal to one of the cardholder's
// accounts and returns the resulting ledger record. The action literal is
// validated before the aggregate is touched. A sequence-index collision with
// a concurrent writer surfaces as domain.ErrHistoryIntegrity, unmodified:
// retrying is the caller's decision, not the store's.
func (s *Service) AccountAction(
	ctx context.Context,
	token string,
	cardNumber, accountID int64,
	action string,
	amount int64,
) (*domain.LedgerRecord, error) {
	act, err := domain.ParseAction(action)
	if err != nil {
		return nil, err
	}
	logger := s.logger.With("card_number", cardNumber, "account_id", accountID, "action", act)

	var (
		committed []domain.LedgerRecord
		userID    int64
	)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		card, err := repo.GetCard(ctx, cardNumber)
		if err != nil {
			return err
		}
		if err := s.requireSession(ctx, card.UserID, token); err != nil {
			return err
		}
		account, err := repo.GetUserAccount(ctx, card.UserID, accountID)
		if err != nil {
			return err
		}
		switch act {
		case domain.ActionDeposit:
			_, err = account.Deposit(amount)
		case domain.ActionWithdrawal:
			_, err = account.Withdraw(amount)
		}
		if err != nil {
			return err
		}
		if err := repo.UpdateAccount(ctx, account); err != nil {
			return err
		}
		committed = account.NewHistories()
		account.CommitNewHistories()
		userID = card.UserID
		return s.sessions.ExtendSession(ctx, card.UserID)
	})
	if err != nil {
		logger.Error("account action failed", "error", err)
		return nil, err
	}

	// The buffered records became durable when the transaction committed;
	// they are the call's outbox.
	for _, rec := range committed {
		if err := s.bus.Publish(ctx, domain.LedgerRecordCommitted{
			AccountID: accountID,
			UserID:    userID,
			Record:    rec,
		}); err != nil {
			logger.Warn("failed to publish committed record", "record_index", rec.RecordIndex, "error", err)
		}
	}
	rec := committed[len(committed)-1]
	logger.Info("account action committed", "record_index", rec.RecordIndex, "balance", rec.Balance)
	return &rec, nil
}

func (s *Service) requireSession(ctx context.Context, userID int64, token string) error {
	ok, err := s.sessions.ValidateUserSession(ctx, userID, token)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrInvalidSessionKey
	}
	return nil
}
