// Package fixtures provides in-memory fakes of the storage ports for tests:
// an account store enforcing the same (account_id, record_index) uniqueness
// rule as the relational adapter, and a unit of work with snapshot rollback.
package fixtures

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jwhwang/atmbank/pkg/domain"
	"github.com/jwhwang/atmbank/pkg/repository"
)

type accountRow struct {
	id     int64
	userID int64
	name   string
}

// MemoryStore is the shared backing state of the fake repositories.
type MemoryStore struct {
	mu        sync.Mutex
	cards     map[int64]domain.Card
	accounts  map[int64]accountRow
	histories map[int64][]domain.LedgerRecord
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cards:     make(map[int64]domain.Card),
		accounts:  make(map[int64]accountRow),
		histories: make(map[int64][]domain.LedgerRecord),
	}
}

// AddCard seeds a card.
func (s *MemoryStore) AddCard(card domain.Card) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cards[card.CardNumber] = card
}

// AddAccount seeds an account with optional committed history.
func (s *MemoryStore) AddAccount(id, userID int64, name string, histories ...domain.LedgerRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[id] = accountRow{id: id, userID: userID, name: name}
	s.histories[id] = append([]domain.LedgerRecord(nil), histories...)
}

// Histories returns a copy of the committed ledger of an account.
func (s *MemoryStore) Histories(accountID int64) []domain.LedgerRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.LedgerRecord(nil), s.histories[accountID]...)
}

func (s *MemoryStore) snapshot() map[int64][]domain.LedgerRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := make(map[int64][]domain.LedgerRecord, len(s.histories))
	for id, records := range s.histories {
		snap[id] = append([]domain.LedgerRecord(nil), records...)
	}
	return snap
}

func (s *MemoryStore) restore(snap map[int64][]domain.LedgerRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.histories = snap
}

// MemoryUoW implements repository.UnitOfWork over a MemoryStore. Do snapshots
// the ledger state before running fn and restores it when fn fails, mirroring
// the rollback semantics of the transactional adapter.
type MemoryUoW struct {
	store  *MemoryStore
	active bool
}

// NewMemoryUoW creates a unit of work over store.
func NewMemoryUoW(store *MemoryStore) *MemoryUoW {
	return &MemoryUoW{store: store}
}

var _ repository.UnitOfWork = (*MemoryUoW)(nil)

// Do implements repository.UnitOfWork.
func (u *MemoryUoW) Do(_ context.Context, fn func(uow repository.UnitOfWork) error) error {
	snap := u.store.snapshot()
	if err := fn(&MemoryUoW{store: u.store, active: true}); err != nil {
		u.store.restore(snap)
		return err
	}
	return nil
}

// AccountRepository implements repository.UnitOfWork.
func (u *MemoryUoW) AccountRepository() (repository.AccountRepository, error) {
	if !u.active {
		return nil, errors.New("no active transaction")
	}
	return &memoryAccountRepository{store: u.store}, nil
}

type memoryAccountRepository struct {
	store *MemoryStore
}

func (r *memoryAccountRepository) GetCard(_ context.Context, cardNumber int64) (*domain.Card, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	card, ok := r.store.cards[cardNumber]
	if !ok {
		return nil, domain.ErrInvalidCardNumber
	}
	return &card, nil
}

func (r *memoryAccountRepository) GetUserAccounts(_ context.Context, userID int64) ([]*domain.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var accounts []*domain.Account
	for _, row := range r.store.accounts {
		if row.userID != userID {
			continue
		}
		accounts = append(accounts, domain.NewAccount(row.id, row.userID, row.name, r.latestHistory(row.id)))
	}
	return accounts, nil
}

func (r *memoryAccountRepository) GetUserAccount(_ context.Context, userID, accountID int64) (*domain.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	row, ok := r.store.accounts[accountID]
	if !ok || row.userID != userID {
		return nil, domain.ErrAccountNotFound
	}
	return domain.NewAccount(row.id, row.userID, row.name, r.latestHistory(row.id)), nil
}

func (r *memoryAccountRepository) UpdateAccount(_ context.Context, account *domain.Account) error {
	newHistories := account.NewHistories()
	if len(newHistories) == 0 {
		return nil
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	existing := make(map[int64]bool, len(r.store.histories[account.ID]))
	for _, rec := range r.store.histories[account.ID] {
		existing[rec.RecordIndex] = true
	}
	// Uniqueness is checked for the whole batch before anything is written.
	for _, rec := range newHistories {
		if existing[rec.RecordIndex] {
			return fmt.Errorf("%w: account %d record index %d", domain.ErrHistoryIntegrity, account.ID, rec.RecordIndex)
		}
		existing[rec.RecordIndex] = true
	}
	now := time.Now()
	for _, rec := range newHistories {
		rec.TimeAt = &now
		r.store.histories[account.ID] = append(r.store.histories[account.ID], rec)
	}
	return nil
}

func (r *memoryAccountRepository) latestHistory(accountID int64) []domain.LedgerRecord {
	records := r.store.histories[accountID]
	if len(records) == 0 {
		return nil
	}
	latest := records[0]
	for _, rec := range records[1:] {
		if rec.RecordIndex > latest.RecordIndex {
			latest = rec
		}
	}
	return []domain.LedgerRecord{latest}
}
