// Package domain holds the card credential and the ledger-backed account
// aggregate. An account's balance is never stored directly: it is derived
// from an ordered, gap-free sequence of immutable ledger records, and every
// mutation appends a new record with the next sequence index.
package domain

import (
	"fmt"
	"sort"
	"time"
)

// Action labels a balance-changing ledger record.
type Action string

const (
	ActionDeposit    Action = "deposit"
	ActionWithdrawal Action = "withdrawal"
)

// ParseAction validates an action literal coming from a transport layer.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionDeposit, ActionWithdrawal:
		return Action(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidAction, s)
	}
}

// LedgerRecord is one immutable balance-changing event. RecordIndex is unique
// per account and strictly increasing with no gaps; it is the sole ordering
// key. Creation timestamps are not trusted for ordering because multiple
// records can be created within one clock tick. TimeAt is assigned by the
// store on commit and is nil while the record is still buffered.
type LedgerRecord struct {
	RecordIndex int64
	Action      Action
	Balance     int64
	TimeAt      *time.Time
}

// Account is the aggregate reconstructed from an account's ledger for the
// duration of one unit of work. Mutations buffer new records in newHistories;
// committed history is only extended via CommitNewHistories once the store
// has durably persisted the buffer.
type Account struct {
	ID     int64
	UserID int64
	Name   string

	histories       []LedgerRecord
	newHistories    []LedgerRecord
	lastRecordIndex int64
}

// NewAccount reconstructs an aggregate from its (possibly partial) committed
// history. The slice is sorted by record index on construction; the store may
// pass only the latest record when that is enough for the caller.
func NewAccount(id, userID int64, name string, histories []LedgerRecord) *Account {
	sorted := make([]LedgerRecord, len(histories))
	copy(sorted, histories)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].RecordIndex < sorted[j].RecordIndex
	})
	var last int64
	if len(sorted) > 0 {
		last = sorted[len(sorted)-1].RecordIndex
	}
	return &Account{
		ID:              id,
		UserID:          userID,
		Name:            name,
		histories:       sorted,
		lastRecordIndex: last,
	}
}

// Balance returns the balance after the most recent record, buffered or
// committed, or 0 when no records exist at all.
func (a *Account) Balance() int64 {
	if n := len(a.newHistories); n > 0 {
		return a.newHistories[n-1].Balance
	}
	if n := len(a.histories); n > 0 {
		return a.histories[n-1].Balance
	}
	return 0
}

// Deposit appends a deposit record for amount. Zero is accepted; a negative
// amount fails with ErrInvalidAmount and leaves the aggregate unchanged.
func (a *Account) Deposit(amount int64) (LedgerRecord, error) {
	if amount < 0 {
		return LedgerRecord{}, fmt.Errorf("%w: deposit amount must not be negative, got %d", ErrInvalidAmount, amount)
	}
	rec := LedgerRecord{
		RecordIndex: a.nextRecordIndex(),
		Action:      ActionDeposit,
		Balance:     a.Balance() + amount,
	}
	a.newHistories = append(a.newHistories, rec)
	return rec, nil
}

// Withdraw appends a withdrawal record for amount. Unlike Deposit, zero is
// rejected. A withdrawal that would drive the balance below zero fails with
// ErrNegativeAccountBalance; on any failure no record is appended.
func (a *Account) Withdraw(amount int64) (LedgerRecord, error) {
	if amount <= 0 {
		return LedgerRecord{}, fmt.Errorf("%w: withdrawal amount must be larger than zero, got %d", ErrInvalidAmount, amount)
	}
	balance := a.Balance() - amount
	if balance < 0 {
		return LedgerRecord{}, fmt.Errorf("%w: cannot withdraw %d", ErrNegativeAccountBalance, amount)
	}
	rec := LedgerRecord{
		RecordIndex: a.nextRecordIndex(),
		Action:      ActionWithdrawal,
		Balance:     balance,
	}
	a.newHistories = append(a.newHistories, rec)
	return rec, nil
}

// nextRecordIndex continues the sequence from the last buffered record, then
// the last committed record, then the baseline 0.
func (a *Account) nextRecordIndex() int64 {
	if n := len(a.newHistories); n > 0 {
		return a.newHistories[n-1].RecordIndex + 1
	}
	return a.lastRecordIndex + 1
}

// Histories returns a copy of the committed records, sorted by record index.
func (a *Account) Histories() []LedgerRecord {
	out := make([]LedgerRecord, len(a.histories))
	copy(out, a.histories)
	return out
}

// NewHistories returns a copy of the buffered, not yet committed records.
func (a *Account) NewHistories() []LedgerRecord {
	out := make([]LedgerRecord, len(a.newHistories))
	copy(out, a.newHistories)
	return out
}

// CommitNewHistories folds the buffer into the committed history and clears
// it. Call only after the store has durably persisted the buffered records;
// this keeps the in-memory aggregate consistent across multiple operations in
// one unit of work without re-reading storage.
func (a *Account) CommitNewHistories() {
	if len(a.newHistories) == 0 {
		return
	}
	a.histories = append(a.histories, a.newHistories...)
	a.lastRecordIndex = a.histories[len(a.histories)-1].RecordIndex
	a.newHistories = nil
}
