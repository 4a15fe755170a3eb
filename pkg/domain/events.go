package domain

// Event is the marker interface for domain events published after a unit of
// work commits.
type Event interface {
	Type() string
}

// LedgerRecordCommitted is emitted for every ledger record durably persisted
// by a unit of work. The records a handler buffered form its outbox: they are
// published together after commit, or not at all.
type LedgerRecordCommitted struct {
	AccountID int64        `json:"account_id"`
	UserID    int64        `json:"user_id"`
	Record    LedgerRecord `json:"record"`
}

// Type implements Event.
func (LedgerRecordCommitted) Type() string { return "LedgerRecordCommitted" }
