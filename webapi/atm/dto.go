package atm

import "time"

// SetSessionRequest is the body for POST /session.
type SetSessionRequest struct {
	CardNumber int64  `json:"card_number" validate:"required"`
	Pin        string `json:"pin" validate:"required"`
}

// AccountActionRequest is the body for POST /account/:id.
type AccountActionRequest struct {
	CardNumber int64  `json:"card_number" validate:"required"`
	Action     string `json:"action" validate:"required"`
	Amount     int64  `json:"amount"`
}

// LedgerRecordResponse is the view of a committed ledger record.
type LedgerRecordResponse struct {
	RecordIndex int64      `json:"record_index"`
	Action      string     `json:"action"`
	Balance     int64      `json:"balance"`
	TimeAt      *time.Time `json:"time_at,omitempty"`
}
