package repository

import "time"

// BankCard is the persistence model for issued cards.
type BankCard struct {
	ID          int64  `gorm:"primaryKey"`
	UserID      int64  `gorm:"index"`
	CardNumber  int64  `gorm:"uniqueIndex"`
	PinSaltHash string `gorm:"size:128"`
}

// TableName specifies the table name for the BankCard model.
func (BankCard) TableName() string { return "bank_cards" }

// BankAccount is the persistence model for accounts. Balance is not a column:
// it is derived from the account's ledger.
type BankAccount struct {
	ID        int64  `gorm:"primaryKey"`
	UserID    int64  `gorm:"index;uniqueIndex:idx_bank_accounts_user_name"`
	Name      string `gorm:"size:256;uniqueIndex:idx_bank_accounts_user_name"`
	CreatedAt time.Time
}

// TableName specifies the table name for the BankAccount model.
func (BankAccount) TableName() string { return "bank_accounts" }

// AccountHistory is one row of the append-only ledger. The composite unique
// index on (account_id, record_index) is what makes concurrent appends safe.
type AccountHistory struct {
	ID          int64 `gorm:"primaryKey"`
	AccountID   int64 `gorm:"uniqueIndex:idx_account_histories_account_record"`
	RecordIndex int64 `gorm:"uniqueIndex:idx_account_histories_account_record"`
	Balance     int64
	Action      string `gorm:"size:32"`
	CreatedAt   time.Time
}

// TableName specifies the table name for the AccountHistory model.
func (AccountHistory) TableName() string { return "account_histories" }
