package domain

import "errors"

var (
	// ErrInvalidCardNumber is returned when no card exists for the given card number.
	ErrInvalidCardNumber = errors.New("invalid card number")

	// ErrIncorrectPin is returned when the supplied PIN does not match the card's stored hash.
	ErrIncorrectPin = errors.New("incorrect pin")

	// ErrInvalidSessionKey is returned when a session token is missing, expired, or does not
	// match the user's current session.
	ErrInvalidSessionKey = errors.New("invalid session key")

	// ErrInvalidAmount is returned when an operation amount fails validation
	// (negative deposit, non-positive withdrawal).
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidAction is returned when an action literal is neither deposit nor withdrawal.
	ErrInvalidAction = errors.New("invalid action")

	// ErrNegativeAccountBalance is returned when a withdrawal would drive the balance below zero.
	ErrNegativeAccountBalance = errors.New("not enough account balance")

	// ErrAccountNotFound is returned when an account does not exist or does not belong to the user.
	ErrAccountNotFound = errors.New("account not found")

	// ErrHistoryIntegrity is returned when persisting a ledger record collides with an
	// existing (account_id, record_index) pair. It signals the caller to reload and retry.
	ErrHistoryIntegrity = errors.New("account history integrity violation")
)
