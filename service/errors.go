package service

import (
	"errors"
)

// Closed set of errors surfaced by ledger operations. The repository layer
// classifies persistence failures onto this set exactly once; callers switch
// on these with errors.Is and never inspect driver errors directly.
var (
	// ErrInvalidAmount rejects non-positive coin amounts before any
	// persistence access.
	ErrInvalidAmount = errors.New("amount must be a positive integer")

	// ErrInsufficientBalance rejects a transfer the sender cannot fund.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrSelfTransfer rejects a transfer where sender and receiver are the
	// same identity.
	ErrSelfTransfer = errors.New("cannot transfer coins to yourself")

	// ErrDuplicateIdentity maps unique-constraint violations on email,
	// discord_id or github_id.
	ErrDuplicateIdentity = errors.New("a user with that identity already exists")

	// ErrDuplicateTransfer maps a dedup-key replay of a transfer.
	ErrDuplicateTransfer = errors.New("transfer with this dedup key was already applied")

	// ErrUserNotFound is returned when an operation requires an existing user.
	ErrUserNotFound = errors.New("user not found")

	// ErrUnavailable maps transient persistence failures (timeouts,
	// connection loss). Safe for the caller to retry, except transfers
	// without a dedup key, which may double-apply.
	ErrUnavailable = errors.New("persistence temporarily unavailable")
)
