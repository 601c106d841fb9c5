package models

import (
	"time"
)

// LedgerEntryType categorizes a coin balance change.
type LedgerEntryType string

const (
	LedgerEntryInitial     LedgerEntryType = "initial"
	LedgerEntryGrant       LedgerEntryType = "grant"
	LedgerEntryTransferIn  LedgerEntryType = "transfer_in"
	LedgerEntryTransferOut LedgerEntryType = "transfer_out"
)

// CoinLedgerEntry is an append-only audit record of a single coin balance
// change. DedupKey is set only on outgoing transfer rows when the caller
// supplied an idempotency token; the unique constraint on it rejects replays.
type CoinLedgerEntry struct {
	ID          int64           `db:"id"`
	UserID      string          `db:"user_id"`
	CoinsBefore int64           `db:"coins_before"`
	CoinsAfter  int64           `db:"coins_after"`
	Change      int64           `db:"change_amount"`
	EntryType   LedgerEntryType `db:"entry_type"`
	Metadata    map[string]any  `db:"metadata"`
	DedupKey    *string         `db:"dedup_key"`
	CreatedAt   time.Time       `db:"created_at"`
}
