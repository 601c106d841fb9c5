package repository

import (
	"context"
	"fmt"

	"github.com/Indie-Creator-Community/reward-system/database"
	"github.com/Indie-Creator-Community/reward-system/models"
)

// CoinLedgerRepository implements the service.CoinLedgerRepository interface
type CoinLedgerRepository struct {
	q queryable
}

// NewCoinLedgerRepository creates a new coin ledger repository
func NewCoinLedgerRepository(db *database.DB) *CoinLedgerRepository {
	return &CoinLedgerRepository{q: db.Pool}
}

func newCoinLedgerRepositoryWithTx(tx queryable) *CoinLedgerRepository {
	return &CoinLedgerRepository{q: tx}
}

// Record appends a ledger entry. A dedup-key collision surfaces as
// service.ErrDuplicateTransfer and aborts the surrounding transaction.
func (r *CoinLedgerRepository) Record(ctx context.Context, entry *models.CoinLedgerEntry) error {
	query := `
		INSERT INTO coin_ledger (user_id, coins_before, coins_after, change_amount, entry_type, metadata, dedup_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		entry.UserID,
		entry.CoinsBefore,
		entry.CoinsAfter,
		entry.Change,
		entry.EntryType,
		entry.Metadata,
		entry.DedupKey,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return classify(err, "failed to record ledger entry")
	}

	return nil
}

// GetByUser returns the most recent ledger entries for a user
func (r *CoinLedgerRepository) GetByUser(ctx context.Context, userID string, limit int) ([]*models.CoinLedgerEntry, error) {
	query := `
		SELECT id, user_id, coins_before, coins_after, change_amount, entry_type, metadata, dedup_key, created_at
		FROM coin_ledger
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, classify(err, "failed to get ledger entries")
	}
	defer rows.Close()

	var entries []*models.CoinLedgerEntry
	for rows.Next() {
		var entry models.CoinLedgerEntry
		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.CoinsBefore,
			&entry.CoinsAfter,
			&entry.Change,
			&entry.EntryType,
			&entry.Metadata,
			&entry.DedupKey,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, classify(err, "failed to iterate ledger entries")
	}

	return entries, nil
}
