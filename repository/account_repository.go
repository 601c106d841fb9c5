package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/Indie-Creator-Community/reward-system/database"
	"github.com/Indie-Creator-Community/reward-system/models"
)

// AccountRepository implements the service.AccountRepository interface.
// Account links are owned by the identity-provider integration; this
// repository only reads them.
type AccountRepository struct {
	q queryable
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *database.DB) *AccountRepository {
	return &AccountRepository{q: db.Pool}
}

func newAccountRepositoryWithTx(tx queryable) *AccountRepository {
	return &AccountRepository{q: tx}
}

// GetUserByProviderAccount resolves the user bound to a
// (provider, providerAccountId) pair. Returns nil when no link exists.
func (r *AccountRepository) GetUserByProviderAccount(ctx context.Context, provider, providerAccountID string) (*models.User, error) {
	query := `
		SELECT` + userColumns + `
		FROM users
		WHERE id = (
			SELECT user_id FROM accounts
			WHERE provider = $1 AND provider_account_id = $2
		)`

	user, err := scanUser(r.q.QueryRow(ctx, query, provider, providerAccountID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, classify(err, "failed to get user by provider account")
	}

	return user, nil
}
