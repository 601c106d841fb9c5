package models

import (
	"time"
)

// Account links a (provider, providerAccountId) pair from the identity
// provider integration to a User. The ledger never mutates these rows; they
// exist to short-circuit identity resolution during sign-in.
type Account struct {
	ID                string    `db:"id" json:"id"`
	UserID            string    `db:"user_id" json:"userId"`
	Provider          string    `db:"provider" json:"provider"`
	ProviderAccountID string    `db:"provider_account_id" json:"providerAccountId"`
	CreatedAt         time.Time `db:"created_at" json:"createdAt"`
}
