package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/Indie-Creator-Community/reward-system/service"
)

func TestClassify(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		assert.NoError(t, classify(nil, "noop"))
	})

	t.Run("unique violation on identity becomes duplicate identity", func(t *testing.T) {
		err := classify(&pgconn.PgError{Code: "23505", ConstraintName: "users_discord_id_key"}, "create user")
		assert.ErrorIs(t, err, service.ErrDuplicateIdentity)
	})

	t.Run("unique violation on dedup key becomes duplicate transfer", func(t *testing.T) {
		err := classify(&pgconn.PgError{Code: "23505", ConstraintName: "coin_ledger_dedup_key_key"}, "record entry")
		assert.ErrorIs(t, err, service.ErrDuplicateTransfer)
	})

	t.Run("coins check violation becomes insufficient balance", func(t *testing.T) {
		err := classify(&pgconn.PgError{Code: "23514", ConstraintName: "users_coins_check"}, "deduct coins")
		assert.ErrorIs(t, err, service.ErrInsufficientBalance)
	})

	t.Run("connection exception becomes unavailable", func(t *testing.T) {
		err := classify(&pgconn.PgError{Code: "08006"}, "get user")
		assert.ErrorIs(t, err, service.ErrUnavailable)
	})

	t.Run("deadline exceeded becomes unavailable", func(t *testing.T) {
		err := classify(context.DeadlineExceeded, "get user")
		assert.ErrorIs(t, err, service.ErrUnavailable)
	})

	t.Run("unknown errors keep their message", func(t *testing.T) {
		err := classify(errors.New("boom"), "get user")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, service.ErrUnavailable)
		assert.Contains(t, err.Error(), "get user")
		assert.Contains(t, err.Error(), "boom")
	})
}
