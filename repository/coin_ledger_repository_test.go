package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Indie-Creator-Community/reward-system/models"
	"github.com/Indie-Creator-Community/reward-system/repository/testutil"
	"github.com/Indie-Creator-Community/reward-system/service"
)

func TestCoinLedgerRepository_Record(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	users := NewUserRepository(testDB.DB)
	ledger := NewCoinLedgerRepository(testDB.DB)
	ctx := context.Background()

	user, err := users.Create(ctx, testutil.CreateUserParams("ledgeruser", "500001"))
	require.NoError(t, err)

	t.Run("records entry and fills server fields", func(t *testing.T) {
		entry := testutil.CreateLedgerEntry(user.ID, models.LedgerEntryGrant, 0, 100)

		err := ledger.Record(ctx, entry)
		require.NoError(t, err)

		assert.NotZero(t, entry.ID)
		assert.False(t, entry.CreatedAt.IsZero())
	})

	t.Run("dedup key collision", func(t *testing.T) {
		first := testutil.CreateLedgerEntryWithDedupKey(user.ID, models.LedgerEntryTransferOut, 100, 70, "interaction-42")
		require.NoError(t, ledger.Record(ctx, first))

		replay := testutil.CreateLedgerEntryWithDedupKey(user.ID, models.LedgerEntryTransferOut, 70, 40, "interaction-42")
		err := ledger.Record(ctx, replay)
		require.Error(t, err)
		assert.ErrorIs(t, err, service.ErrDuplicateTransfer)
	})

	t.Run("nil dedup keys never collide", func(t *testing.T) {
		require.NoError(t, ledger.Record(ctx, testutil.CreateLedgerEntry(user.ID, models.LedgerEntryGrant, 40, 50)))
		require.NoError(t, ledger.Record(ctx, testutil.CreateLedgerEntry(user.ID, models.LedgerEntryGrant, 50, 60)))
	})
}

func TestCoinLedgerRepository_GetByUser(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	users := NewUserRepository(testDB.DB)
	ledger := NewCoinLedgerRepository(testDB.DB)
	ctx := context.Background()

	user, err := users.Create(ctx, testutil.CreateUserParams("historyuser", "500002"))
	require.NoError(t, err)
	other, err := users.Create(ctx, testutil.CreateUserParams("otheruser", "500003"))
	require.NoError(t, err)

	require.NoError(t, ledger.Record(ctx, testutil.CreateLedgerEntry(user.ID, models.LedgerEntryInitial, 0, 10)))
	require.NoError(t, ledger.Record(ctx, testutil.CreateLedgerEntry(user.ID, models.LedgerEntryGrant, 10, 30)))
	require.NoError(t, ledger.Record(ctx, testutil.CreateLedgerEntry(other.ID, models.LedgerEntryGrant, 0, 5)))

	t.Run("returns newest first, scoped to user", func(t *testing.T) {
		entries, err := ledger.GetByUser(ctx, user.ID, 10)
		require.NoError(t, err)
		require.Len(t, entries, 2)

		assert.Equal(t, models.LedgerEntryGrant, entries[0].EntryType)
		assert.Equal(t, models.LedgerEntryInitial, entries[1].EntryType)
		assert.Equal(t, int64(20), entries[0].Change)
	})

	t.Run("respects limit", func(t *testing.T) {
		entries, err := ledger.GetByUser(ctx, user.ID, 1)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("metadata round-trips", func(t *testing.T) {
		entries, err := ledger.GetByUser(ctx, user.ID, 1)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, true, entries[0].Metadata["test"])
	})
}
