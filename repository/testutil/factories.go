package testutil

import (
	"github.com/Indie-Creator-Community/reward-system/models"
)

// CreateUserParams builds creation params for a Discord-linked test user
func CreateUserParams(name, discordID string) models.CreateUserParams {
	return models.CreateUserParams{
		Name:      name,
		DiscordID: &discordID,
		Thumbnail: "https://cdn.discordapp.com/embed/avatars/0.png",
	}
}

// CreateUserParamsWithCoins builds creation params with a starting balance
func CreateUserParamsWithCoins(name, discordID string, coins int64) models.CreateUserParams {
	params := CreateUserParams(name, discordID)
	params.Coins = &coins
	return params
}

// CreateGithubUserParams builds creation params for a GitHub-linked test user
func CreateGithubUserParams(name, githubID string) models.CreateUserParams {
	return models.CreateUserParams{
		Name:      name,
		GithubID:  &githubID,
		Thumbnail: "https://avatars.githubusercontent.com/u/1?v=4",
	}
}

// CreateLedgerEntry builds a ledger entry for a user
func CreateLedgerEntry(userID string, entryType models.LedgerEntryType, before, after int64) *models.CoinLedgerEntry {
	return &models.CoinLedgerEntry{
		UserID:      userID,
		CoinsBefore: before,
		CoinsAfter:  after,
		Change:      after - before,
		EntryType:   entryType,
		Metadata: map[string]any{
			"test": true,
		},
	}
}

// CreateLedgerEntryWithDedupKey builds a ledger entry carrying a dedup key
func CreateLedgerEntryWithDedupKey(userID string, entryType models.LedgerEntryType, before, after int64, dedupKey string) *models.CoinLedgerEntry {
	entry := CreateLedgerEntry(userID, entryType, before, after)
	entry.DedupKey = &dedupKey
	return entry
}
