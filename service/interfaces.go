package service

import (
	"context"

	"github.com/Indie-Creator-Community/reward-system/events"
	"github.com/Indie-Creator-Community/reward-system/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// GetByID retrieves a user by internal ID
	GetByID(ctx context.Context, id string) (*models.User, error)

	// GetByDiscordID retrieves a user by their Discord ID
	GetByDiscordID(ctx context.Context, discordID string) (*models.User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByGithubID retrieves a user by their GitHub ID
	GetByGithubID(ctx context.Context, githubID string) (*models.User, error)

	// Create inserts a new user row
	Create(ctx context.Context, params models.CreateUserParams) (*models.User, error)

	// AddCoins increments a user's coins atomically
	AddCoins(ctx context.Context, id string, amount int64) (*models.User, error)

	// DeductCoins decrements a user's coins atomically, failing with
	// ErrInsufficientBalance when coins < amount at write time
	DeductCoins(ctx context.Context, id string, amount int64) (*models.User, error)

	// GetAll returns all users
	GetAll(ctx context.Context) ([]*models.User, error)
}

// AccountRepository defines read-only access to identity-provider account
// links. The ledger never mutates these rows.
type AccountRepository interface {
	// GetUserByProviderAccount resolves the user bound to a
	// (provider, providerAccountId) pair
	GetUserByProviderAccount(ctx context.Context, provider, providerAccountID string) (*models.User, error)
}

// CoinLedgerRepository defines the interface for the append-only coin audit log
type CoinLedgerRepository interface {
	// Record appends a ledger entry
	Record(ctx context.Context, entry *models.CoinLedgerEntry) error

	// GetByUser returns the most recent entries for a user
	GetByUser(ctx context.Context, userID string, limit int) ([]*models.CoinLedgerEntry, error)
}

// UserService defines the interface for user lookup and provisioning
type UserService interface {
	// Create inserts a new user with coins defaulted to 0
	Create(ctx context.Context, params models.CreateUserParams) (*models.User, error)

	// GetByDiscordID returns the user for a Discord ID, or nil when absent
	GetByDiscordID(ctx context.Context, discordID string) (*models.User, error)

	// GetByEmail returns the user for an email, or nil when absent
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByGithubID returns the user for a GitHub ID, or nil when absent
	GetByGithubID(ctx context.Context, githubID string) (*models.User, error)

	// GetByAccount resolves a user through an identity-provider account link
	GetByAccount(ctx context.Context, provider, providerAccountID string) (*models.User, error)

	// GetAll returns all users
	GetAll(ctx context.Context) ([]*models.User, error)
}

// LedgerService defines the coin credit and transfer operations
type LedgerService interface {
	// CreditDiscord grants coins to the Discord identity, creating the user
	// on first contact
	CreditDiscord(ctx context.Context, profile models.DiscordProfile, amount int64) (*models.User, error)

	// CreditGithub grants coins to the GitHub identity, creating the user
	// on first contact
	CreditGithub(ctx context.Context, profile models.GithubProfile, amount int64) (*models.User, error)

	// Transfer moves coins from sender to receiver. dedupKey is an optional
	// caller-supplied idempotency token; empty string disables deduplication.
	// Returns the updated receiver.
	Transfer(ctx context.Context, sender, receiver models.DiscordProfile, amount int64, dedupKey string) (*models.User, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	UserRepository() UserRepository
	AccountRepository() AccountRepository
	CoinLedgerRepository() CoinLedgerRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
