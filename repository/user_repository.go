package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Indie-Creator-Community/reward-system/database"
	"github.com/Indie-Creator-Community/reward-system/models"
	"github.com/Indie-Creator-Community/reward-system/service"
)

// queryable is satisfied by both *pgxpool.Pool and pgx.Tx so repositories can
// run against the pool directly or inside a unit of work.
type queryable interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// UserRepository implements the service.UserRepository interface
type UserRepository struct {
	q queryable
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{q: db.Pool}
}

// newUserRepositoryWithTx creates a new user repository bound to a transaction
func newUserRepositoryWithTx(tx queryable) *UserRepository {
	return &UserRepository{q: tx}
}

const userColumns = `
	id, name, email,
	discord_id, discord_username, discord_discriminator,
	github_id, github_username,
	thumbnail, coins, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.DiscordID,
		&user.DiscordUserName,
		&user.DiscordDiscriminator,
		&user.GithubID,
		&user.GithubUserName,
		&user.Thumbnail,
		&user.Coins,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) getByColumn(ctx context.Context, column, value string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE %s = $1`, userColumns, column)

	user, err := scanUser(r.q.QueryRow(ctx, query, value))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, classify(err, fmt.Sprintf("failed to get user by %s", column))
	}

	return user, nil
}

// GetByID retrieves a user by internal ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getByColumn(ctx, "id", id)
}

// GetByDiscordID retrieves a user by their Discord ID
func (r *UserRepository) GetByDiscordID(ctx context.Context, discordID string) (*models.User, error) {
	return r.getByColumn(ctx, "discord_id", discordID)
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getByColumn(ctx, "email", email)
}

// GetByGithubID retrieves a user by their GitHub ID
func (r *UserRepository) GetByGithubID(ctx context.Context, githubID string) (*models.User, error) {
	return r.getByColumn(ctx, "github_id", githubID)
}

// Create inserts a new user row. Coins defaults to 0 when params.Coins is nil.
func (r *UserRepository) Create(ctx context.Context, params models.CreateUserParams) (*models.User, error) {
	query := `
		INSERT INTO users (
			id, name, email,
			discord_id, discord_username, discord_discriminator,
			github_id, github_username,
			thumbnail, coins
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING` + userColumns

	var coins int64
	if params.Coins != nil {
		coins = *params.Coins
	}

	user, err := scanUser(r.q.QueryRow(ctx, query,
		uuid.NewString(),
		params.Name,
		params.Email,
		params.DiscordID,
		params.DiscordUserName,
		params.DiscordDiscriminator,
		params.GithubID,
		params.GithubUserName,
		params.Thumbnail,
		coins,
	))
	if err != nil {
		return nil, classify(err, "failed to create user")
	}

	return user, nil
}

// AddCoins increments a user's coins atomically
func (r *UserRepository) AddCoins(ctx context.Context, id string, amount int64) (*models.User, error) {
	if amount <= 0 {
		return nil, service.ErrInvalidAmount
	}

	query := `
		UPDATE users
		SET coins = coins + $1, updated_at = NOW()
		WHERE id = $2
		RETURNING` + userColumns

	user, err := scanUser(r.q.QueryRow(ctx, query, amount, id))
	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("failed to add coins: %w", service.ErrUserNotFound)
	}
	if err != nil {
		return nil, classify(err, "failed to add coins")
	}

	return user, nil
}

// DeductCoins decrements a user's coins atomically. The write itself is
// conditioned on coins >= amount, so two concurrent deducts cannot both pass
// the balance check against the same stale value.
func (r *UserRepository) DeductCoins(ctx context.Context, id string, amount int64) (*models.User, error) {
	if amount <= 0 {
		return nil, service.ErrInvalidAmount
	}

	query := `
		UPDATE users
		SET coins = coins - $1, updated_at = NOW()
		WHERE id = $2 AND coins >= $1
		RETURNING` + userColumns

	user, err := scanUser(r.q.QueryRow(ctx, query, amount, id))
	if err == pgx.ErrNoRows {
		// Zero rows: either the user is gone or the balance no longer covers
		// the amount at write time.
		existing, getErr := r.GetByID(ctx, id)
		if getErr != nil {
			return nil, getErr
		}
		if existing == nil {
			return nil, fmt.Errorf("failed to deduct coins: %w", service.ErrUserNotFound)
		}
		return nil, fmt.Errorf("have %d, need %d: %w", existing.Coins, amount, service.ErrInsufficientBalance)
	}
	if err != nil {
		return nil, classify(err, "failed to deduct coins")
	}

	return user, nil
}

// GetAll returns all users, newest first
func (r *UserRepository) GetAll(ctx context.Context) ([]*models.User, error) {
	query := `SELECT` + userColumns + ` FROM users ORDER BY created_at DESC`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, classify(err, "failed to get all users")
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, classify(err, "failed to iterate users")
	}

	return users, nil
}
