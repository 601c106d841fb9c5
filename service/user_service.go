package service

import (
	"context"
	"fmt"

	"github.com/Indie-Creator-Community/reward-system/events"
	"github.com/Indie-Creator-Community/reward-system/models"
)

// userService implements the UserService interface
type userService struct {
	uowFactory UnitOfWorkFactory
}

// NewUserService creates a new user service
func NewUserService(uowFactory UnitOfWorkFactory) UserService {
	return &userService{
		uowFactory: uowFactory,
	}
}

// Create inserts a new user. Coins defaults to 0 unless explicitly given.
// A colliding email, discordId or githubId surfaces as ErrDuplicateIdentity.
func (s *userService) Create(ctx context.Context, params models.CreateUserParams) (*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback() // No-op if already committed

	user, err := uow.UserRepository().Create(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if user.Coins > 0 {
		entry := &models.CoinLedgerEntry{
			UserID:      user.ID,
			CoinsBefore: 0,
			CoinsAfter:  user.Coins,
			Change:      user.Coins,
			EntryType:   models.LedgerEntryInitial,
			Metadata: map[string]any{
				"name": user.Name,
			},
		}
		if err := uow.CoinLedgerRepository().Record(ctx, entry); err != nil {
			return nil, fmt.Errorf("failed to record initial coins: %w", err)
		}
	}

	uow.EventBus().Publish(events.UserCreatedEvent{
		UserID:       user.ID,
		Name:         user.Name,
		InitialCoins: user.Coins,
	})

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return user, nil
}

// GetByDiscordID returns the user for a Discord ID, or nil when absent
func (s *userService) GetByDiscordID(ctx context.Context, discordID string) (*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	return uow.UserRepository().GetByDiscordID(ctx, discordID)
}

// GetByEmail returns the user for an email, or nil when absent
func (s *userService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	return uow.UserRepository().GetByEmail(ctx, email)
}

// GetByGithubID returns the user for a GitHub ID, or nil when absent
func (s *userService) GetByGithubID(ctx context.Context, githubID string) (*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	return uow.UserRepository().GetByGithubID(ctx, githubID)
}

// GetByAccount resolves a user through an identity-provider account link
func (s *userService) GetByAccount(ctx context.Context, provider, providerAccountID string) (*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	return uow.AccountRepository().GetUserByProviderAccount(ctx, provider, providerAccountID)
}

// GetAll returns all users
func (s *userService) GetAll(ctx context.Context) ([]*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	return uow.UserRepository().GetAll(ctx)
}
