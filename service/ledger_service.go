package service

import (
	"context"
	"fmt"

	"github.com/Indie-Creator-Community/reward-system/events"
	"github.com/Indie-Creator-Community/reward-system/models"
)

// ledgerService implements the LedgerService interface. All coin state lives
// in the database; the service never caches balances between calls.
type ledgerService struct {
	uowFactory UnitOfWorkFactory
}

// NewLedgerService creates a new ledger service
func NewLedgerService(uowFactory UnitOfWorkFactory) LedgerService {
	return &ledgerService{
		uowFactory: uowFactory,
	}
}

// CreditDiscord grants coins to the Discord identity. Unknown identities are
// created with coins = amount; known ones get an atomic increment.
func (s *ledgerService) CreditDiscord(ctx context.Context, profile models.DiscordProfile, amount int64) (*models.User, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback() // No-op if already committed

	user, err := uow.UserRepository().GetByDiscordID(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve receiver: %w", err)
	}

	if user == nil {
		user, err = createFromDiscordProfile(ctx, uow, profile, amount)
		if err != nil {
			return nil, err
		}

		entry := &models.CoinLedgerEntry{
			UserID:      user.ID,
			CoinsBefore: 0,
			CoinsAfter:  amount,
			Change:      amount,
			EntryType:   models.LedgerEntryInitial,
			Metadata: map[string]any{
				"discord_id": profile.ID,
			},
		}
		if err := uow.CoinLedgerRepository().Record(ctx, entry); err != nil {
			return nil, fmt.Errorf("failed to record initial coins: %w", err)
		}
	} else {
		credited, err := uow.UserRepository().AddCoins(ctx, user.ID, amount)
		if err != nil {
			return nil, fmt.Errorf("failed to credit coins: %w", err)
		}

		entry := &models.CoinLedgerEntry{
			UserID:      user.ID,
			CoinsBefore: user.Coins,
			CoinsAfter:  credited.Coins,
			Change:      amount,
			EntryType:   models.LedgerEntryGrant,
			Metadata: map[string]any{
				"discord_id": profile.ID,
			},
		}
		if err := uow.CoinLedgerRepository().Record(ctx, entry); err != nil {
			return nil, fmt.Errorf("failed to record grant: %w", err)
		}
		user = credited
	}

	uow.EventBus().Publish(events.CoinsCreditedEvent{
		UserID:   user.ID,
		Amount:   amount,
		NewCoins: user.Coins,
	})

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return user, nil
}

// CreditGithub grants coins to the GitHub identity. The profile's avatar URL
// is stored verbatim as the thumbnail.
func (s *ledgerService) CreditGithub(ctx context.Context, profile models.GithubProfile, amount int64) (*models.User, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByGithubID(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve receiver: %w", err)
	}

	if user == nil {
		name := profile.Name
		if name == "" {
			name = profile.Login
		}
		var email *string
		if profile.Email != "" {
			email = &profile.Email
		}
		params := models.CreateUserParams{
			Name:           name,
			Email:          email,
			GithubID:       &profile.ID,
			GithubUserName: &profile.Login,
			Thumbnail:      profile.AvatarURL,
			Coins:          &amount,
		}

		user, err = uow.UserRepository().Create(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}

		entry := &models.CoinLedgerEntry{
			UserID:      user.ID,
			CoinsBefore: 0,
			CoinsAfter:  amount,
			Change:      amount,
			EntryType:   models.LedgerEntryInitial,
			Metadata: map[string]any{
				"github_id": profile.ID,
			},
		}
		if err := uow.CoinLedgerRepository().Record(ctx, entry); err != nil {
			return nil, fmt.Errorf("failed to record initial coins: %w", err)
		}

		uow.EventBus().Publish(events.UserCreatedEvent{
			UserID:       user.ID,
			Name:         user.Name,
			InitialCoins: amount,
		})
	} else {
		credited, err := uow.UserRepository().AddCoins(ctx, user.ID, amount)
		if err != nil {
			return nil, fmt.Errorf("failed to credit coins: %w", err)
		}

		entry := &models.CoinLedgerEntry{
			UserID:      user.ID,
			CoinsBefore: user.Coins,
			CoinsAfter:  credited.Coins,
			Change:      amount,
			EntryType:   models.LedgerEntryGrant,
			Metadata: map[string]any{
				"github_id": profile.ID,
			},
		}
		if err := uow.CoinLedgerRepository().Record(ctx, entry); err != nil {
			return nil, fmt.Errorf("failed to record grant: %w", err)
		}
		user = credited
	}

	uow.EventBus().Publish(events.CoinsCreditedEvent{
		UserID:   user.ID,
		Amount:   amount,
		NewCoins: user.Coins,
	})

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return user, nil
}

// Transfer moves coins from sender to receiver and returns the updated
// receiver. A sender unknown to the system is provisioned with zero coins in
// its own committed transaction before the transfer is rejected as
// insufficient, so first contact always leaves a user row behind.
func (s *ledgerService) Transfer(ctx context.Context, sender, receiver models.DiscordProfile, amount int64, dedupKey string) (*models.User, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if sender.ID == receiver.ID {
		return nil, ErrSelfTransfer
	}

	senderUser, err := s.provisionSender(ctx, sender)
	if err != nil {
		return nil, err
	}

	// Fast-fail on an obviously unfunded transfer. The authoritative check is
	// the conditional decrement below, which re-evaluates at write time.
	if senderUser.Coins < amount {
		return nil, fmt.Errorf("have %d, need %d: %w", senderUser.Coins, amount, ErrInsufficientBalance)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	debited, err := uow.UserRepository().DeductCoins(ctx, senderUser.ID, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to debit sender: %w", err)
	}

	receiverUser, err := uow.UserRepository().GetByDiscordID(ctx, receiver.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve receiver: %w", err)
	}

	var receiverBefore int64
	if receiverUser == nil {
		receiverUser, err = createFromDiscordProfile(ctx, uow, receiver, amount)
		if err != nil {
			return nil, err
		}
	} else {
		receiverBefore = receiverUser.Coins
		receiverUser, err = uow.UserRepository().AddCoins(ctx, receiverUser.ID, amount)
		if err != nil {
			return nil, fmt.Errorf("failed to credit receiver: %w", err)
		}
	}

	var dedup *string
	if dedupKey != "" {
		dedup = &dedupKey
	}

	outEntry := &models.CoinLedgerEntry{
		UserID:      debited.ID,
		CoinsBefore: debited.Coins + amount,
		CoinsAfter:  debited.Coins,
		Change:      -amount,
		EntryType:   models.LedgerEntryTransferOut,
		DedupKey:    dedup,
		Metadata: map[string]any{
			"receiver_id": receiverUser.ID,
		},
	}
	if err := uow.CoinLedgerRepository().Record(ctx, outEntry); err != nil {
		return nil, fmt.Errorf("failed to record debit: %w", err)
	}

	inEntry := &models.CoinLedgerEntry{
		UserID:      receiverUser.ID,
		CoinsBefore: receiverBefore,
		CoinsAfter:  receiverUser.Coins,
		Change:      amount,
		EntryType:   models.LedgerEntryTransferIn,
		Metadata: map[string]any{
			"sender_id": debited.ID,
		},
	}
	if err := uow.CoinLedgerRepository().Record(ctx, inEntry); err != nil {
		return nil, fmt.Errorf("failed to record credit: %w", err)
	}

	uow.EventBus().Publish(events.CoinsTransferredEvent{
		SenderID:   debited.ID,
		ReceiverID: receiverUser.ID,
		Amount:     amount,
	})

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return receiverUser, nil
}

// provisionSender resolves the sender, creating a zero-coin user on first
// contact. Runs in its own transaction so the created row survives a
// subsequently rejected transfer.
func (s *ledgerService) provisionSender(ctx context.Context, profile models.DiscordProfile) (*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByDiscordID(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve sender: %w", err)
	}

	if user == nil {
		user, err = createFromDiscordProfile(ctx, uow, profile, 0)
		if err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return user, nil
}

// createFromDiscordProfile inserts a user for a Discord identity with the
// given starting coins. The caller records whichever ledger entry fits the
// operation (initial grant vs transfer_in).
func createFromDiscordProfile(ctx context.Context, uow UnitOfWork, profile models.DiscordProfile, coins int64) (*models.User, error) {
	params := models.CreateUserParams{
		Name:                 profile.Username,
		DiscordID:            &profile.ID,
		DiscordUserName:      &profile.Username,
		DiscordDiscriminator: &profile.Discriminator,
		Thumbnail:            profile.ThumbnailURL(),
		Coins:                &coins,
	}

	user, err := uow.UserRepository().Create(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	uow.EventBus().Publish(events.UserCreatedEvent{
		UserID:       user.ID,
		Name:         user.Name,
		InitialCoins: coins,
	})

	return user, nil
}
