package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/Indie-Creator-Community/reward-system/api"
	"github.com/Indie-Creator-Community/reward-system/bot"
	"github.com/Indie-Creator-Community/reward-system/config"
	"github.com/Indie-Creator-Community/reward-system/database"
	"github.com/Indie-Creator-Community/reward-system/events"
	"github.com/Indie-Creator-Community/reward-system/repository"
	"github.com/Indie-Creator-Community/reward-system/service"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Info("Starting reward system...")

	// Load configuration
	cfg := config.Get()

	// Initialize database connection
	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("Database connection established")

	// Initialize event bus and audit subscribers
	eventBus := events.NewBus()
	subscribeAuditLog(eventBus)

	// Initialize unit of work factory
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	// Initialize services
	userService := service.NewUserService(uowFactory)
	ledgerService := service.NewLedgerService(uowFactory)

	// Start the HTTP API
	server := api.NewServer(cfg.APIAddr, userService, ledgerService)
	serverErr := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.APIAddr).Info("Starting HTTP API")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Initialize Discord bot
	log.Info("Initializing Discord bot...")
	botConfig := bot.Config{
		Token:       cfg.DiscordToken,
		GuildID:     cfg.DiscordGuildID,
		AdminRoleID: cfg.AdminRoleID,
	}
	discordBot, err := bot.New(botConfig, userService, ledgerService)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Info("Discord bot initialized")

	// Wait for shutdown or a fatal server error
	log.Infof("Reward system is running in %s mode...", cfg.Environment)
	select {
	case <-ctx.Done():
	case err := <-serverErr:
		log.Errorf("HTTP API failed: %v", err)
	}

	// Cleanup resources
	log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Error shutting down HTTP API: %v", err)
	}

	if err := discordBot.Close(); err != nil {
		log.Errorf("Error closing Discord bot: %v", err)
	}

	log.Info("Closing database connection...")
	db.Close()

	log.Info("Shutdown completed")
	return nil
}

// subscribeAuditLog wires structured audit logging for every ledger mutation.
func subscribeAuditLog(bus *events.Bus) {
	bus.Subscribe(events.EventTypeUserCreated, func(ctx context.Context, event events.Event) {
		e := event.(events.UserCreatedEvent)
		log.WithFields(log.Fields{
			"user_id":       e.UserID,
			"name":          e.Name,
			"initial_coins": e.InitialCoins,
		}).Info("User created")
	})

	bus.Subscribe(events.EventTypeCoinsCredited, func(ctx context.Context, event events.Event) {
		e := event.(events.CoinsCreditedEvent)
		log.WithFields(log.Fields{
			"user_id":   e.UserID,
			"amount":    e.Amount,
			"new_coins": e.NewCoins,
		}).Info("Coins credited")
	})

	bus.Subscribe(events.EventTypeCoinsTransferred, func(ctx context.Context, event events.Event) {
		e := event.(events.CoinsTransferredEvent)
		log.WithFields(log.Fields{
			"sender_id":   e.SenderID,
			"receiver_id": e.ReceiverID,
			"amount":      e.Amount,
		}).Info("Coins transferred")
	})
}
