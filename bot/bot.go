package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"github.com/Indie-Creator-Community/reward-system/bot/features/balance"
	"github.com/Indie-Creator-Community/reward-system/bot/features/paycoins"
	"github.com/Indie-Creator-Community/reward-system/bot/features/sendcoins"
	"github.com/Indie-Creator-Community/reward-system/service"
)

// Config holds bot configuration
type Config struct {
	Token       string
	GuildID     string
	AdminRoleID string
}

type Bot struct {
	config    Config
	session   *discordgo.Session
	sendCoins *sendcoins.Feature
	payCoins  *paycoins.Feature
	balance   *balance.Feature
}

func New(config Config, userService service.UserService, ledgerService service.LedgerService) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers

	bot := &Bot{
		config:    config,
		session:   dg,
		sendCoins: sendcoins.New(ledgerService, config.AdminRoleID),
		payCoins:  paycoins.New(ledgerService),
		balance:   balance.New(userService),
	}

	// Register slash command handler
	dg.AddHandler(bot.handleCommands)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	return bot, nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name
	log.WithFields(log.Fields{
		"command": name,
		"guild":   i.GuildID,
	}).Debug("Handling slash command")

	switch name {
	case "send-coins":
		b.sendCoins.HandleCommand(s, i)
	case "pay-coins":
		b.payCoins.HandleCommand(s, i)
	case "coins":
		b.balance.HandleCommand(s, i)
	default:
		log.Warnf("Unknown command: %s", name)
	}
}
