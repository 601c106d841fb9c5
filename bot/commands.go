package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

var commands = []*discordgo.ApplicationCommand{
	{
		Name:        "send-coins",
		Description: "Grant Indie Tokens to a member (admins only)",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "Member receiving the tokens",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "amount",
				Description: "Number of tokens to grant",
				Required:    true,
				MinValue:    &minAmount,
			},
		},
	},
	{
		Name:        "pay-coins",
		Description: "Pay Indie Tokens from your balance to another member",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "Member receiving the tokens",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "amount",
				Description: "Number of tokens to pay",
				Required:    true,
				MinValue:    &minAmount,
			},
		},
	},
	{
		Name:        "coins",
		Description: "Check your Indie Token balance",
	},
}

var minAmount = float64(1)

func (b *Bot) registerCommands() error {
	appID := b.session.State.User.ID
	for _, cmd := range commands {
		created, err := b.session.ApplicationCommandCreate(appID, b.config.GuildID, cmd)
		if err != nil {
			return fmt.Errorf("failed to register command %s: %w", cmd.Name, err)
		}
		log.WithField("command", created.Name).Info("Registered slash command")
	}
	return nil
}
