package paycoins

import (
	"context"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"github.com/Indie-Creator-Community/reward-system/bot/common"
	"github.com/Indie-Creator-Community/reward-system/models"
)

func (f *Feature) handlePayCoins(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	if i.Member == nil {
		common.RespondWithError(s, i, "This command can only be used in a server.")
		return
	}
	sender := i.Member.User

	// Extract command options
	options := i.ApplicationCommandData().Options
	var amount int64
	var recipient *discordgo.User
	for _, opt := range options {
		switch opt.Name {
		case "amount":
			amount = opt.IntValue()
		case "user":
			recipient = opt.UserValue(s)
		}
	}

	if recipient == nil {
		common.RespondWithError(s, i, "Invalid recipient user.")
		return
	}

	if amount <= 0 {
		common.RespondWithError(s, i, "Amount must be positive.")
		return
	}

	if recipient.ID == sender.ID {
		common.RespondWithError(s, i, "You cannot send tokens to yourself.")
		return
	}

	senderProfile := models.DiscordProfile{
		ID:            sender.ID,
		Username:      sender.Username,
		AvatarHash:    sender.Avatar,
		Discriminator: sender.Discriminator,
	}
	receiverProfile := models.DiscordProfile{
		ID:            recipient.ID,
		Username:      recipient.Username,
		AvatarHash:    recipient.Avatar,
		Discriminator: recipient.Discriminator,
	}

	// The interaction ID is unique per invocation, so Discord gateway
	// retries of the same command cannot apply the payment twice.
	_, err := f.ledgerService.Transfer(ctx, senderProfile, receiverProfile, amount, i.ID)
	if err != nil {
		log.Errorf("Error paying %d tokens from %s to %s: %v", amount, sender.ID, recipient.ID, err)
		common.RespondWithError(s, i, common.MessageForError(err))
		return
	}

	message := common.FormatPaymentResult(amount, recipient.ID)
	if err := common.RespondWithSuccess(s, i, message, false); err != nil {
		log.Errorf("Error responding to pay-coins command: %v", err)
	}
}
