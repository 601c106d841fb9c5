package sendcoins

import (
	"context"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"github.com/Indie-Creator-Community/reward-system/bot/common"
	"github.com/Indie-Creator-Community/reward-system/models"
)

func (f *Feature) handleSendCoins(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	if i.Member == nil {
		common.RespondWithError(s, i, "This command can only be used in a server.")
		return
	}

	if !f.isAdmin(i.Member) {
		common.RespondWithError(s, i, "Only admins can grant tokens.")
		return
	}

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

	profile := models.DiscordProfile{
		ID:            recipient.ID,
		Username:      recipient.Username,
		AvatarHash:    recipient.Avatar,
		Discriminator: recipient.Discriminator,
	}

	user, err := f.ledgerService.CreditDiscord(ctx, profile, amount)
	if err != nil {
		log.Errorf("Error granting %d tokens to %s: %v", amount, recipient.ID, err)
		common.RespondWithError(s, i, common.MessageForError(err))
		return
	}

	message := common.FormatGrantResult(amount, recipient.ID, user.Coins)
	if err := common.RespondWithSuccess(s, i, message, false); err != nil {
		log.Errorf("Error responding to send-coins command: %v", err)
	}
}

// isAdmin reports whether the invoking member carries the configured
// admin role. An empty configured role denies everyone.
func (f *Feature) isAdmin(member *discordgo.Member) bool {
	if f.adminRoleID == "" {
		return false
	}
	for _, roleID := range member.Roles {
		if roleID == f.adminRoleID {
			return true
		}
	}
	return false
}
