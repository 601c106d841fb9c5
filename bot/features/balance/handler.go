package balance

import (
	"context"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"github.com/Indie-Creator-Community/reward-system/bot/common"
)

func (f *Feature) handleBalance(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	if i.Member == nil {
		common.RespondWithError(s, i, "This command can only be used in a server.")
		return
	}

	user, err := f.userService.GetByDiscordID(ctx, i.Member.User.ID)
	if err != nil {
		log.Errorf("Error fetching balance for %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, common.MessageForError(err))
		return
	}

	// Members with no account yet simply have nothing to spend.
	var coins int64
	if user != nil {
		coins = user.Coins
	}

	if err := common.RespondWithSuccess(s, i, common.FormatBalanceResult(coins), true); err != nil {
		log.Errorf("Error responding to coins command: %v", err)
	}
}
