package sendcoins

import (
	"github.com/bwmarrin/discordgo"

	"github.com/Indie-Creator-Community/reward-system/service"
)

type Feature struct {
	ledgerService service.LedgerService
	adminRoleID   string
}

func New(ledgerService service.LedgerService, adminRoleID string) *Feature {
	return &Feature{
		ledgerService: ledgerService,
		adminRoleID:   adminRoleID,
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleSendCoins(s, i)
}
