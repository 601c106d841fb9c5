package paycoins

import (
	"github.com/bwmarrin/discordgo"

	"github.com/Indie-Creator-Community/reward-system/service"
)

type Feature struct {
	ledgerService service.LedgerService
}

func New(ledgerService service.LedgerService) *Feature {
	return &Feature{
		ledgerService: ledgerService,
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handlePayCoins(s, i)
}
