package common

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"github.com/Indie-Creator-Community/reward-system/service"
)

// MessageForError translates a service error into a message safe to show
// in Discord. Unrecognized errors get a generic message so internal
// details never reach the channel.
func MessageForError(err error) string {
	switch {
	case errors.Is(err, service.ErrInvalidAmount):
		return "The amount must be a positive number of tokens."
	case errors.Is(err, service.ErrSelfTransfer):
		return "You cannot send tokens to yourself."
	case errors.Is(err, service.ErrInsufficientBalance):
		return "You don't have enough tokens for that."
	case errors.Is(err, service.ErrUserNotFound):
		return "That user doesn't have a token account yet."
	case errors.Is(err, service.ErrDuplicateTransfer):
		return "That payment was already processed."
	case errors.Is(err, service.ErrUnavailable):
		return "The token service is temporarily unavailable. Please try again shortly."
	default:
		return "Something went wrong. Please try again."
	}
}

// RespondWithError sends an ephemeral error message as the interaction response
func RespondWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("❌ %s", message),
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Errorf("Error sending error response: %v", err)
	}
}

// FollowUpWithError sends an error message as a follow-up to a deferred interaction
func FollowUpWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	_, err := s.FollowupMessageCreate(i.Interaction, false, &discordgo.WebhookParams{
		Content: fmt.Sprintf("❌ %s", message),
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	if err != nil {
		log.Errorf("Error sending follow-up error message: %v", err)
	}
}
