package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Indie-Creator-Community/reward-system/service"
)

func TestMessageForError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"invalid amount", service.ErrInvalidAmount, "The amount must be a positive number of tokens."},
		{"wrapped insufficient balance", fmt.Errorf("have 5, need 10: %w", service.ErrInsufficientBalance), "You don't have enough tokens for that."},
		{"self transfer", service.ErrSelfTransfer, "You cannot send tokens to yourself."},
		{"duplicate transfer", service.ErrDuplicateTransfer, "That payment was already processed."},
		{"unavailable", service.ErrUnavailable, "The token service is temporarily unavailable. Please try again shortly."},
		{"unknown error is not leaked", errors.New("pq: connection refused at 10.0.0.5"), "Something went wrong. Please try again."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MessageForError(tt.err))
		})
	}
}
