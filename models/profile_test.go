package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiscordProfile_ThumbnailURL(t *testing.T) {
	t.Run("custom avatar resolves to png", func(t *testing.T) {
		profile := DiscordProfile{ID: "42", AvatarHash: "abc123", Discriminator: "0001"}
		assert.Equal(t, "https://cdn.discordapp.com/avatars/42/abc123.png", profile.ThumbnailURL())
	})

	t.Run("animated avatar resolves to gif", func(t *testing.T) {
		profile := DiscordProfile{ID: "42", AvatarHash: "a_abc123", Discriminator: "0001"}
		assert.Equal(t, "https://cdn.discordapp.com/avatars/42/a_abc123.gif", profile.ThumbnailURL())
	})

	t.Run("missing avatar uses default index discriminator mod 5", func(t *testing.T) {
		profile := DiscordProfile{ID: "42", Discriminator: "7"}
		assert.Equal(t, "https://cdn.discordapp.com/embed/avatars/2.png", profile.ThumbnailURL())
	})

	t.Run("default index is deterministic", func(t *testing.T) {
		profile := DiscordProfile{ID: "42", Discriminator: "9004"}
		assert.Equal(t, profile.ThumbnailURL(), profile.ThumbnailURL())
		assert.Equal(t, "https://cdn.discordapp.com/embed/avatars/4.png", profile.ThumbnailURL())
	})

	t.Run("non-numeric discriminator falls back to index 0", func(t *testing.T) {
		profile := DiscordProfile{ID: "42", Discriminator: "abc"}
		assert.Equal(t, "https://cdn.discordapp.com/embed/avatars/0.png", profile.ThumbnailURL())
	})
}
