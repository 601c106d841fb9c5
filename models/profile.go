package models

import (
	"fmt"
	"strconv"
	"strings"
)

const discordCDNBase = "https://cdn.discordapp.com"

// DiscordProfile describes a Discord account as supplied by a bot command or
// API call. AvatarHash is empty when the account uses a default avatar.
type DiscordProfile struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	AvatarHash    string `json:"avatar"`
	Discriminator string `json:"discriminator"`
}

// ThumbnailURL resolves the display-image URL for the profile. Accounts
// without a custom avatar get one of the five default avatars, selected by
// discriminator mod 5. Animated avatar hashes (prefixed "a_") resolve to a
// gif, everything else to a png.
func (p DiscordProfile) ThumbnailURL() string {
	if p.AvatarHash == "" {
		index := 0
		if d, err := strconv.Atoi(p.Discriminator); err == nil {
			index = d % 5
		}
		return fmt.Sprintf("%s/embed/avatars/%d.png", discordCDNBase, index)
	}

	ext := "png"
	if strings.HasPrefix(p.AvatarHash, "a_") {
		ext = "gif"
	}
	return fmt.Sprintf("%s/avatars/%s/%s.%s", discordCDNBase, p.ID, p.AvatarHash, ext)
}

// GithubProfile describes a GitHub account as supplied by the API. The
// AvatarURL is stored verbatim as the user thumbnail.
type GithubProfile struct {
	ID        string `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatarUrl"`
}
