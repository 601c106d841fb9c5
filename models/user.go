package models

import (
	"time"
)

// User represents a community member with a coins balance.
// The optional identifier fields (Email, DiscordID, GithubID) are unique when
// present; NULL values never collide.
type User struct {
	ID                   string    `db:"id" json:"id"`
	Name                 string    `db:"name" json:"name"`
	Email                *string   `db:"email" json:"email,omitempty"`
	DiscordID            *string   `db:"discord_id" json:"discordId,omitempty"`
	DiscordUserName      *string   `db:"discord_username" json:"discordUserName,omitempty"`
	DiscordDiscriminator *string   `db:"discord_discriminator" json:"discordDiscriminator,omitempty"`
	GithubID             *string   `db:"github_id" json:"githubId,omitempty"`
	GithubUserName       *string   `db:"github_username" json:"githubUserName,omitempty"`
	Thumbnail            string    `db:"thumbnail" json:"thumbnail"`
	Coins                int64     `db:"coins" json:"coins"`
	CreatedAt            time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt            time.Time `db:"updated_at" json:"updatedAt"`
}

// CreateUserParams holds the fields accepted when provisioning a user
// explicitly. Coins defaults to 0 when nil.
type CreateUserParams struct {
	Name                 string
	Email                *string
	DiscordID            *string
	DiscordUserName      *string
	DiscordDiscriminator *string
	GithubID             *string
	GithubUserName       *string
	Thumbnail            string
	Coins                *int64
}
