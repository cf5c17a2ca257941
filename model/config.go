package model

import "time"

// Config holds the process-wide settings loaded once at startup.
// It is never mutated after config.Load returns.
type Config struct {
	BotToken     string
	AppID        string
	GuildID      string
	CopRoleID    string // role required to issue fines
	StaffRoleID  string // role required to close cases
	LogChannelID string

	FinesFile     string
	KeepAliveAddr string
	CloseDelay    time.Duration
	Location      *time.Location
	EmbedColor    int
	PayCommand    string

	// FineRatePerMinute limits how often one officer may issue fines. Zero disables the limit.
	FineRatePerMinute float64
}
