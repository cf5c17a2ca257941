package model

import (
	"github.com/bwmarrin/discordgo"
)

// IdentityResolver answers role membership questions about guild members.
type IdentityResolver interface {
	HasRole(guildID, userID, roleID string) (bool, error)
}

// ChannelFactory creates and removes guild channels.
type ChannelFactory interface {
	ChannelNames(guildID string) ([]string, error)
	CreatePrivateChannel(guildID, name string, overwrites []*discordgo.PermissionOverwrite) (*discordgo.Channel, error)
	DeleteChannel(channelID string) error
}

// MessageSender posts messages into channels.
type MessageSender interface {
	SendMessage(channelID string, msg *discordgo.MessageSend) (*discordgo.Message, error)
}

// InteractionResponder answers slash command and component interactions.
type InteractionResponder interface {
	Defer(i *discordgo.Interaction) error
	Edit(i *discordgo.Interaction, content string) error
	RespondEphemeral(i *discordgo.Interaction, content string) error
}

// Platform bundles every capability the case workflows need.
type Platform interface {
	IdentityResolver
	ChannelFactory
	MessageSender
	InteractionResponder
}
