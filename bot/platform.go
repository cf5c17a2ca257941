package bot

import (
	"fine-bot/model"
	"fine-bot/utils"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

var _ model.Platform = (*DiscordPlatform)(nil)

// DiscordPlatform implements the case workflow capabilities on a discordgo session.
type DiscordPlatform struct {
	session *discordgo.Session
}

func NewDiscordPlatform(s *discordgo.Session) *DiscordPlatform {
	return &DiscordPlatform{session: s}
}

func (p *DiscordPlatform) HasRole(guildID, userID, roleID string) (bool, error) {
	member, err := p.session.GuildMember(guildID, userID)
	if err != nil {
		return false, fmt.Errorf("fetching member %s: %w", userID, err)
	}
	return utils.HasRole(member.Roles, roleID), nil
}

func (p *DiscordPlatform) ChannelNames(guildID string) ([]string, error) {
	channels, err := p.session.GuildChannels(guildID)
	if err != nil {
		return nil, fmt.Errorf("fetching channels for guild %s: %w", guildID, err)
	}
	names := make([]string, 0, len(channels))
	for _, c := range channels {
		names = append(names, c.Name)
	}
	return names, nil
}

func (p *DiscordPlatform) CreatePrivateChannel(guildID, name string, overwrites []*discordgo.PermissionOverwrite) (*discordgo.Channel, error) {
	return p.session.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
		Name:                 name,
		Type:                 discordgo.ChannelTypeGuildText,
		PermissionOverwrites: overwrites,
	})
}

func (p *DiscordPlatform) DeleteChannel(channelID string) error {
	_, err := p.session.ChannelDelete(channelID)
	return err
}

func (p *DiscordPlatform) SendMessage(channelID string, msg *discordgo.MessageSend) (*discordgo.Message, error) {
	return p.session.ChannelMessageSendComplex(channelID, msg)
}

func (p *DiscordPlatform) Defer(i *discordgo.Interaction) error {
	return utils.DeferResponse(p.session, i, true)
}

func (p *DiscordPlatform) Edit(i *discordgo.Interaction, content string) error {
	return utils.EditResponse(p.session, i, content)
}

func (p *DiscordPlatform) RespondEphemeral(i *discordgo.Interaction, content string) error {
	return utils.RespondEphemeral(p.session, i, content)
}
