package bot

import (
	"fine-bot/commands"
	"fine-bot/model"
	"fine-bot/utils/database/fines"
	"log"

	"github.com/bwmarrin/discordgo"
)

type Bot struct {
	Session            *discordgo.Session
	Platform           *DiscordPlatform
	Store              *fines.Store
	RegisteredCommands []*discordgo.ApplicationCommand
	CommandHandlers    map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate)
	config             *model.Config
}

func (b *Bot) GetConfig() *model.Config {
	return b.config
}

func New(cfg *model.Config, store *fines.Store) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, err
	}
	dg.Identify.Intents = discordgo.IntentsGuilds

	return &Bot{
		Session:         dg,
		Platform:        NewDiscordPlatform(dg),
		Store:           store,
		CommandHandlers: make(map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate)),
		config:          cfg,
	}, nil
}

func (b *Bot) Close() {
	log.Println("Gracefully shutting down.")
	if err := b.Session.Close(); err != nil {
		log.Printf("Error closing session: %v", err)
	}
}

// appID prefers the configured application ID and falls back to the logged-in user.
func (b *Bot) appID() string {
	if b.config.AppID != "" {
		return b.config.AppID
	}
	if b.Session.State != nil && b.Session.State.User != nil {
		return b.Session.State.User.ID
	}
	return ""
}

// RefreshCommands overwrites the guild's slash commands with the current definitions.
// Failures are logged; the bot keeps running with whatever is registered.
func (b *Bot) RefreshCommands() {
	guildID := b.config.GuildID
	cmds := commands.GenerateCommands()
	log.Printf("Registering %d commands for guild %s...", len(cmds), guildID)

	registered, err := b.Session.ApplicationCommandBulkOverwrite(b.appID(), guildID, cmds)
	if err != nil {
		log.Printf("cannot update commands for guild '%s': %v", guildID, err)
		return
	}
	b.RegisteredCommands = registered
	log.Printf("%d slash commands registered for guild %s", len(b.RegisteredCommands), guildID)
}
