package handlers

import (
	"fine-bot/bot"
	"fine-bot/handlers/fine"
	"log"

	"github.com/bwmarrin/discordgo"
)

type commandHandler = func(s *discordgo.Session, i *discordgo.InteractionCreate)

func Register(b *bot.Bot) {
	svc := fine.NewService(b.GetConfig(), b.Platform, b.Store)
	b.CommandHandlers = commandHandlers(svc)
	addHandlers(b, svc)
}

func commandHandlers(svc *fine.Service) map[string]commandHandler {
	return map[string]commandHandler{
		fine.CommandName: func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			svc.HandleCommand(i)
		},
	}
}

func addHandlers(b *bot.Bot, svc *fine.Service) {
	b.Session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Printf("Logged in as: %v", r.User.Username)
	})
	b.Session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		routeInteraction(s, i, b.CommandHandlers, svc.HandleComponent)
	})
}

// routeInteraction sends slash commands to their handler and Close Case clicks to onClose.
// Anything else is ignored.
func routeInteraction(s *discordgo.Session, i *discordgo.InteractionCreate, handlers map[string]commandHandler, onClose func(*discordgo.InteractionCreate)) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		if h, ok := handlers[i.ApplicationCommandData().Name]; ok {
			h(s, i)
		}
	case discordgo.InteractionMessageComponent:
		if fine.IsCloseCustomID(i.MessageComponentData().CustomID) {
			onClose(i)
		}
	}
}
