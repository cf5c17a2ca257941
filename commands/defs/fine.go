package defs

import "github.com/bwmarrin/discordgo"

var minFineAmount = 1.0

var Fine = &discordgo.ApplicationCommand{
	Name:        "fine",
	Description: "Create a traffic violation record",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "Who are you going to fine?",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "reason",
			Description: "What's the reason for the fine?",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "city",
			Description: "Fined in which map?",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "vehicle",
			Description: "What's the plate of the car?",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "amount",
			Description: "Fine amount",
			Required:    true,
			MinValue:    &minFineAmount,
		},
	},
}
