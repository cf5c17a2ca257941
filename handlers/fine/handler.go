package fine

import (
	"github.com/bwmarrin/discordgo"
)

// CommandName is the slash command that issues fines.
const CommandName = "fine"

// ParseIssueOptions reads the /fine options from a command interaction. Missing options are
// left empty and rejected later by validation.
func ParseIssueOptions(i *discordgo.InteractionCreate) IssueOptions {
	data := i.ApplicationCommandData()
	optionMap := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(data.Options))
	for _, opt := range data.Options {
		optionMap[opt.Name] = opt
	}

	opts := IssueOptions{Officer: interactionUser(i.Interaction)}

	if opt, ok := optionMap["user"]; ok {
		user := opt.UserValue(nil)
		if data.Resolved != nil {
			if resolved, ok := data.Resolved.Users[user.ID]; ok {
				user = resolved
			}
		}
		opts.FinedUser = identityOf(user)
	}
	if opt, ok := optionMap["reason"]; ok {
		opts.Reason = opt.StringValue()
	}
	if opt, ok := optionMap["city"]; ok {
		opts.City = opt.StringValue()
	}
	if opt, ok := optionMap["vehicle"]; ok {
		opts.Plate = opt.StringValue()
	}
	if opt, ok := optionMap["amount"]; ok {
		opts.Amount = opt.IntValue()
	}
	return opts
}

// HandleCommand answers a /fine invocation.
func (s *Service) HandleCommand(i *discordgo.InteractionCreate) {
	s.Issue(i.Interaction, ParseIssueOptions(i))
}

// HandleComponent answers a Close Case button click.
func (s *Service) HandleComponent(i *discordgo.InteractionCreate) {
	s.Close(i.Interaction, i.MessageComponentData().CustomID)
}
