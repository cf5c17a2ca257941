package utils

import (
	"fine-bot/model"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
)

type LogLevel string

const (
	Info  LogLevel = "INFO"
	Warn  LogLevel = "WARN"
	Error LogLevel = "ERROR"
)

func getColor(level LogLevel) int {
	switch level {
	case Info:
		return 3066993 // Green
	case Warn:
		return 15105570 // Orange
	case Error:
		return 15158332 // Red
	default:
		return 3447003 // Blue
	}
}

// BuildLogEmbed renders a staff log entry.
func BuildLogEmbed(level LogLevel, module, operation, extraInfo string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: string(level) + " Log",
		Color: getColor(level),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Module", Value: module, Inline: true},
			{Name: "Operation", Value: operation, Inline: true},
			{Name: "Details", Value: extraInfo},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

func sendLog(sender model.MessageSender, channelID string, level LogLevel, module, operation, extraInfo string) error {
	if channelID == "" {
		return fmt.Errorf("log channel not configured")
	}
	_, err := sender.SendMessage(channelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{BuildLogEmbed(level, module, operation, extraInfo)},
	})
	if err != nil {
		return fmt.Errorf("failed to send log to channel %s: %w", channelID, err)
	}
	return nil
}

func LogInfo(sender model.MessageSender, channelID, module, operation, extraInfo string) error {
	return sendLog(sender, channelID, Info, module, operation, extraInfo)
}

func LogWarn(sender model.MessageSender, channelID, module, operation, extraInfo string) error {
	return sendLog(sender, channelID, Warn, module, operation, extraInfo)
}

func LogError(sender model.MessageSender, channelID, module, operation, extraInfo string) error {
	return sendLog(sender, channelID, Error, module, operation, extraInfo)
}
