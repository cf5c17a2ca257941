package bot

import (
	"context"
	"fine-bot/utils"
	"fmt"
	"log"
)

// Run opens the gateway connection, registers commands and blocks until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	if err := b.Session.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}
	defer b.Close()

	b.RefreshCommands()

	log.Println("Bot is now running. Press CTRL-C to exit.")
	if channelID := b.config.LogChannelID; channelID != "" {
		if err := utils.LogInfo(b.Platform, channelID, "System", "Startup", "Bot has started successfully."); err != nil {
			log.Printf("Failed to send startup log: %v", err)
		}
	}

	<-ctx.Done()
	return nil
}
