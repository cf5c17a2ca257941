package config

import (
	"errors"
	"fine-bot/model"
	"fine-bot/utils"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultConfigFile is the JSON file read when CONFIG_FILE is unset.
const DefaultConfigFile = "config.json"

// envBindings maps config keys to the environment variables that override them.
var envBindings = map[string]string{
	"token":             "BOT_TOKEN",
	"appId":             "APP_ID",
	"guildId":           "GUILD_ID",
	"copRoleId":         "COP_ROLE_ID",
	"staffRoleId":       "STAFF_ROLE_ID",
	"logChannelId":      "LOG_CHANNEL_ID",
	"finesFile":         "FINES_FILE",
	"keepAliveAddr":     "KEEP_ALIVE_ADDR",
	"closeDelay":        "CLOSE_DELAY",
	"timezone":          "TIMEZONE",
	"embedColor":        "EMBED_COLOR",
	"payCommand":        "PAY_COMMAND",
	"fineRatePerMinute": "FINE_RATE_PER_MINUTE",
}

// Load reads the configuration from .env, the JSON config file and environment variables,
// in increasing order of precedence.
func Load() (*model.Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: .env file not found, relying on environment variables")
	}

	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = DefaultConfigFile
	}
	return LoadFile(path)
}

// LoadFile builds the configuration from the JSON file at path (optional) and the environment.
func LoadFile(path string) (*model.Config, error) {
	v := viper.New()
	v.SetDefault("finesFile", "./data/fines.json")
	v.SetDefault("keepAliveAddr", ":3000")
	v.SetDefault("closeDelay", "5s")
	v.SetDefault("timezone", "UTC")
	v.SetDefault("embedColor", "#95A5A6")
	v.SetDefault("payCommand", "!pay")
	v.SetDefault("fineRatePerMinute", 0)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s to %s: %w", key, env, err)
		}
	}

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	} else if os.IsNotExist(err) {
		log.Printf("Warning: Config file not found at %s, using environment only.", path)
	} else {
		return nil, fmt.Errorf("checking config file %s: %w", path, err)
	}

	closeDelay, err := utils.ParseDuration(v.GetString("closeDelay"))
	if err != nil {
		return nil, fmt.Errorf("invalid closeDelay %q: %w", v.GetString("closeDelay"), err)
	}
	if closeDelay < 0 {
		return nil, fmt.Errorf("closeDelay must not be negative, got %s", closeDelay)
	}

	location, err := time.LoadLocation(v.GetString("timezone"))
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", v.GetString("timezone"), err)
	}

	cfg := &model.Config{
		BotToken:          strings.TrimSpace(v.GetString("token")),
		AppID:             v.GetString("appId"),
		GuildID:           v.GetString("guildId"),
		CopRoleID:         v.GetString("copRoleId"),
		StaffRoleID:       v.GetString("staffRoleId"),
		LogChannelID:      v.GetString("logChannelId"),
		FinesFile:         v.GetString("finesFile"),
		KeepAliveAddr:     v.GetString("keepAliveAddr"),
		CloseDelay:        closeDelay,
		Location:          location,
		EmbedColor:        utils.ParseHexColor(v.GetString("embedColor")),
		PayCommand:        v.GetString("payCommand"),
		FineRatePerMinute: v.GetFloat64("fineRatePerMinute"),
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	if cfg.LogChannelID == "" {
		log.Println("Warning: LOG_CHANNEL_ID not set, staff log mirroring will be disabled")
	}
	return cfg, nil
}

func validate(cfg *model.Config) error {
	var missing []string
	if cfg.BotToken == "" {
		missing = append(missing, "BOT_TOKEN")
	}
	if cfg.GuildID == "" {
		missing = append(missing, "GUILD_ID")
	}
	if cfg.CopRoleID == "" {
		missing = append(missing, "COP_ROLE_ID")
	}
	if cfg.StaffRoleID == "" {
		missing = append(missing, "STAFF_ROLE_ID")
	}
	if len(missing) > 0 {
		return errors.New("missing required configuration: " + strings.Join(missing, ", "))
	}
	if cfg.FinesFile == "" {
		return errors.New("finesFile must not be empty")
	}
	return nil
}
