package utils

import (
	"log"
	"strconv"
	"strings"
)

// DefaultEmbedColor is the grey used for case notices.
const DefaultEmbedColor = 0x95A5A6

// ParseHexColor parses a hex color string (like "#95A5A6") into an integer for Discord embeds.
// Returns DefaultEmbedColor if parsing fails.
func ParseHexColor(hexColor string) int {
	if hexColor == "" {
		return DefaultEmbedColor
	}

	hexColor = strings.TrimPrefix(hexColor, "#")

	colorInt, err := strconv.ParseInt(hexColor, 16, 64)
	if err != nil || colorInt < 0 || colorInt > 0xFFFFFF {
		log.Printf("Failed to parse hex color '%s': %v", hexColor, err)
		return DefaultEmbedColor
	}

	return int(colorInt)
}
