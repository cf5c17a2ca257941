package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDuration reads a delay setting such as CLOSE_DELAY. A bare number is a count of
// seconds, an "Nd" value is whole days, and anything else goes to time.ParseDuration.
func ParseDuration(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	if days, ok := strings.CutSuffix(value, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, fmt.Errorf("duration %q: day count must be a whole number", value)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("duration %q: %w", value, err)
	}
	return d, nil
}
