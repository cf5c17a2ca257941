package fine

import (
	"regexp"
	"strconv"
)

// ResolveChannelName returns base if no channel in existing is named base or base-<n>,
// otherwise base-<m+1> where m is the largest suffix in use and a bare base counts as 1.
func ResolveChannelName(base string, existing []string) string {
	suffix := regexp.MustCompile(`^` + regexp.QuoteMeta(base) + `-(\d+)$`)

	highest := 0
	for _, name := range existing {
		if name == base {
			if highest < 1 {
				highest = 1
			}
			continue
		}
		m := suffix.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			// overflowing suffix; not a name we could have produced
			continue
		}
		if n > highest {
			highest = n
		}
	}

	if highest == 0 {
		return base
	}
	return base + "-" + strconv.Itoa(highest+1)
}
