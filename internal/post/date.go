package post

import (
	"regexp"
	"strings"
	"time"
)

// canonicalDate is the layout every post date is normalized to.
const canonicalDate = "2006-01-02"

// dateLayouts are tried in order. Day/month wins over month/day when both parse.
var dateLayouts = []string{
	"2006-1-2",
	"2/1/2006",
	"1/2/2006",
	"2006-1-2 15:04:05",
	"2/1/2006 15:04:05",
}

var leadingISODate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// ParseDate normalizes value to YYYY-MM-DD.
// Values matching none of the known layouts keep their first ten characters
// if they start with an ISO date, and otherwise fall back to now's date.
func ParseDate(value string, now time.Time) string {
	value = strings.TrimSpace(value)

	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.Format(canonicalDate)
		}
	}

	if leadingISODate.MatchString(value) {
		return value[:len(canonicalDate)]
	}
	return now.Format(canonicalDate)
}
