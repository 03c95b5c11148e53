// ABOUTME: Time parsing utilities for flexible date/time parsing
// ABOUTME: Handles the assorted publish date formats search providers return

package time

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Common formats tried before falling back to dateparse
var timeFormats = []string{
	time.RFC3339,
	time.RFC3339Nano,
	time.RFC1123,
	time.RFC1123Z,
	time.RFC822,
	time.RFC822Z,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"Mon, 2 Jan 2006 15:04:05 -0700",
}

// Parse attempts to parse a time string using the known formats first and
// dateparse second. Values without a zone are read as UTC.
func Parse(timeStr string) (time.Time, bool) {
	timeStr = strings.TrimSpace(timeStr)
	if timeStr == "" {
		return time.Time{}, false
	}

	for _, format := range timeFormats {
		if t, err := time.Parse(format, timeStr); err == nil {
			return t, true
		}
	}

	if t, err := dateparse.ParseIn(timeStr, time.UTC); err == nil {
		return t, true
	}

	return time.Time{}, false
}
