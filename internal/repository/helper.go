package repository

import (
	"fmt"
	"time"
)

// storedDateLayouts are the forms a DATE column comes back in: the stored text,
// or an RFC3339 string when the driver has already parsed it into a time.Time.
var storedDateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
}

// parseStoredDate parses a DATE column value as a UTC date.
func parseStoredDate(str string) (time.Time, error) {
	for _, layout := range storedDateLayouts {
		if t, err := time.Parse(layout, str); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse stored date %q", str)
}
