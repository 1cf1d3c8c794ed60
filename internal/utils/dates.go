package utils

import (
	"fmt"
	"strings"
	"time"
)

var queryDateLayouts = []string{"2006-01-02", "02-01-2006"}

// ParseQueryDate accepts the two date forms callers of the API use,
// YYYY-MM-DD and DD-MM-YYYY.
func ParseQueryDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range queryDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD or DD-MM-YYYY", raw)
}

// DisplayDate renders a date the way the frontend shows it.
func DisplayDate(t time.Time) string {
	return t.Format("02-01-2006")
}
