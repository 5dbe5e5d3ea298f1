package model

import (
	"fmt"
	"time"
)

// Imagery catalogs are not consistent about datetime formatting: quick-search
// results carry RFC3339-ish acquired timestamps while per-image metadata may
// carry a bare acquisition date. Thus, we need lenient "multi-format" parsing
// functionality, implemented here.

// DateOnlyLayout is the format of bare acquisition dates such as date_acquired
const DateOnlyLayout = "2006-01-02"

var acquiredTimeLayouts = []string{
	"2006-01-02T15:04:05.999999999Z",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseAcquiredTime is a drop-in replacement for time.Parse, but matching
// against multiple possible catalog time formats
func ParseAcquiredTime(acquired string) (time.Time, error) {
	for _, layout := range acquiredTimeLayouts {
		if output, err := time.Parse(layout, acquired); err == nil {
			return output, nil
		}
	}
	return time.Time{}, fmt.Errorf("Date could not be parsed by any expected time format: `%s`", acquired)
}
