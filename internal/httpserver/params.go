package httpserver

import (
	"errors"
	"fmt"
	"time"
)

var errInvalidLimit = errors.New("limit must be a positive integer")

func parseTime(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", raw)
}
