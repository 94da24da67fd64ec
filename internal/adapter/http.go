package adapter

import (
	"net/http"
	"strconv"
	"time"
)

// parseRetryAfter turns a Retry-After header into a wait duration. Both the
// delta-seconds and HTTP-date forms are accepted; anything else, or a date in
// the past, yields zero.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds < 0 {
			return 0
		}
		return time.Duration(seconds) * time.Second
	}
	if at, err := http.ParseTime(value); err == nil {
		if d := time.Until(at); d > 0 {
			return d
		}
	}
	return 0
}
