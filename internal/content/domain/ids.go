package domain

import (
	"strconv"
	"time"
)

// NewLocalID returns the timestamp-derived id used for records that are only
// kept in memory (milliseconds since the epoch, as a decimal string).
func NewLocalID(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 10)
}
