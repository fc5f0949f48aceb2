package timezone

import (
	"errors"
	"time"
	// zone database for slim images without /usr/share/zoneinfo
	_ "time/tzdata"
)

const DefaultTimezone = "UTC"

var ErrInvalidTimestamp = errors.New("invalid timestamp")

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return time.UTC
}

func Now() time.Time {
	return time.Now().UTC()
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// localLayouts are accepted when the client omits the offset; they are
// read in the salon's zone.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseTimestamp reads an ISO-8601 timestamp. Values with an offset keep
// it; values without one are interpreted in tz. The result is UTC.
func ParseTimestamp(value, tz string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.UTC(), nil
	}

	loc := Location(tz)
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidTimestamp
}

// DayBounds returns [start, end) of the calendar day date (YYYY-MM-DD)
// in tz, expressed in UTC.
func DayBounds(date, tz string) (time.Time, time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", date, Location(tz))
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidTimestamp
	}
	return day.UTC(), day.AddDate(0, 0, 1).UTC(), nil
}
