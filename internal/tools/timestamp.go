package tools

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// ISO8601Millis mirrors the millisecond precision UTC rendering browsers use.
const ISO8601Millis = "2006-01-02T15:04:05.000Z07:00"

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	time.RFC1123,
	time.RFC1123Z,
}

// TimestampConversion is one instant rendered in every supported form.
type TimestampConversion struct {
	Unix      int64
	UnixMilli int64
	ISO8601   string
	UTC       string
	Local     string
	Zone      string
	Relative  string
}

// ParseTimestamp interprets input as epoch seconds (up to 12 digits), epoch
// milliseconds (13 digits) or a date string, and renders it relative to now.
// Dates without an explicit offset are read in loc.
func ParseTimestamp(input string, now time.Time, loc *time.Location) (TimestampConversion, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := parseInstant(strings.TrimSpace(input), loc)
	if err != nil {
		return TimestampConversion{}, err
	}
	return ConvertTime(t, now, loc), nil
}

// ConvertTime renders t in every supported form.
func ConvertTime(t, now time.Time, loc *time.Location) TimestampConversion {
	if loc == nil {
		loc = time.UTC
	}
	return TimestampConversion{
		Unix:      t.Unix(),
		UnixMilli: t.UnixMilli(),
		ISO8601:   t.UTC().Format(ISO8601Millis),
		UTC:       t.UTC().Format(time.RFC1123),
		Local:     t.In(loc).Format(time.RFC1123),
		Zone:      loc.String(),
		Relative:  humanize.RelTime(t, now, "ago", "from now"),
	}
}

func parseInstant(input string, loc *time.Location) (time.Time, error) {
	if input == "" {
		return time.Time{}, fmt.Errorf("%w: empty input", ErrInvalidTimestamp)
	}

	if digits := strings.TrimPrefix(input, "-"); isDigits(digits) {
		n, err := strconv.ParseInt(input, 10, 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidTimestamp, err)
		}
		switch {
		case len(digits) == 13:
			return time.UnixMilli(n).UTC(), nil
		case len(digits) <= 12:
			return time.Unix(n, 0).UTC(), nil
		default:
			return time.Time{}, fmt.Errorf("%w: %d digits is neither seconds nor milliseconds", ErrInvalidTimestamp, len(digits))
		}
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, input, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unrecognised date %q", ErrInvalidTimestamp, input)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
