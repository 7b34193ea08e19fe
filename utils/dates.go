package utils

import (
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var dateLayouts = []string{
	DateLayout,
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"02/01/2006",
}

// ParseDate accepts a plain date or an ISO timestamp and returns the calendar
// date at UTC midnight.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return TruncateToDate(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}

// TruncateToDate giữ lại phần ngày, bỏ phần giờ
func TruncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CalendarDayDifference returns the number of calendar days from `from` to `to`,
// ignoring time of day. It is negative when `to` is before `from`.
func CalendarDayDifference(to, from time.Time) int {
	a := TruncateToDate(to)
	b := TruncateToDate(from)
	return int(a.Sub(b).Hours() / 24)
}
