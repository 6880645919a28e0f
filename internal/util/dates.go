package util

import (
	"errors"
	"strings"
	"time"
)

// ParseDateRange turns optional start/end strings into query bounds.
// Accepts RFC3339 timestamps or plain YYYY-MM-DD dates; a date-only end is
// widened by one day so the whole end date stays inclusive.
func ParseDateRange(startStr, endStr *string) (start time.Time, hasStart bool, endExclusive time.Time, hasEnd bool, err error) {
	parse := func(s string) (time.Time, bool, bool, error) {
		s = strings.TrimSpace(s)
		if s == "" {
			return time.Time{}, false, false, nil
		}
		if t, e := time.Parse(time.RFC3339, s); e == nil {
			return t, true, false, nil
		}
		if t, e := time.Parse("2006-01-02", s); e == nil {
			return t, true, true, nil
		}
		return time.Time{}, false, false, errors.New("invalid date format (use YYYY-MM-DD or RFC3339)")
	}

	var (
		rawEnd      time.Time
		endDateOnly bool
	)

	if startStr != nil {
		t, ok, _, e := parse(*startStr)
		if e != nil {
			return time.Time{}, false, time.Time{}, false, e
		}
		if ok {
			start = t
			hasStart = true
		}
	}

	if endStr != nil {
		t, ok, dateOnly, e := parse(*endStr)
		if e != nil {
			return time.Time{}, false, time.Time{}, false, e
		}
		if ok {
			rawEnd = t
			endDateOnly = dateOnly
			hasEnd = true
		}
	}

	if hasStart && hasEnd && rawEnd.Before(start) {
		start, rawEnd = rawEnd, start
	}

	if hasEnd {
		endExclusive = rawEnd
		if endDateOnly {
			endExclusive = rawEnd.AddDate(0, 0, 1)
		}
	}

	return start, hasStart, endExclusive, hasEnd, nil
}
