package util

import (
	"strconv"
	"strings"
)

// ParseLooseInt parses scraped numerics like "12,345" or "42 000".
// Unparseable input yields nil, never an error.
func ParseLooseInt(v string) *int {
	s := cleanNumeric(v)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	n := int(f)
	return &n
}

// ParseLooseFloat is ParseLooseInt for prices and ratings.
func ParseLooseFloat(v string) *float64 {
	s := cleanNumeric(v)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

func cleanNumeric(v string) string {
	s := strings.TrimSpace(v)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	return s
}
