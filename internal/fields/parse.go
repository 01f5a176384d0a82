// Package fields holds the pure coercion helpers that turn raw scraped
// strings into typed values. Everything here is deterministic and safe to
// call on arbitrary page text.
package fields

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var numberPattern = regexp.MustCompile(`\d+(\.\d+)?`)

// Number extracts the first numeric run from a string like "42 m²" or
// "1,234.5 sqm". Thousands separators are stripped first. Returns 0 when
// no digits are present.
func Number(s string) float64 {
	match := numberPattern.FindString(strings.ReplaceAll(s, ",", ""))
	if match == "" {
		return 0
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return v
}

// Int extracts the first numeric run and truncates it to an integer.
func Int(s string) int {
	return int(Number(s))
}

// FirstToken returns the first whitespace-delimited token of s, or "" when
// s is blank. Lease durations arrive as strings like "25 years remaining"
// where only the leading token carries the value.
func FirstToken(s string) string {
	tokens := strings.Fields(s)
	if len(tokens) == 0 {
		return ""
	}
	return tokens[0]
}

// Digits strips everything but ASCII digits. Used for displayed prices
// like "Rp 4.500.000.000".
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Printable removes non-printable characters that break JSON and
// spreadsheet cells, keeping whitespace.
func Printable(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)
}
