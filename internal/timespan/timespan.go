// Package timespan renders backend TimeSpan strings ("d.hh:mm:ss.fffffff")
// as human readable phrases.
package timespan

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// InvalidFormat is returned by Format when the input is not a TimeSpan.
const InvalidFormat = "Invalid TimeSpan format"

// ErrInvalidFormat is returned by Parse for input matching neither encoding.
var ErrInvalidFormat = errors.New("invalid timespan format")

var (
	withDays    = regexp.MustCompile(`^(\d+)\.([01]\d|2[0-3]):([0-5]\d):([0-5]\d)(\.\d+)?$`)
	withoutDays = regexp.MustCompile(`^([01]?\d|2[0-3]):([0-5]\d):([0-5]\d)(\.\d+)?$`)
)

// Span holds the decoded components of a TimeSpan. Days is kept as a
// canonical decimal string so any number of digits is accepted.
type Span struct {
	Days    string
	Hours   int
	Minutes int
	Seconds int
}

// Parse decodes s using the "d.hh:mm:ss" encoding first and falls back to
// "h:mm:ss". The fractional seconds suffix is accepted and discarded.
func Parse(s string) (Span, error) {
	if m := withDays.FindStringSubmatch(s); m != nil {
		return Span{
			Days:    canonical(m[1]),
			Hours:   atoi(m[2]),
			Minutes: atoi(m[3]),
			Seconds: atoi(m[4]),
		}, nil
	}
	if m := withoutDays.FindStringSubmatch(s); m != nil {
		return Span{
			Days:    "0",
			Hours:   atoi(m[1]),
			Minutes: atoi(m[2]),
			Seconds: atoi(m[3]),
		}, nil
	}
	return Span{}, ErrInvalidFormat
}

// Format returns the days, hours and minutes of s joined by ", ", omitting
// zero components. Seconds are never rendered; a span with no days, hours or
// minutes reads "0 seconds". Unparseable input yields InvalidFormat.
func Format(s string) string {
	span, err := Parse(s)
	if err != nil {
		return InvalidFormat
	}
	return span.String()
}

func (s Span) String() string {
	parts := make([]string, 0, 3)
	if s.Days != "0" && s.Days != "" {
		parts = append(parts, phrase(s.Days, "day"))
	}
	if s.Hours != 0 {
		parts = append(parts, phrase(strconv.Itoa(s.Hours), "hour"))
	}
	if s.Minutes != 0 {
		parts = append(parts, phrase(strconv.Itoa(s.Minutes), "minute"))
	}
	if len(parts) == 0 {
		return "0 seconds"
	}
	return strings.Join(parts, ", ")
}

func phrase(value, unit string) string {
	if value == "1" {
		return value + " " + unit
	}
	return value + " " + unit + "s"
}

// canonical strips leading zeros from a digit string.
func canonical(digits string) string {
	trimmed := strings.TrimLeft(digits, "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}

// atoi is only called on regexp-validated one or two digit groups.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
