// Package temporal reconstructs transaction instants from the date and time
// cells of a statement row.
package temporal

import (
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/cleared-dev/statements/internal/model"
)

const (
	secondsPerDay = 86400
	// maxSerial is 9999-12-31, the last day a spreadsheet serial can express.
	maxSerial = 2958465
	minYear   = 1899
	maxYear   = 9999

	placeholderBaseHour = 9
	placeholderSpread   = 9
)

var (
	dmyDateTime = regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\.(\d{4}),?\s*(\d{1,2}):(\d{2})(?::(\d{2}))?$`)
	ymdDateTime = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})(?:T|\s*)(\d{1,2}):(\d{2})(?::(\d{2}))?$`)
	dmyDate     = regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\.(\d{4})$`)
	ymdDate     = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
)

// Reconstruct turns a date cell and an optional time cell into an instant
// in loc. rowIndex is only used to synthesize a placeholder time for
// untimed string dates. The second result is false when no interpretation
// of the date cell succeeds.
func Reconstruct(date, clock model.Cell, rowIndex int, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}
	var t time.Time
	ok := false
	switch date.Kind {
	case model.CellTime:
		t, ok = fromNative(date.Time, clock, loc), true
	case model.CellNumber:
		t, ok = fromSerial(date.Number, clock, loc)
	case model.CellString:
		t, ok = fromString(strings.TrimSpace(date.Text), clock, rowIndex, loc)
	}
	if !ok || !inSerialRange(t) {
		return time.Time{}, false
	}
	return t, true
}

// inSerialRange limits dates to what a spreadsheet serial can express, so a
// stray year such as 0001 cannot stretch the period over millennia.
func inSerialRange(t time.Time) bool {
	return t.Year() >= minYear && t.Year() <= maxYear
}

// fromNative keeps the value's wall clock but places it in loc. A midnight
// value is treated as a date-only placeholder when a time cell is present.
func fromNative(t time.Time, clock model.Cell, loc *time.Location) time.Time {
	y, m, d := t.Date()
	h, mi, s := t.Clock()
	if h == 0 && mi == 0 && s == 0 && t.Nanosecond() == 0 && !clock.IsEmpty() {
		if c, ok := ParseClock(clock); ok {
			return at(y, m, d, c, loc)
		}
	}
	return time.Date(y, m, d, h, mi, s, t.Nanosecond(), loc)
}

// fromSerial reads a spreadsheet day count from 1899-12-30. The fractional
// part is the time of day unless a time cell overrides it.
func fromSerial(f float64, clock model.Cell, loc *time.Location) (time.Time, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f > maxSerial+1 {
		return time.Time{}, false
	}
	days := math.Floor(f)
	secs := int(math.Round((f - days) * secondsPerDay))
	if c, ok := ParseClock(clock); ok {
		secs = c.Hour*3600 + c.Minute*60 + c.Second
	}
	return time.Date(1899, time.December, 30+int(days), 0, 0, secs, 0, loc), true
}

func fromString(s string, clock model.Cell, rowIndex int, loc *time.Location) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	if m := dmyDateTime.FindStringSubmatch(s); m != nil {
		return civil(atoi(m[3]), atoi(m[2]), atoi(m[1]), Clock{atoi(m[4]), atoi(m[5]), atoi(m[6])}, loc)
	}
	if m := ymdDateTime.FindStringSubmatch(s); m != nil {
		return civil(atoi(m[1]), atoi(m[2]), atoi(m[3]), Clock{atoi(m[4]), atoi(m[5]), atoi(m[6])}, loc)
	}

	var y, mo, d int
	matched := false
	if m := dmyDate.FindStringSubmatch(s); m != nil {
		y, mo, d, matched = atoi(m[3]), atoi(m[2]), atoi(m[1]), true
	} else if m := ymdDate.FindStringSubmatch(s); m != nil {
		y, mo, d, matched = atoi(m[1]), atoi(m[2]), atoi(m[3]), true
	}
	if matched {
		c, ok := ParseClock(clock)
		if !ok {
			c = Placeholder(rowIndex)
		}
		return civil(y, mo, d, c, loc)
	}

	t, err := dateparse.ParseIn(s, loc)
	if err != nil {
		return time.Time{}, false
	}
	return fromNative(t.In(loc), clock, loc), true
}

// Placeholder is the synthetic time given to an untimed row: a whole hour
// between 09:00 and 17:00 chosen by row index, so same-day rows keep a
// stable order across runs.
func Placeholder(rowIndex int) Clock {
	off := rowIndex % placeholderSpread
	if off < 0 {
		off += placeholderSpread
	}
	return Clock{Hour: placeholderBaseHour + off}
}

// civil builds a date from calendar parts, rejecting impossible dates
// such as 31.02.2025 rather than letting time.Date roll them over.
func civil(y, m, d int, c Clock, loc *time.Location) (time.Time, bool) {
	if m < 1 || m > 12 || d < 1 || d > 31 || !c.valid() {
		return time.Time{}, false
	}
	t := at(y, time.Month(m), d, c, loc)
	if t.Day() != d || int(t.Month()) != m {
		return time.Time{}, false
	}
	return t, true
}

func at(y int, m time.Month, d int, c Clock, loc *time.Location) time.Time {
	return time.Date(y, m, d, c.Hour, c.Minute, c.Second, 0, loc)
}
