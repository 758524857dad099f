package temporal

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/cleared-dev/statements/internal/model"
)

var clockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2}))?$`)

// Clock is a time of day.
type Clock struct {
	Hour, Minute, Second int
}

// String formats the clock as HH:MM:SS.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}

func (c Clock) valid() bool {
	return c.Hour >= 0 && c.Hour < 24 && c.Minute >= 0 && c.Minute < 60 && c.Second >= 0 && c.Second < 60
}

// ParseClock normalizes a separate time cell. Numbers are day fractions
// rounded to the nearest second; strings must look like H:MM or H:MM:SS.
// Native date values contribute their wall clock unless it is midnight.
// Anything else, including an empty cell, is reported as absent.
func ParseClock(c model.Cell) (Clock, bool) {
	switch c.Kind {
	case model.CellNumber:
		return clockFromFraction(c.Number)
	case model.CellString:
		return parseClockString(strings.TrimSpace(c.Text))
	case model.CellTime:
		h, m, s := c.Time.Clock()
		if h == 0 && m == 0 && s == 0 {
			return Clock{}, false
		}
		return Clock{h, m, s}, true
	}
	return Clock{}, false
}

func clockFromFraction(f float64) (Clock, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return Clock{}, false
	}
	_, frac := math.Modf(f)
	secs := int(math.Round(frac * secondsPerDay))
	if secs >= secondsPerDay {
		secs = secondsPerDay - 1
	}
	return Clock{Hour: secs / 3600, Minute: secs % 3600 / 60, Second: secs % 60}, true
}

func parseClockString(s string) (Clock, bool) {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return Clock{}, false
	}
	c := Clock{Hour: atoi(m[1]), Minute: atoi(m[2]), Second: atoi(m[3])}
	if !c.valid() {
		return Clock{}, false
	}
	return c, true
}

func atoi(s string) int {
	if s == "" {
		return 0
	}
	n, _ := strconv.Atoi(s)
	return n
}
