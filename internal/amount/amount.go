// Package amount parses currency magnitudes written with either decimal convention.
package amount

import (
	"math"
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/statements/internal/model"
)

// commaDecimal matches a trailing comma followed by one or two digits, as in "1.234,56".
var commaDecimal = regexp.MustCompile(`,(\d{1,2})$`)

var currencySymbols = strings.NewReplacer("€", "", "$", "", "£", "", "₽", "", "₸", "")

// Parse converts a raw cell into a magnitude. The second result is false
// when the cell holds nothing that reads as a number.
func Parse(c model.Cell) (decimal.Decimal, bool) {
	switch c.Kind {
	case model.CellNumber:
		if math.IsNaN(c.Number) || math.IsInf(c.Number, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(c.Number), true
	case model.CellString:
		return ParseString(c.Text)
	}
	return decimal.Zero, false
}

// ParseString parses a textual amount. Whitespace of any kind is removed
// first since some exports use it as a thousands separator. A trailing
// comma with one or two digits marks a comma-decimal number whose dots are
// thousands separators; otherwise the dot is the decimal point and commas
// are dropped.
func ParseString(s string) (decimal.Decimal, bool) {
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	s = currencySymbols.Replace(s)
	s = strings.TrimPrefix(s, "+")
	if s == "" {
		return decimal.Zero, false
	}

	if commaDecimal.MatchString(s) {
		s = strings.ReplaceAll(s, ".", "")
		s = commaDecimal.ReplaceAllString(s, ".$1")
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// OrZero returns the parsed magnitude, or zero when the cell is unparseable.
func OrZero(c model.Cell) decimal.Decimal {
	d, _ := Parse(c)
	return d
}
