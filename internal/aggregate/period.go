// Package aggregate derives the period, daily series, running balances and
// totals of a normalized transaction set.
package aggregate

import (
	"time"

	"github.com/cleared-dev/statements/internal/model"
)

// PeriodOf returns the first and last calendar day of txns.
func PeriodOf(txns []model.Transaction) model.Period {
	if len(txns) == 0 {
		return model.Period{}
	}
	from, to := txns[0].Date, txns[0].Date
	for _, t := range txns[1:] {
		if t.Date < from {
			from = t.Date
		}
		if t.Date > to {
			to = t.Date
		}
	}
	return model.Period{From: &from, To: &to}
}

// Days lists every calendar day of p, inclusive. An empty or malformed
// period has no days.
func Days(p model.Period) []string {
	if p.IsEmpty() {
		return nil
	}
	from, err := time.Parse(model.DateFormat, *p.From)
	if err != nil {
		return nil
	}
	to, err := time.Parse(model.DateFormat, *p.To)
	if err != nil {
		return nil
	}

	var days []string
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(model.DateFormat))
	}
	return days
}

// endOfDay is 23:59:59.999 of the calendar day in loc.
func endOfDay(day string, loc *time.Location) (time.Time, error) {
	d, err := time.Parse(model.DateFormat, day)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, int(999*time.Millisecond), loc), nil
}
