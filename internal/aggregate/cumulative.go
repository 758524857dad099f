package aggregate

import (
	"cmp"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/statements/internal/model"
)

// Chronological returns a copy of txns sorted by timestamp. Equal
// timestamps keep source row order.
func Chronological(txns []model.Transaction) []model.Transaction {
	sorted := slices.Clone(txns)
	slices.SortStableFunc(sorted, func(a, b model.Transaction) int {
		if c := a.TS.Compare(b.TS); c != 0 {
			return c
		}
		return cmp.Compare(a.Row, b.Row)
	})
	return sorted
}

// Timeline emits the running balance after each transaction in
// chronological order, starting from zero.
func Timeline(txns []model.Transaction) []model.CumulativePoint {
	sorted := Chronological(txns)
	points := make([]model.CumulativePoint, len(sorted))
	running := decimal.Zero
	for i, t := range sorted {
		running = running.Add(t.Amount)
		points[i] = model.CumulativePoint{TS: t.TS, Cumulative: running.Round(2)}
	}
	return points
}

// DailyCloses evaluates the running balance at the end of every day of p
// in a single forward sweep over the chronologically sorted transactions.
func DailyCloses(p model.Period, txns []model.Transaction, loc *time.Location) []model.DailyClose {
	if loc == nil {
		loc = time.UTC
	}
	days := Days(p)
	closes := make([]model.DailyClose, 0, len(days))
	sorted := Chronological(txns)

	running := decimal.Zero
	next := 0
	for _, day := range days {
		end, err := endOfDay(day, loc)
		if err != nil {
			continue
		}
		for next < len(sorted) && !sorted[next].TS.After(end) {
			running = running.Add(sorted[next].Amount)
			next++
		}
		closes = append(closes, model.DailyClose{Date: day, CumulativeClose: running.Round(2)})
	}
	return closes
}
