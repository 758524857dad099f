// Package engine normalizes statement rows into a transaction history with
// daily and cumulative series. It performs no I/O and keeps no state, so
// statements can be normalized concurrently.
package engine

import (
	"fmt"
	"time"

	"github.com/cleared-dev/statements/internal/aggregate"
	"github.com/cleared-dev/statements/internal/assemble"
	"github.com/cleared-dev/statements/internal/model"
	"github.com/cleared-dev/statements/internal/profile"
)

// Options controls one normalization run.
type Options struct {
	// Location is the institution's timezone. Nil means UTC.
	Location *time.Location
	// From and To optionally restrict transactions to a YYYY-MM-DD window.
	From string
	To   string
}

// Validate checks the window bounds.
func (o Options) Validate() error {
	for _, d := range []string{o.From, o.To} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(model.DateFormat, d); err != nil {
			return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", d)
		}
	}
	if o.From != "" && o.To != "" && o.From > o.To {
		return fmt.Errorf("window start %s is after end %s", o.From, o.To)
	}
	return nil
}

// Normalize runs the full pipeline over rows and reports how long it took.
func Normalize(rows []model.RawRow, p profile.Profile, opts Options) (model.Result, time.Duration) {
	start := time.Now()
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	txns, skipped := assemble.Transactions(rows, p, loc)
	txns = window(txns, opts.From, opts.To)

	period := aggregate.PeriodOf(txns)
	res := model.Result{
		Transactions: txns,
		Period:       period,
		DailyBuckets: aggregate.DailyBuckets(period, txns, loc),
		Timeline:     aggregate.Timeline(txns),
		DailyCloses:  aggregate.DailyCloses(period, txns, loc),
		Totals:       aggregate.TotalsOf(txns),
		RowsRead:     len(rows),
		RowsSkipped:  skipped,
	}
	return res, time.Since(start)
}

func window(txns []model.Transaction, from, to string) []model.Transaction {
	if from == "" && to == "" {
		return txns
	}
	kept := make([]model.Transaction, 0, len(txns))
	for _, t := range txns {
		if from != "" && t.Date < from {
			continue
		}
		if to != "" && t.Date > to {
			continue
		}
		kept = append(kept, t)
	}
	return kept
}
