package aggregate

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/statements/internal/model"
)

// ValidationError describes one inconsistency between the series of a Result.
type ValidationError struct {
	Check       string
	Ref         string // date or row the problem was found at
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s [%s]: %s", e.Check, e.Ref, e.Description)
}

// Series are rounded independently, so a close delta may be a cent away
// from the day's rounded net.
var cent = decimal.New(1, -2)

// Validate cross-checks transactions, buckets, closes, timeline and totals.
// A Result produced by the engine yields no errors.
func Validate(res model.Result) []ValidationError {
	var errs []ValidationError

	// Each transaction moves money.
	sum := decimal.Zero
	for _, t := range res.Transactions {
		ref := fmt.Sprintf("row %d", t.Row)
		if t.Credit.IsNegative() || t.Debit.IsNegative() {
			errs = append(errs, ValidationError{"sides", ref, "credit and debit must be non-negative"})
		}
		if !t.Credit.IsPositive() && !t.Debit.IsPositive() {
			errs = append(errs, ValidationError{"sides", ref, "credit or debit must be positive"})
		}
		if !t.Amount.Equal(t.Credit.Sub(t.Debit)) {
			errs = append(errs, ValidationError{"amount", ref, fmt.Sprintf("amount %s != credit - debit", t.Amount)})
		}
		if !res.Period.IsEmpty() && (t.Date < *res.Period.From || t.Date > *res.Period.To) {
			errs = append(errs, ValidationError{"period", ref, fmt.Sprintf("date %s outside period", t.Date)})
		}
		sum = sum.Add(t.Amount)
	}

	// Totals agree with the transactions.
	if !sum.Round(2).Equal(res.Totals.Net) {
		errs = append(errs, ValidationError{"totals", "net",
			fmt.Sprintf("sum of amounts (%s) != net (%s)", sum.StringFixed(2), res.Totals.Net.StringFixed(2))})
	}
	if !res.Totals.Credits.Sub(res.Totals.Debits).Sub(res.Totals.Net).Abs().LessThanOrEqual(cent) {
		errs = append(errs, ValidationError{"totals", "net", "credits - debits != net"})
	}

	// One bucket and one close per day, in the same order.
	days := Days(res.Period)
	if len(res.DailyBuckets) != len(days) || len(res.DailyCloses) != len(days) {
		errs = append(errs, ValidationError{"days", "period",
			fmt.Sprintf("%d days but %d buckets and %d closes", len(days), len(res.DailyBuckets), len(res.DailyCloses))})
		return errs
	}

	prev := decimal.Zero
	for i, day := range days {
		b, c := res.DailyBuckets[i], res.DailyCloses[i]
		if b.Date != day || c.Date != day {
			errs = append(errs, ValidationError{"days", day, fmt.Sprintf("got bucket %s and close %s", b.Date, c.Date)})
			continue
		}
		// Close deltas follow daily nets.
		delta := c.CumulativeClose.Sub(prev)
		if delta.Sub(b.Net).Abs().GreaterThan(cent) {
			errs = append(errs, ValidationError{"closes", day,
				fmt.Sprintf("close moved by %s but net is %s", delta.StringFixed(2), b.Net.StringFixed(2))})
		}
		prev = c.CumulativeClose
	}

	// The timeline is chronological and ends where the closes end.
	for i := 1; i < len(res.Timeline); i++ {
		if res.Timeline[i].TS.Before(res.Timeline[i-1].TS) {
			errs = append(errs, ValidationError{"timeline", res.Timeline[i].TS.Format(model.DateFormat), "timestamps out of order"})
		}
	}
	if n := len(res.Timeline); n > 0 && len(res.DailyCloses) > 0 {
		last := res.DailyCloses[len(res.DailyCloses)-1]
		if !res.Timeline[n-1].Cumulative.Equal(last.CumulativeClose) {
			errs = append(errs, ValidationError{"timeline", last.Date,
				fmt.Sprintf("last point %s != last close %s", res.Timeline[n-1].Cumulative.StringFixed(2), last.CumulativeClose.StringFixed(2))})
		}
	}

	return errs
}
