package aggregate

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/statements/internal/model"
)

// DailyBuckets sums credits and debits per calendar day of p. Every day in
// p gets a bucket, including days without transactions. The day of a
// transaction is taken from its timestamp in loc.
func DailyBuckets(p model.Period, txns []model.Transaction, loc *time.Location) []model.DailyBucket {
	if loc == nil {
		loc = time.UTC
	}
	days := Days(p)
	if len(days) == 0 {
		return []model.DailyBucket{}
	}

	type sums struct{ credit, debit decimal.Decimal }
	idx := make(map[string]int, len(days))
	acc := make([]sums, len(days))
	for i, d := range days {
		idx[d] = i
	}
	for _, t := range txns {
		i, ok := idx[t.TS.In(loc).Format(model.DateFormat)]
		if !ok {
			continue
		}
		acc[i].credit = acc[i].credit.Add(t.Credit)
		acc[i].debit = acc[i].debit.Add(t.Debit)
	}

	buckets := make([]model.DailyBucket, len(days))
	for i, d := range days {
		debit := acc[i].debit.Round(2)
		buckets[i] = model.DailyBucket{
			Date:   d,
			Credit: acc[i].credit.Round(2),
			Debit:  debit,
			Net:    acc[i].credit.Sub(acc[i].debit).Round(2),
			Amount: debit,
		}
	}
	return buckets
}
