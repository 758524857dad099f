package aggregate

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/statements/internal/model"
)

// TotalsOf sums credits and debits over transactions rather than daily
// buckets so rounding happens once.
func TotalsOf(txns []model.Transaction) model.Totals {
	credits, debits := decimal.Zero, decimal.Zero
	for _, t := range txns {
		credits = credits.Add(t.Credit)
		debits = debits.Add(t.Debit)
	}
	d := debits.Round(2)
	return model.Totals{
		Credits:  credits.Round(2),
		Debits:   d,
		Net:      credits.Sub(debits).Round(2),
		Expenses: d,
		Spending: d,
	}
}
