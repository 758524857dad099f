// Package assemble turns resolved statement rows into canonical transactions.
package assemble

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/statements/internal/amount"
	"github.com/cleared-dev/statements/internal/model"
	"github.com/cleared-dev/statements/internal/profile"
	"github.com/cleared-dev/statements/internal/temporal"
)

// Transactions converts rows into transactions in row order. Rows whose
// date cannot be reconstructed, or that move no money, are dropped; the
// second result counts them.
func Transactions(rows []model.RawRow, p profile.Profile, loc *time.Location) ([]model.Transaction, int) {
	txns := make([]model.Transaction, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		txn, ok := Row(row, p, loc)
		if !ok {
			skipped++
			continue
		}
		txns = append(txns, txn)
	}
	return txns, skipped
}

// Row converts a single row. The second result is false when the row
// must be skipped.
func Row(row model.RawRow, p profile.Profile, loc *time.Location) (model.Transaction, bool) {
	if loc == nil {
		loc = time.UTC
	}

	dateCell, _ := profile.Resolve(row, p.Columns.Date)
	timeCell, _ := profile.Resolve(row, p.Columns.Time)
	ts, ok := temporal.Reconstruct(dateCell, timeCell, row.Index, loc)
	if !ok {
		return model.Transaction{}, false
	}

	incomeCell, _ := profile.Resolve(row, p.Columns.Income)
	expenseCell, _ := profile.Resolve(row, p.Columns.Expense)
	income := amount.OrZero(incomeCell)
	expense := amount.OrZero(expenseCell)
	if !income.IsPositive() && !expense.IsPositive() {
		return model.Transaction{}, false
	}

	// A negative magnitude moves money the other way, so it lands on the
	// opposite side and amount stays income - expense.
	amt := income.Sub(expense)
	credit := decimal.Max(income, decimal.Zero).Add(decimal.Max(expense.Neg(), decimal.Zero))
	debit := decimal.Max(expense, decimal.Zero).Add(decimal.Max(income.Neg(), decimal.Zero))
	dir := model.DirectionCredit
	if amt.IsNegative() {
		dir = model.DirectionDebit
	}

	descCell, _ := profile.Resolve(row, p.Columns.Description)

	return model.Transaction{
		TS:          ts,
		Date:        ts.Format(model.DateFormat),
		Description: cleanDescription(descCell.String()),
		Amount:      amt,
		Credit:      credit,
		Debit:       debit,
		Direction:   dir,
		Row:         row.Index,
	}, true
}

// cleanDescription collapses doubled backslashes left by some exporters'
// escaping and trims surrounding whitespace.
func cleanDescription(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, `\\`, `\`))
}
