package model

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Money goes over the wire as JSON numbers, not strings, wherever these
	// types are encoded.
	decimal.MarshalJSONWithoutQuotes = true
}

// Period is the calendar-day range covered by a transaction set.
// Both ends are nil when no transactions survived.
type Period struct {
	From *string `json:"from"`
	To   *string `json:"to"`
}

// IsEmpty reports whether the period has no days.
func (p Period) IsEmpty() bool { return p.From == nil || p.To == nil }

// DailyBucket aggregates one calendar day. Amount mirrors Debit for
// consumers that read it as "spending".
type DailyBucket struct {
	Date   string          `json:"date"`
	Credit decimal.Decimal `json:"credit"`
	Debit  decimal.Decimal `json:"debit"`
	Net    decimal.Decimal `json:"net"`
	Amount decimal.Decimal `json:"amount"`
}

// CumulativePoint is the running balance right after one transaction.
type CumulativePoint struct {
	TS         time.Time       `json:"ts"`
	Cumulative decimal.Decimal `json:"cumulative"`
}

// DailyClose is the running balance at 23:59:59.999 of a calendar day.
type DailyClose struct {
	Date            string          `json:"date"`
	CumulativeClose decimal.Decimal `json:"cumulativeClose"`
}

// Totals sums the whole transaction set. Expenses and Spending both equal Debits.
type Totals struct {
	Credits  decimal.Decimal `json:"credits"`
	Debits   decimal.Decimal `json:"debits"`
	Net      decimal.Decimal `json:"net"`
	Expenses decimal.Decimal `json:"expenses"`
	Spending decimal.Decimal `json:"spending"`
}

// Result is everything derived from one statement.
type Result struct {
	Transactions []Transaction     `json:"transactions"`
	Period       Period            `json:"period"`
	DailyBuckets []DailyBucket     `json:"dailyBuckets"`
	Timeline     []CumulativePoint `json:"timeline"`
	DailyCloses  []DailyClose      `json:"dailyCloses"`
	Totals       Totals            `json:"totals"`
	RowsRead     int               `json:"rowsRead"`
	RowsSkipped  int               `json:"rowsSkipped"`
}
