package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction classifies a transaction as money in or money out.
type Direction string

const (
	DirectionCredit Direction = "credit"
	DirectionDebit  Direction = "debit"
)

// DateFormat is the calendar-day layout used for Transaction.Date and all daily series.
const DateFormat = "2006-01-02"

// Transaction is one normalized statement line.
type Transaction struct {
	TS          time.Time       `json:"ts"`   // in the statement's timezone
	Date        string          `json:"date"` // TS.Format(DateFormat)
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"` // positive = inflow, negative = outflow
	Credit      decimal.Decimal `json:"credit"`
	Debit       decimal.Decimal `json:"debit"`
	Direction   Direction       `json:"direction"`
	Row         int             `json:"-"` // source row index, chronological tiebreaker
}
