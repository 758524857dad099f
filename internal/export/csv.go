// Package export writes normalized statements as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cleared-dev/statements/internal/model"
)

// TransactionsHeader is the CSV header for transaction exports.
const TransactionsHeader = "ts,date,description,amount,credit,debit,direction"

// DailyHeader is the CSV header for daily series exports.
const DailyHeader = "date,credit,debit,net,cumulative_close"

const (
	colTS = iota
	colDate
	colDesc
	colAmount
	colCredit
	colDebit
	colDirection
	numTxnFields
)

// WriteTransactions writes transactions (including header).
func WriteTransactions(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(TransactionsHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, t := range txns {
		if err := cw.Write(MarshalTransaction(t)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalTransaction converts a Transaction to a CSV row.
func MarshalTransaction(t model.Transaction) []string {
	row := make([]string, numTxnFields)
	row[colTS] = t.TS.Format(time.RFC3339)
	row[colDate] = t.Date
	row[colDesc] = t.Description
	row[colAmount] = t.Amount.StringFixed(2)
	row[colCredit] = t.Credit.StringFixed(2)
	row[colDebit] = t.Debit.StringFixed(2)
	row[colDirection] = string(t.Direction)
	return row
}

// WriteDaily writes one row per day joining buckets with their closing
// balance. Both slices must cover the same days in the same order.
func WriteDaily(w io.Writer, buckets []model.DailyBucket, closes []model.DailyClose) error {
	if len(buckets) != len(closes) {
		return fmt.Errorf("daily series mismatch: %d buckets, %d closes", len(buckets), len(closes))
	}

	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(DailyHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, b := range buckets {
		if closes[i].Date != b.Date {
			return fmt.Errorf("row %d: bucket %s does not match close %s", i+2, b.Date, closes[i].Date)
		}
		row := []string{
			b.Date,
			b.Credit.StringFixed(2),
			b.Debit.StringFixed(2),
			b.Net.StringFixed(2),
			closes[i].CumulativeClose.StringFixed(2),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
