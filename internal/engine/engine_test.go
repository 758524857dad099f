package engine

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/statements/internal/model"
	"github.com/cleared-dev/statements/internal/profile"
)

func standard(t *testing.T) profile.Profile {
	t.Helper()
	p, ok := profile.DefaultRegistry().Get(profile.Standard)
	require.True(t, ok)
	return p
}

func stmtRow(idx int, date, income, expense string) model.RawRow {
	return model.RawRow{Index: idx, Fields: []model.Field{
		{Header: "Date", Value: model.StringCell(date)},
		{Header: "Income", Value: model.StringCell(income)},
		{Header: "Expense", Value: model.StringCell(expense)},
	}}
}

func scenario() []model.RawRow {
	return []model.RawRow{
		stmtRow(0, "01.01.2025", "500", ""),
		stmtRow(1, "01.01.2025", "", "200"),
		stmtRow(2, "03.01.2025", "", "50"),
	}
}

func TestNormalize_EndToEnd(t *testing.T) {
	res, elapsed := Normalize(scenario(), standard(t), Options{Location: time.UTC})
	assert.GreaterOrEqual(t, elapsed, time.Duration(0))

	require.Len(t, res.Transactions, 3)
	require.False(t, res.Period.IsEmpty())
	assert.Equal(t, "2025-01-01", *res.Period.From)
	assert.Equal(t, "2025-01-03", *res.Period.To)

	require.Len(t, res.DailyBuckets, 3)
	assert.Equal(t, "2025-01-02", res.DailyBuckets[1].Date)
	assert.True(t, res.DailyBuckets[1].Net.IsZero())

	assert.Equal(t, "500.00", res.Totals.Credits.StringFixed(2))
	assert.Equal(t, "250.00", res.Totals.Debits.StringFixed(2))
	assert.Equal(t, "250.00", res.Totals.Net.StringFixed(2))
	assert.Equal(t, "250.00", res.Totals.Expenses.StringFixed(2))

	require.Len(t, res.Timeline, 3)
	var running []string
	for _, p := range res.Timeline {
		running = append(running, p.Cumulative.StringFixed(2))
	}
	// 500 then -200 on day 1 in row order, then -50 on day 3.
	assert.Equal(t, []string{"500.00", "300.00", "250.00"}, running)
	assert.True(t, res.Timeline[0].TS.Before(res.Timeline[1].TS))

	require.Len(t, res.DailyCloses, 3)
	assert.Equal(t, "300.00", res.DailyCloses[0].CumulativeClose.StringFixed(2))
	assert.Equal(t, "300.00", res.DailyCloses[1].CumulativeClose.StringFixed(2))
	assert.Equal(t, "250.00", res.DailyCloses[2].CumulativeClose.StringFixed(2))

	assert.Equal(t, 3, res.RowsRead)
	assert.Equal(t, 0, res.RowsSkipped)
}

func TestNormalize_SkippedRow(t *testing.T) {
	rows := append(scenario(), stmtRow(3, "??.??.????", "", ""), stmtRow(4, "31.12.2030", "0", "0"))
	res, _ := Normalize(rows, standard(t), Options{})

	assert.Len(t, res.Transactions, 3)
	assert.Equal(t, "2025-01-03", *res.Period.To)
	assert.Equal(t, "250.00", res.Totals.Net.StringFixed(2))
	assert.Equal(t, 5, res.RowsRead)
	assert.Equal(t, 2, res.RowsSkipped)
}

func TestNormalize_StrayYearDoesNotStretchPeriod(t *testing.T) {
	rows := append(scenario(), stmtRow(3, "01.01.0001", "10", ""))
	res, _ := Normalize(rows, standard(t), Options{Location: time.UTC})

	assert.Len(t, res.Transactions, 3)
	assert.Equal(t, "2025-01-01", *res.Period.From)
	assert.Len(t, res.DailyBuckets, 3)
	assert.Len(t, res.DailyCloses, 3)
	assert.Equal(t, 1, res.RowsSkipped)
}

func TestNormalize_Empty(t *testing.T) {
	res, _ := Normalize(nil, standard(t), Options{})
	assert.Nil(t, res.Period.From)
	assert.Nil(t, res.Period.To)
	assert.Empty(t, res.Transactions)
	assert.Empty(t, res.DailyBuckets)
	assert.Empty(t, res.Timeline)
	assert.Empty(t, res.DailyCloses)
	assert.True(t, res.Totals.Net.IsZero())

	data, err := json.Marshal(res)
	require.NoError(t, err)
	s := string(data)
	assert.Contains(t, s, `"period":{"from":null,"to":null}`)
	assert.Contains(t, s, `"transactions":[]`)
	assert.Contains(t, s, `"dailyBuckets":[]`)
	assert.Contains(t, s, `"timeline":[]`)
	assert.Contains(t, s, `"dailyCloses":[]`)
}

func TestNormalize_Window(t *testing.T) {
	res, _ := Normalize(scenario(), standard(t), Options{From: "2025-01-02", To: "2025-01-31"})
	require.Len(t, res.Transactions, 1)
	assert.Equal(t, "2025-01-03", *res.Period.From)
	assert.Equal(t, "50.00", res.Totals.Debits.StringFixed(2))
	assert.Equal(t, 0, res.RowsSkipped)
}

func TestNormalize_TransactionJSON(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	res, _ := Normalize(scenario()[:1], standard(t), Options{Location: loc})
	require.Len(t, res.Transactions, 1)

	data, err := json.Marshal(res.Transactions[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"ts": "2025-01-01T09:00:00+01:00",
		"date": "2025-01-01",
		"description": "",
		"amount": 500,
		"credit": 500,
		"debit": 0,
		"direction": "credit"
	}`, string(data))
}

func TestOptionsValidate(t *testing.T) {
	assert.NoError(t, Options{}.Validate())
	assert.NoError(t, Options{From: "2025-01-01", To: "2025-01-01"}.Validate())
	assert.Error(t, Options{From: "01.01.2025"}.Validate())
	assert.Error(t, Options{From: "2025-02-01", To: "2025-01-01"}.Validate())
}
