package profile

// Built-in profile names.
const (
	Standard = "standard"
	Inverted = "inverted"
	Russian  = "ru"
	German   = "de"
)

var (
	dateHeaders = []string{
		"Date", "Transaction Date", "Operation Date", "Posting Date", "Value Date",
		"Дата", "Дата операции", "Дата проводки", "Buchungstag", "Datum",
	}
	timeHeaders = []string{"Time", "Transaction Time", "Время", "Время операции", "Uhrzeit"}
	descHeaders = []string{
		"Description", "Details", "Narrative", "Memo", "Purpose",
		"Описание", "Назначение платежа", "Детали", "Verwendungszweck", "Buchungstext",
	}
)

// DefaultRegistry returns a registry with all built-in profiles.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, p := range Defaults() {
		r.Register(p)
	}
	return r
}

// Defaults returns the built-in bank profiles.
func Defaults() []Profile {
	return []Profile{
		{
			Name:        Standard,
			Description: "Generic export: Credit/Income is money in, Debit/Expense is money out",
			Columns: ColumnSpec{
				Date:        dateHeaders,
				Time:        timeHeaders,
				Description: descHeaders,
				Income:      []string{"Credit", "Income", "Incoming", "Money In", "Paid In", "Deposit", "Приход", "Поступление", "Haben"},
				Expense:     []string{"Debit", "Expense", "Outgoing", "Money Out", "Paid Out", "Withdrawal", "Расход", "Списание", "Soll"},
			},
		},
		{
			// Some institutions label columns from the bank's ledger side, so
			// "Debit" on their export is a deposit into the customer's account.
			Name:        Inverted,
			Description: "Ledger-perspective export: Debit is money in, Credit is money out",
			Columns: ColumnSpec{
				Date:        dateHeaders,
				Time:        timeHeaders,
				Description: descHeaders,
				Income:      []string{"Debit", "Дебет"},
				Expense:     []string{"Credit", "Кредит"},
			},
		},
		{
			Name:        Russian,
			Description: "Cyrillic headers: Приход/Поступление in, Расход/Списание out",
			Columns: ColumnSpec{
				Date:        []string{"Дата операции", "Дата", "Дата проводки", "Дата платежа"},
				Time:        []string{"Время операции", "Время"},
				Description: []string{"Описание", "Назначение платежа", "Детали операции", "Детали"},
				Income:      []string{"Приход", "Поступление", "Зачисление", "Кредит"},
				Expense:     []string{"Расход", "Списание", "Дебет"},
			},
		},
		{
			Name:        German,
			Description: "German headers: Haben in, Soll out",
			Columns: ColumnSpec{
				Date:        []string{"Buchungstag", "Buchungsdatum", "Valutadatum", "Datum"},
				Time:        []string{"Uhrzeit", "Zeit"},
				Description: []string{"Verwendungszweck", "Buchungstext", "Beschreibung"},
				Income:      []string{"Haben", "Eingang", "Gutschrift"},
				Expense:     []string{"Soll", "Ausgang", "Lastschrift"},
			},
		},
	}
}
