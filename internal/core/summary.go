package core

// MonthSummary is the dashboard aggregate for one calendar month. Recurring
// income is exact occurrence-counted; recurring expenses use the coarser
// monthly-equivalent averaging. Transactions are summed as recorded.
type MonthSummary struct {
	Year                int
	Month               int // 1-12
	RecurringIncome     Money
	RecurringExpenses   Money
	TransactionIncome   Money
	TransactionExpenses Money
	Balance             Money
}

// Payday is a single projected occurrence for the calendar view.
type Payday struct {
	StreamID int64
	Name     string
	Date     Date
	Amount   Money
}

// NextPay is the next projected occurrence of one income stream.
type NextPay struct {
	StreamID int64
	Date     Date
	Upcoming bool // within 7 days of the reference date
}
