package core

// Balance is the signed sum of all transactions: income minus expense.
func Balance(txs []Transaction) Money {
	var paise int64
	for _, t := range txs {
		if t.Kind == Income {
			paise += t.Amount.Paise
		} else {
			paise -= t.Amount.Paise
		}
	}
	return Money{Paise: paise}
}

// TotalByKind sums the amounts of all transactions of the given kind.
func TotalByKind(txs []Transaction, kind Kind) Money {
	var paise int64
	for _, t := range txs {
		if t.Kind == kind {
			paise += t.Amount.Paise
		}
	}
	return Money{Paise: paise}
}

// CountByKind counts transactions of the given kind.
func CountByKind(txs []Transaction, kind Kind) int {
	n := 0
	for _, t := range txs {
		if t.Kind == kind {
			n++
		}
	}
	return n
}

// CountByCategory counts transactions in the given category, any kind.
func CountByCategory(txs []Transaction, c Category) int {
	n := 0
	for _, t := range txs {
		if t.Category == c {
			n++
		}
	}
	return n
}

// InMonth filters transactions whose calendar date falls in the month of ref.
func InMonth(txs []Transaction, ref Date) []Transaction {
	var out []Transaction
	for _, t := range txs {
		if t.OccurredOn.SameMonth(ref) {
			out = append(out, t)
		}
	}
	return out
}

// OnDate filters transactions whose calendar date equals d.
func OnDate(txs []Transaction, d Date) []Transaction {
	var out []Transaction
	for _, t := range txs {
		if t.OccurredOn.Equal(d.Time) {
			out = append(out, t)
		}
	}
	return out
}

// MonthOverview is a compact dashboard summary for the month of Ref.
type MonthOverview struct {
	Ref      Date  `json:"ref"`
	Income   Money `json:"income"`
	Expenses Money `json:"expenses"`
	Balance  Money `json:"balance"`
}

// Overview computes the monthly income/expense totals plus the all-time balance.
func Overview(txs []Transaction, ref Date) MonthOverview {
	month := InMonth(txs, ref)
	return MonthOverview{
		Ref:      ref,
		Income:   TotalByKind(month, Income),
		Expenses: TotalByKind(month, Expense),
		Balance:  Balance(txs),
	}
}
