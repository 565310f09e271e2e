package core

import "testing"

func TestBalanceAndTotals(t *testing.T) {
	today := NewDate(2026, 8, 31)
	txs := []Transaction{
		{ID: "1", Kind: Income, Amount: Money{Paise: 5000_00}, Category: Other, OccurredOn: today},
		{ID: "2", Kind: Expense, Amount: Money{Paise: 1200_00}, Category: Food, OccurredOn: today},
		{ID: "3", Kind: Expense, Amount: Money{Paise: 300_00}, Category: Food, OccurredOn: today.AddDays(-1)},
	}

	if got := Balance(txs).Paise; got != 3500_00 {
		t.Errorf("Balance() = %d, want 350000", got)
	}
	if got := TotalByKind(txs, Income).Paise; got != 5000_00 {
		t.Errorf("TotalByKind(Income) = %d, want 500000", got)
	}
	if got := TotalByKind(txs, Expense).Paise; got != 1500_00 {
		t.Errorf("TotalByKind(Expense) = %d, want 150000", got)
	}
	if got := CountByKind(txs, Expense); got != 2 {
		t.Errorf("CountByKind(Expense) = %d, want 2", got)
	}
	if got := CountByCategory(txs, Food); got != 2 {
		t.Errorf("CountByCategory(Food) = %d, want 2", got)
	}
}

func TestInMonthAndOnDate(t *testing.T) {
	ref := NewDate(2026, 8, 31)
	txs := []Transaction{
		{ID: "1", Kind: Expense, Amount: Money{Paise: 100}, Category: Food, OccurredOn: ref},
		{ID: "2", Kind: Expense, Amount: Money{Paise: 100}, Category: Food, OccurredOn: NewDate(2026, 8, 1)},
		{ID: "3", Kind: Expense, Amount: Money{Paise: 100}, Category: Food, OccurredOn: NewDate(2026, 7, 31)},
	}

	if got := len(InMonth(txs, ref)); got != 2 {
		t.Errorf("InMonth() count = %d, want 2", got)
	}
	if got := len(OnDate(txs, ref)); got != 1 {
		t.Errorf("OnDate() count = %d, want 1", got)
	}
}

func TestOverview(t *testing.T) {
	ref := NewDate(2026, 8, 31)
	txs := []Transaction{
		{ID: "1", Kind: Income, Amount: Money{Paise: 5000_00}, Category: Other, OccurredOn: ref},
		{ID: "2", Kind: Expense, Amount: Money{Paise: 1200_00}, Category: Food, OccurredOn: ref},
		// Last month: counted in the balance, not in the monthly totals.
		{ID: "3", Kind: Income, Amount: Money{Paise: 2000_00}, Category: Other, OccurredOn: NewDate(2026, 7, 15)},
	}

	ov := Overview(txs, ref)
	if ov.Income.Paise != 5000_00 {
		t.Errorf("Income = %d, want 500000", ov.Income.Paise)
	}
	if ov.Expenses.Paise != 1200_00 {
		t.Errorf("Expenses = %d, want 120000", ov.Expenses.Paise)
	}
	if ov.Balance.Paise != 5800_00 {
		t.Errorf("Balance = %d, want 580000", ov.Balance.Paise)
	}
}
