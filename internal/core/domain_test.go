package core

import (
	"errors"
	"strings"
	"testing"
)

func TestIncomeStreamValidate(t *testing.T) {
	valid := IncomeStream{
		Name:      "Salary",
		Amount:    Money{Cents: 250000},
		Frequency: "biweekly",
		Anchor:    NewDate(2024, 1, 5),
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid stream rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*IncomeStream)
		want   error
	}{
		{"empty name", func(s *IncomeStream) { s.Name = "  " }, ErrEmptyName},
		{"name too long", func(s *IncomeStream) { s.Name = strings.Repeat("x", 201) }, ErrNameTooLong},
		{"negative amount", func(s *IncomeStream) { s.Amount = Money{Cents: -1} }, ErrInvalidAmount},
		{"empty frequency", func(s *IncomeStream) { s.Frequency = "" }, ErrEmptyFrequency},
		{"zero anchor", func(s *IncomeStream) { s.Anchor = Date{} }, ErrInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			if err := s.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestTransactionValidate(t *testing.T) {
	valid := Transaction{
		Name:   "Groceries",
		Amount: Money{Cents: 4250},
		Type:   TransactionExpense,
		Date:   NewDate(2024, 3, 10),
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid transaction rejected: %v", err)
	}

	bad := valid
	bad.Type = "transfer"
	if err := bad.Validate(); !errors.Is(err, ErrInvalidType) {
		t.Errorf("Validate() = %v, want ErrInvalidType", err)
	}
}

func TestExpenseScheduleValidate(t *testing.T) {
	valid := ExpenseSchedule{
		Name:      "Rent",
		Amount:    Money{Cents: 150000},
		Frequency: "monthly",
		Start:     NewDate(2024, 1, 1),
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid schedule rejected: %v", err)
	}

	bad := valid
	bad.Start = Date{}
	if err := bad.Validate(); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("Validate() = %v, want ErrInvalidDate", err)
	}
}
