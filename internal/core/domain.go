package core

import (
	"errors"
	"strings"
)

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

type (
	// TransactionType discriminates ad-hoc transactions.
	TransactionType string

	// IncomeStream is a recurring income definition. Amount is the payment
	// per occurrence; Anchor is the date of the most recent actual payday.
	// Frequency is stored as the raw label supplied by the caller and
	// normalized by the schedule package at the computation boundary.
	IncomeStream struct {
		ID        int64
		Name      string
		Amount    Money
		Frequency string
		Anchor    Date
	}

	// ExpenseSchedule is a recurring expense obligation. Start is the date
	// the obligation begins.
	ExpenseSchedule struct {
		ID        int64
		Name      string
		Amount    Money
		Frequency string
		Start     Date
	}

	// Transaction is an ad-hoc, non-recurring entry.
	Transaction struct {
		ID     int64
		Name   string
		Amount Money
		Type   TransactionType
		Date   Date
	}
)

var (
	ErrEmptyName          = errors.New("empty name")
	ErrNameTooLong        = errors.New("name too long (max 200 characters)")
	ErrInvalidType        = errors.New("invalid transaction type")
	ErrEmptyFrequency     = errors.New("empty frequency")
	ErrStreamNotFound     = errors.New("income stream not found")
	ErrScheduleNotFound   = errors.New("expense schedule not found")
	ErrTransactionMissing = errors.New("transaction not found")
)

func validateName(name string) error {
	if len(strings.TrimSpace(name)) == 0 {
		return ErrEmptyName
	}
	if len(name) > 200 {
		return ErrNameTooLong
	}
	return nil
}

func (s IncomeStream) Validate() error {
	if err := validateName(s.Name); err != nil {
		return err
	}
	if err := s.Amount.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(s.Frequency)) == 0 {
		return ErrEmptyFrequency
	}
	return s.Anchor.Validate()
}

func (e ExpenseSchedule) Validate() error {
	if err := validateName(e.Name); err != nil {
		return err
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(e.Frequency)) == 0 {
		return ErrEmptyFrequency
	}
	return e.Start.Validate()
}

func (t Transaction) Validate() error {
	if err := validateName(t.Name); err != nil {
		return err
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	switch t.Type {
	case TransactionIncome, TransactionExpense:
	default:
		return ErrInvalidType
	}
	return t.Date.Validate()
}
