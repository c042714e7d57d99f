package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func charlesBorrower() Borrower {
	return Borrower{
		ID:        12345678,
		Name:      "Charles",
		Phone:     "1234567890",
		Notes:     "No notes",
		FilesPath: "path/to/files",
	}
}

func acgDealership() Dealership {
	return Dealership{
		ID:    12345678,
		Name:  "AUTOMOTORA CARLOS GONZALEZ",
		Code:  "ACG",
		Phone: "1234567890",
	}
}

func toyotaCar() Car {
	return Car{OwnerBorrowerID: 12345678, Brand: "Toyota", Model: "Corolla"}
}

func charlesTerms() ScheduleTerms {
	return ScheduleTerms{
		Principal:          decimal.NewFromInt(10000),
		Rate:               decimal.RequireFromString("0.02"),
		MonthlyInstallment: decimal.NewFromInt(1000),
		StartDate:          time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		InstallmentCount:   12,
		Currency:           CurrencyUYU,
	}
}

func charlesSchedule(t *testing.T) *PaymentSchedule {
	t.Helper()
	s, err := GenerateSchedule(charlesTerms(), nil)
	require.NoError(t, err)
	return s
}

func charlesLoan(t *testing.T) *Loan {
	t.Helper()
	l, err := NewLoan(12345678, 100, charlesSchedule(t), charlesBorrower(), toyotaCar(), acgDealership())
	require.NoError(t, err)
	return l
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
