package repository

import (
	"testing"
	"time"

	"github.com/segyhp/dealer-loans/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func testDealership() domain.Dealership {
	return domain.Dealership{ID: 1, Name: "AUTOMOTORA CARLOS GONZALEZ", Code: "ACG", Phone: "1234567890"}
}

func testBorrower(id int) domain.Borrower {
	return domain.Borrower{ID: id, Name: "Charles", Phone: "1234567890", Notes: "No notes"}
}

func testLoan(t *testing.T, id int) *domain.Loan {
	t.Helper()
	schedule, err := domain.GenerateSchedule(domain.ScheduleTerms{
		Principal:          decimal.NewFromInt(10000),
		Rate:               decimal.RequireFromString("0.02"),
		MonthlyInstallment: decimal.NewFromInt(1000),
		StartDate:          time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		InstallmentCount:   12,
		Currency:           domain.CurrencyUYU,
	}, nil)
	require.NoError(t, err)

	borrower := testBorrower(id)
	car := domain.Car{OwnerBorrowerID: borrower.ID, Brand: "Toyota", Model: "Corolla"}
	loan, err := domain.NewLoan(id, id, schedule, borrower, car, testDealership())
	require.NoError(t, err)
	return loan
}
