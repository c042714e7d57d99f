package service

import (
	"context"
	"testing"

	"github.com/segyhp/dealer-loans/internal/domain"
	"github.com/segyhp/dealer-loans/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	loans       repository.LoanRepository
	applicants  repository.PotentialBorrowerRepository
	borrowers   repository.BorrowerRepository
	dealerships repository.DealershipRepository
	log         *logrus.Logger
	hook        *test.Hook
}

// newTestEnv wires the repositories over an in-memory store seeded with the
// ACG dealership.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := repository.NewMemoryStore()
	log, hook := test.NewNullLogger()
	env := &testEnv{
		loans:       repository.NewLoanRepository(store),
		applicants:  repository.NewPotentialBorrowerRepository(store),
		borrowers:   repository.NewBorrowerRepository(store),
		dealerships: repository.NewDealershipRepository(store),
		log:         log,
		hook:        hook,
	}
	require.NoError(t, env.dealerships.Insert(context.Background(), acg()))
	return env
}

func (e *testEnv) loanService() *LoanService {
	return NewLoanService(e.loans, e.applicants, e.borrowers, e.dealerships, domain.IDStrategyCount, e.log)
}

func (e *testEnv) paymentService() *PaymentService {
	return NewPaymentService(e.loans, e.log)
}

func acg() domain.Dealership {
	return domain.Dealership{ID: 1, Name: "AUTOMOTORA CARLOS GONZALEZ", Code: "ACG", Phone: "1234567890"}
}

func charlesRequest() CreateLoanRequest {
	return CreateLoanRequest{
		DealershipID:     1,
		Borrower:         BorrowerInput{Name: "Charles", Phone: "1234567890", Notes: "No notes"},
		Car:              CarInput{Brand: "Toyota", Model: "Corolla"},
		Principal:        decimal.NewFromInt(10000),
		Rate:             decimal.RequireFromString("0.02"),
		InstallmentCount: 12,
		StartDate:        "2025-07-01",
		Currency:         "UYU",
	}
}

// approvedLoan originates a loan from req and approves it.
func (e *testEnv) approvedLoan(t *testing.T, req CreateLoanRequest) *domain.Loan {
	t.Helper()
	ctx := context.Background()
	loan, err := e.loanService().CreateLoan(ctx, req)
	require.NoError(t, err)
	loan, err = e.loanService().ApproveLoan(ctx, loan.ID())
	require.NoError(t, err)
	return loan
}
