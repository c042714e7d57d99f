package mocks

import (
	"context"

	"github.com/segyhp/dealer-loans/internal/domain"
	"github.com/segyhp/dealer-loans/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockLoanRepository struct {
	mock.Mock
}

func (m *MockLoanRepository) LoadAll(ctx context.Context) ([]*domain.Loan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) LoadByStatus(ctx context.Context, status domain.ApprovalStatus) ([]*domain.Loan, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) Get(ctx context.Context, id int) (*domain.Loan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) Insert(ctx context.Context, loan *domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *MockLoanRepository) Update(ctx context.Context, loan *domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

type MockBorrowerRepository struct {
	mock.Mock
}

func (m *MockBorrowerRepository) LoadAll(ctx context.Context) ([]domain.Borrower, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Borrower), args.Error(1)
}

func (m *MockBorrowerRepository) Get(ctx context.Context, id int) (domain.Borrower, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Borrower), args.Error(1)
}

func (m *MockBorrowerRepository) Insert(ctx context.Context, borrower domain.Borrower) error {
	args := m.Called(ctx, borrower)
	return args.Error(0)
}

func (m *MockBorrowerRepository) Update(ctx context.Context, borrower domain.Borrower) error {
	args := m.Called(ctx, borrower)
	return args.Error(0)
}

type MockPotentialBorrowerRepository struct {
	mock.Mock
}

func (m *MockPotentialBorrowerRepository) LoadAll(ctx context.Context) ([]domain.PotentialBorrower, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PotentialBorrower), args.Error(1)
}

func (m *MockPotentialBorrowerRepository) Get(ctx context.Context, id int) (domain.PotentialBorrower, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.PotentialBorrower), args.Error(1)
}

func (m *MockPotentialBorrowerRepository) Insert(ctx context.Context, applicant domain.PotentialBorrower) error {
	args := m.Called(ctx, applicant)
	return args.Error(0)
}

func (m *MockPotentialBorrowerRepository) Update(ctx context.Context, applicant domain.PotentialBorrower) error {
	args := m.Called(ctx, applicant)
	return args.Error(0)
}

type MockDealershipRepository struct {
	mock.Mock
}

func (m *MockDealershipRepository) LoadAll(ctx context.Context) ([]domain.Dealership, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Dealership), args.Error(1)
}

func (m *MockDealershipRepository) Get(ctx context.Context, id int) (domain.Dealership, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Dealership), args.Error(1)
}

func (m *MockDealershipRepository) Insert(ctx context.Context, dealership domain.Dealership) error {
	args := m.Called(ctx, dealership)
	return args.Error(0)
}

func (m *MockDealershipRepository) Update(ctx context.Context, dealership domain.Dealership) error {
	args := m.Called(ctx, dealership)
	return args.Error(0)
}

type MockTableStore struct {
	mock.Mock
}

func (m *MockTableStore) LoadTable(ctx context.Context, name string) ([]repository.Record, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.Record), args.Error(1)
}

func (m *MockTableStore) SaveTable(ctx context.Context, name string, records []repository.Record, overwrite bool) error {
	args := m.Called(ctx, name, records, overwrite)
	return args.Error(0)
}

func (m *MockTableStore) DropTable(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockTableStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
