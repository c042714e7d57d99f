package repository

import (
	"context"
	"strconv"

	"github.com/segyhp/dealer-loans/internal/domain"
	customError "github.com/segyhp/dealer-loans/pkg/errors"
)

type loanRepository struct {
	tableRepository[*domain.Loan]
}

func NewLoanRepository(store TableStore) LoanRepository {
	return &loanRepository{tableRepository[*domain.Loan]{
		store: store,
		codec: codec[*domain.Loan]{
			table:  TableLoans,
			entity: "loan",
			key:    (*domain.Loan).ID,
			encode: encodeLoan,
			decode: decodeLoan,
		},
	}}
}

func (r *loanRepository) LoadAll(ctx context.Context) ([]*domain.Loan, error) {
	return r.loadAll(ctx)
}

func (r *loanRepository) LoadByStatus(ctx context.Context, status domain.ApprovalStatus) ([]*domain.Loan, error) {
	all, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	var loans []*domain.Loan
	for _, l := range all {
		if l.Status() == status {
			loans = append(loans, l)
		}
	}
	return loans, nil
}

func (r *loanRepository) Get(ctx context.Context, id int) (*domain.Loan, error) {
	return r.get(ctx, id)
}

func (r *loanRepository) Insert(ctx context.Context, loan *domain.Loan) error {
	return r.insert(ctx, loan)
}

func (r *loanRepository) Update(ctx context.Context, loan *domain.Loan) error {
	return r.update(ctx, loan)
}

func encodeLoan(l *domain.Loan) (Record, error) {
	lr, err := l.ToRecord()
	if err != nil {
		return nil, err
	}
	return loanRecordToRow(lr), nil
}

func decodeLoan(rec Record) (*domain.Loan, error) {
	lr, err := rowToLoanRecord(rec)
	if err != nil {
		return nil, err
	}
	return domain.LoanFromRecord(lr)
}

func loanRecordToRow(lr domain.LoanRecord) Record {
	return Record{
		"id":            strconv.Itoa(lr.ID),
		"readable_code": lr.ReadableCode,
		"status":        lr.Status,
		"schedule":      lr.Schedule,
		"borrower":      lr.Borrower,
		"car":           lr.Car,
		"dealership":    lr.Dealership,
	}
}

func rowToLoanRecord(rec Record) (domain.LoanRecord, error) {
	id, err := atoi("loan id", rec["id"])
	if err != nil {
		return domain.LoanRecord{}, err
	}
	return domain.LoanRecord{
		ID:           id,
		ReadableCode: rec["readable_code"],
		Status:       rec["status"],
		Schedule:     rec["schedule"],
		Borrower:     rec["borrower"],
		Car:          rec["car"],
		Dealership:   rec["dealership"],
	}, nil
}

func atoi(field, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, customError.WrapValidation(field, "must be an integer")
	}
	return n, nil
}
