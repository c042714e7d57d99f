package repository

import (
	"context"
	"strconv"

	"github.com/segyhp/dealer-loans/internal/domain"
)

type borrowerRepository struct {
	tableRepository[domain.Borrower]
}

// NewBorrowerRepository returns the repository of the master borrower table.
// Borrowers only land there once their application is approved.
func NewBorrowerRepository(store TableStore) BorrowerRepository {
	return &borrowerRepository{tableRepository[domain.Borrower]{
		store: store,
		codec: codec[domain.Borrower]{
			table:  TableBorrowers,
			entity: "borrower",
			key:    func(b domain.Borrower) int { return b.ID },
			encode: func(b domain.Borrower) (Record, error) { return borrowerRow(b), nil },
			decode: rowBorrower,
		},
	}}
}

func (r *borrowerRepository) LoadAll(ctx context.Context) ([]domain.Borrower, error) {
	return r.loadAll(ctx)
}

func (r *borrowerRepository) Get(ctx context.Context, id int) (domain.Borrower, error) {
	return r.get(ctx, id)
}

func (r *borrowerRepository) Insert(ctx context.Context, b domain.Borrower) error {
	if err := b.Validate(); err != nil {
		return err
	}
	return r.insert(ctx, b)
}

func (r *borrowerRepository) Update(ctx context.Context, b domain.Borrower) error {
	if err := b.Validate(); err != nil {
		return err
	}
	return r.update(ctx, b)
}

type potentialBorrowerRepository struct {
	tableRepository[domain.PotentialBorrower]
}

// NewPotentialBorrowerRepository returns the repository of every loan
// applicant, whatever its decision.
func NewPotentialBorrowerRepository(store TableStore) PotentialBorrowerRepository {
	return &potentialBorrowerRepository{tableRepository[domain.PotentialBorrower]{
		store: store,
		codec: codec[domain.PotentialBorrower]{
			table:  TablePotentialBorrowers,
			entity: "potential borrower",
			key:    func(pb domain.PotentialBorrower) int { return pb.Borrower.ID },
			encode: func(pb domain.PotentialBorrower) (Record, error) {
				rec := borrowerRow(pb.Borrower)
				rec["status"] = pb.Status.String()
				return rec, nil
			},
			decode: func(rec Record) (domain.PotentialBorrower, error) {
				b, err := rowBorrower(rec)
				if err != nil {
					return domain.PotentialBorrower{}, err
				}
				status, err := domain.ParseApprovalStatus(rec["status"])
				if err != nil {
					return domain.PotentialBorrower{}, err
				}
				return domain.PotentialBorrower{Borrower: b, Status: status}, nil
			},
		},
	}}
}

func (r *potentialBorrowerRepository) LoadAll(ctx context.Context) ([]domain.PotentialBorrower, error) {
	return r.loadAll(ctx)
}

func (r *potentialBorrowerRepository) Get(ctx context.Context, id int) (domain.PotentialBorrower, error) {
	return r.get(ctx, id)
}

func (r *potentialBorrowerRepository) Insert(ctx context.Context, pb domain.PotentialBorrower) error {
	if err := pb.Validate(); err != nil {
		return err
	}
	return r.insert(ctx, pb)
}

func (r *potentialBorrowerRepository) Update(ctx context.Context, pb domain.PotentialBorrower) error {
	if err := pb.Validate(); err != nil {
		return err
	}
	return r.update(ctx, pb)
}

func borrowerRow(b domain.Borrower) Record {
	return Record{
		"borrower_id": strconv.Itoa(b.ID),
		"name":        b.Name,
		"phone":       b.Phone,
		"notes":       b.Notes,
		"files_path":  b.FilesPath,
	}
}

func rowBorrower(rec Record) (domain.Borrower, error) {
	id, err := atoi("borrower id", rec["borrower_id"])
	if err != nil {
		return domain.Borrower{}, err
	}
	return domain.NewBorrower(id, rec["name"], rec["phone"], rec["notes"], rec["files_path"])
}
