package repository

import (
	"context"

	"github.com/segyhp/dealer-loans/internal/domain"
)

// Record is one flat row of a table: column name to cell text.
type Record map[string]string

// TableStore is the storage collaborator. Tables are read and written as
// whole snapshots; there are no partial updates.
type TableStore interface {
	// LoadTable returns the rows of a table in stored order. A table that was
	// never saved yields ErrNotFound.
	LoadTable(ctx context.Context, name string) ([]Record, error)

	// SaveTable replaces the content of a table. When the table exists and
	// overwrite is false it fails with ErrAlreadyExists and writes nothing.
	SaveTable(ctx context.Context, name string, records []Record, overwrite bool) error

	// DropTable removes a table and its rows.
	DropTable(ctx context.Context, name string) error

	// Ping checks that the backing storage is reachable.
	Ping(ctx context.Context) error
}

// LoanRepository defines the interface for loan data operations
type LoanRepository interface {
	// LoadAll returns every loan in stored order
	LoadAll(ctx context.Context) ([]*domain.Loan, error)

	// LoadByStatus returns the loans in the given approval status
	LoadByStatus(ctx context.Context, status domain.ApprovalStatus) ([]*domain.Loan, error)

	// Get retrieves a loan by its numeric id
	Get(ctx context.Context, id int) (*domain.Loan, error)

	// Insert appends a new loan; a duplicate id fails with ErrAlreadyExists
	Insert(ctx context.Context, loan *domain.Loan) error

	// Update replaces the stored loan with the same id
	Update(ctx context.Context, loan *domain.Loan) error
}

// BorrowerRepository defines the interface for the master borrower table
type BorrowerRepository interface {
	LoadAll(ctx context.Context) ([]domain.Borrower, error)
	Get(ctx context.Context, id int) (domain.Borrower, error)
	Insert(ctx context.Context, borrower domain.Borrower) error
	Update(ctx context.Context, borrower domain.Borrower) error
}

// PotentialBorrowerRepository defines the interface for loan applicants
type PotentialBorrowerRepository interface {
	LoadAll(ctx context.Context) ([]domain.PotentialBorrower, error)
	Get(ctx context.Context, id int) (domain.PotentialBorrower, error)
	Insert(ctx context.Context, applicant domain.PotentialBorrower) error
	Update(ctx context.Context, applicant domain.PotentialBorrower) error
}

// DealershipRepository defines the interface for dealership data operations
type DealershipRepository interface {
	LoadAll(ctx context.Context) ([]domain.Dealership, error)
	Get(ctx context.Context, id int) (domain.Dealership, error)
	Insert(ctx context.Context, dealership domain.Dealership) error
	Update(ctx context.Context, dealership domain.Dealership) error
}
