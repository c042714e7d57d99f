package domain

import (
	customError "github.com/segyhp/dealer-loans/pkg/errors"
)

// NotAvailable is shown for empty values in display projections.
const NotAvailable = "N/A"

// Borrower is a loan applicant or holder. An empty FilesPath means no
// documents folder was attached.
type Borrower struct {
	ID        int    `json:"borrower_id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Notes     string `json:"notes"`
	FilesPath string `json:"files_path,omitempty"`
}

// NewBorrower creates a validated borrower.
func NewBorrower(id int, name, phone, notes, filesPath string) (Borrower, error) {
	b := Borrower{ID: id, Name: name, Phone: phone, Notes: notes, FilesPath: filesPath}
	return b, b.Validate()
}

func (b Borrower) Validate() error {
	if b.ID <= 0 {
		return customError.WrapValidation("borrower id", "must be a positive integer")
	}
	return nil
}

// FieldValue is one row of a read-only display projection.
type FieldValue struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// DisplayValues projects the public fields of the borrower, in registry
// order.
func (b Borrower) DisplayValues() []FieldValue {
	values := map[string]string{
		"name":  b.Name,
		"phone": b.Phone,
		"notes": b.Notes,
	}
	return project(EntityBorrower, values)
}

// PotentialBorrower is an applicant awaiting a decision.
type PotentialBorrower struct {
	Borrower Borrower       `json:"borrower"`
	Status   ApprovalStatus `json:"status"`
}

// NewPotentialBorrower wraps b in the POTENTIAL state.
func NewPotentialBorrower(b Borrower) (PotentialBorrower, error) {
	pb := PotentialBorrower{Borrower: b, Status: StatusPotential}
	return pb, pb.Validate()
}

func (pb PotentialBorrower) Validate() error {
	if err := pb.Borrower.Validate(); err != nil {
		return err
	}
	if !pb.Status.Valid() {
		return customError.WrapValidation("potential borrower status", "unknown status")
	}
	return nil
}

func (pb *PotentialBorrower) Approve() error {
	status, err := decide("potential borrower", pb.Status, StatusApproved)
	pb.Status = status
	return err
}

func (pb *PotentialBorrower) Reject() error {
	status, err := decide("potential borrower", pb.Status, StatusRejected)
	pb.Status = status
	return err
}

// ToBorrower drops the approval state and returns a plain borrower, used to
// promote an approved applicant into the borrowers table.
func (pb PotentialBorrower) ToBorrower() Borrower {
	return pb.Borrower
}
