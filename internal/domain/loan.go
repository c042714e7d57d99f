package domain

import (
	customError "github.com/segyhp/dealer-loans/pkg/errors"
	"github.com/segyhp/dealer-loans/pkg/utils"
)

// ReadableCodeDigits is the minimum width of the sequence part of a readable
// loan code.
const ReadableCodeDigits = 8

// Loan is the aggregate persisted as one loan row. It owns copies of its
// schedule, borrower, car and dealership; changing them never touches the
// borrowers or dealerships tables.
type Loan struct {
	id           int
	readableCode string
	schedule     *PaymentSchedule
	borrower     Borrower
	car          Car
	dealership   Dealership
	status       ApprovalStatus
}

// NewLoan originates a POTENTIAL loan. The readable code is derived from the
// dealership code and the per-dealership sequence number.
func NewLoan(id, sequence int, schedule *PaymentSchedule, borrower Borrower, car Car, dealership Dealership) (*Loan, error) {
	if sequence <= 0 {
		return nil, customError.WrapValidation("loan sequence number", "must be a positive integer")
	}
	if err := dealership.Validate(); err != nil {
		return nil, err
	}
	return restoreLoan(id, ReadableCode(dealership.Code, sequence), schedule, borrower, car, dealership, StatusPotential)
}

func restoreLoan(id int, code string, schedule *PaymentSchedule, borrower Borrower, car Car, dealership Dealership, status ApprovalStatus) (*Loan, error) {
	if id <= 0 {
		return nil, customError.WrapValidation("loan id", "must be a positive integer")
	}
	if code == "" {
		return nil, customError.WrapValidation("loan readable code", "is required")
	}
	if schedule == nil {
		return nil, customError.WrapValidation("loan schedule", "is required")
	}
	if !status.Valid() {
		return nil, customError.WrapValidation("loan status", "unknown status")
	}
	for _, v := range []interface{ Validate() error }{borrower, car, dealership} {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	return &Loan{
		id:           id,
		readableCode: code,
		schedule:     schedule.Clone(),
		borrower:     borrower,
		car:          car,
		dealership:   dealership,
		status:       status,
	}, nil
}

// ReadableCode formats a human facing loan code, e.g. "ACG-00000100".
func ReadableCode(dealershipCode string, sequence int) string {
	return dealershipCode + "-" + utils.ZeroPad(sequence, ReadableCodeDigits)
}

func (l *Loan) ID() int                { return l.id }
func (l *Loan) ReadableCode() string   { return l.readableCode }
func (l *Loan) Borrower() Borrower     { return l.borrower }
func (l *Loan) Car() Car               { return l.car }
func (l *Loan) Dealership() Dealership { return l.dealership }
func (l *Loan) Status() ApprovalStatus { return l.status }

// Schedule returns the loan's own schedule; installment mutations made
// through it are part of the loan.
func (l *Loan) Schedule() *PaymentSchedule { return l.schedule }

// Approve moves a POTENTIAL loan to APPROVED. It has no effect on the schedule.
func (l *Loan) Approve() error {
	status, err := decide("loan", l.status, StatusApproved)
	l.status = status
	return err
}

// Reject moves a POTENTIAL loan to REJECTED.
func (l *Loan) Reject() error {
	status, err := decide("loan", l.status, StatusRejected)
	l.status = status
	return err
}

// UpdateBorrower replaces the embedded borrower snapshot. The borrower id is
// part of the loan identity and cannot change.
func (l *Loan) UpdateBorrower(b Borrower) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if b.ID != l.borrower.ID {
		return customError.WrapValidation("borrower id", "cannot change on an existing loan")
	}
	l.borrower = b
	return nil
}

// UpdateCar replaces the embedded car snapshot.
func (l *Loan) UpdateCar(c Car) error {
	if err := c.Validate(); err != nil {
		return err
	}
	l.car = c
	return nil
}

// Clone returns a deep copy of the loan.
func (l *Loan) Clone() *Loan {
	c := *l
	c.schedule = l.schedule.Clone()
	return &c
}

// Equal compares both loans field by field.
func (l *Loan) Equal(o *Loan) bool {
	if l == nil || o == nil {
		return l == o
	}
	return l.id == o.id &&
		l.readableCode == o.readableCode &&
		l.status == o.status &&
		l.borrower == o.borrower &&
		l.car == o.car &&
		l.dealership == o.dealership &&
		l.schedule.Equal(o.schedule)
}
