package domain

import (
	"time"

	customError "github.com/segyhp/dealer-loans/pkg/errors"
	"github.com/segyhp/dealer-loans/pkg/utils"

	"github.com/shopspring/decimal"
)

// Payment is one installment of a payment schedule.
// The paid date is only ever set while the status is PaymentPaid.
type Payment struct {
	id       int
	amount   decimal.Decimal
	dueDate  time.Time
	status   PaymentStatus
	paidDate *time.Time
}

// NewPayment creates an installment. A zero status defaults to PaymentPending.
func NewPayment(id int, amount decimal.Decimal, dueDate time.Time, status PaymentStatus) (*Payment, error) {
	if status == 0 {
		status = PaymentPending
	}
	p := &Payment{
		id:      id,
		amount:  amount,
		dueDate: utils.DateOnly(dueDate),
		status:  status,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Payment) ID() int                 { return p.id }
func (p *Payment) Amount() decimal.Decimal { return p.amount }
func (p *Payment) DueDate() time.Time      { return p.dueDate }
func (p *Payment) Status() PaymentStatus   { return p.status }

// PaidDate returns the date the installment was paid, if recorded.
func (p *Payment) PaidDate() (time.Time, bool) {
	if p.paidDate == nil {
		return time.Time{}, false
	}
	return *p.paidDate, true
}

// Validate checks the installment invariants.
func (p *Payment) Validate() error {
	if p.id <= 0 {
		return customError.WrapValidation("payment id", "must be a positive integer")
	}
	if p.amount.IsNegative() {
		return customError.WrapValidation("payment amount", "must not be negative")
	}
	if p.dueDate.IsZero() {
		return customError.WrapValidation("payment due date", "is required")
	}
	if !p.status.Valid() {
		return customError.WrapValidation("payment status", "unknown status")
	}
	if p.paidDate != nil && p.status != PaymentPaid {
		return customError.WrapValidation("payment paid date", "can only be set on a paid installment")
	}
	return nil
}

// ChangeStatus sets the status. Leaving PaymentPaid clears the paid date.
func (p *Payment) ChangeStatus(status PaymentStatus) error {
	if !status.Valid() {
		return customError.WrapValidation("payment status", "unknown status")
	}
	p.status = status
	if status != PaymentPaid {
		p.paidDate = nil
	}
	return nil
}

// ChangeAmount sets the installment amount.
func (p *Payment) ChangeAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return customError.WrapValidation("payment amount", "must not be negative")
	}
	p.amount = amount
	return nil
}

func (p *Payment) ChangeDueDate(dueDate time.Time) error {
	if dueDate.IsZero() {
		return customError.WrapValidation("payment due date", "is required")
	}
	p.dueDate = utils.DateOnly(dueDate)
	return nil
}

// ChangePaidDate records the paid date and marks the installment as paid.
func (p *Payment) ChangePaidDate(paidDate time.Time) error {
	if paidDate.IsZero() {
		return customError.WrapValidation("payment paid date", "is required")
	}
	d := utils.DateOnly(paidDate)
	p.paidDate = &d
	p.status = PaymentPaid
	return nil
}

// MarkPaid is ChangePaidDate under its business name.
func (p *Payment) MarkPaid(paidDate time.Time) error {
	return p.ChangePaidDate(paidDate)
}

func (p *Payment) MarkCancelled() {
	p.status = PaymentCancelled
	p.paidDate = nil
}

// Clone returns a deep copy of the installment.
func (p *Payment) Clone() *Payment {
	c := *p
	if p.paidDate != nil {
		d := *p.paidDate
		c.paidDate = &d
	}
	return &c
}

// Equal reports whether both installments hold the same values.
func (p *Payment) Equal(o *Payment) bool {
	if p == nil || o == nil {
		return p == o
	}
	if p.id != o.id || !p.amount.Equal(o.amount) || !p.dueDate.Equal(o.dueDate) || p.status != o.status {
		return false
	}
	if (p.paidDate == nil) != (o.paidDate == nil) {
		return false
	}
	return p.paidDate == nil || p.paidDate.Equal(*o.paidDate)
}
