package domain

import (
	"fmt"
	"sort"
	"time"

	customError "github.com/segyhp/dealer-loans/pkg/errors"
	"github.com/segyhp/dealer-loans/pkg/utils"

	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// ScheduleTerms are the loan terms a payment schedule is generated from.
type ScheduleTerms struct {
	Principal          decimal.Decimal
	Rate               decimal.Decimal // periodic, not annualized
	MonthlyInstallment decimal.Decimal
	StartDate          time.Time
	InstallmentCount   int
	Currency           Currency
}

// Validate checks the terms. The periodic rate must lie strictly between 0
// and 1.
func (t ScheduleTerms) Validate() error {
	if !t.Principal.IsPositive() {
		return customError.WrapValidation("principal", "must be greater than 0")
	}
	if !t.Rate.IsPositive() || !t.Rate.LessThan(one) {
		return customError.WrapValidation("periodic rate", fmt.Sprintf("%s is outside (0, 1)", t.Rate))
	}
	if !t.MonthlyInstallment.IsPositive() {
		return customError.WrapValidation("monthly installment", "must be greater than 0")
	}
	if t.InstallmentCount <= 0 {
		return customError.WrapValidation("installment count", "must be greater than 0")
	}
	if t.StartDate.IsZero() {
		return customError.WrapValidation("start date", "is required")
	}
	if !t.Currency.Valid() {
		return customError.WrapValidation("currency", "unknown currency")
	}
	return nil
}

// PaymentSchedule is the keyed set of installments of one loan together with
// the terms that generated it. The installment count always equals the
// number of installments held.
type PaymentSchedule struct {
	terms        ScheduleTerms
	installments map[int]*Payment
}

// GenerateSchedule creates InstallmentCount pending installments of
// MonthlyInstallment each, the k-th one due k calendar months after the start
// date. When ids is nil the installments are numbered 1..n, otherwise ids must
// hold exactly n unique positive values.
func GenerateSchedule(terms ScheduleTerms, ids []int) (*PaymentSchedule, error) {
	terms.StartDate = utils.DateOnly(terms.StartDate)
	if err := terms.Validate(); err != nil {
		return nil, err
	}

	if ids == nil {
		ids = make([]int, terms.InstallmentCount)
		for i := range ids {
			ids[i] = i + 1
		}
	}
	if len(ids) != terms.InstallmentCount {
		return nil, customError.WrapValidation("installment ids",
			fmt.Sprintf("got %d ids for %d installments", len(ids), terms.InstallmentCount))
	}

	s := &PaymentSchedule{terms: terms, installments: make(map[int]*Payment, len(ids))}
	for k, id := range ids {
		if _, dup := s.installments[id]; dup {
			return nil, customError.WrapValidation("installment ids", fmt.Sprintf("id %d is repeated", id))
		}
		p, err := NewPayment(id, terms.MonthlyInstallment, utils.AddMonths(terms.StartDate, k), PaymentPending)
		if err != nil {
			return nil, err
		}
		s.installments[id] = p
	}
	return s, nil
}

// RestoreSchedule rebuilds a schedule from persisted terms and installments.
// It enforces the same invariants as GenerateSchedule so that corrupt records
// are refused.
func RestoreSchedule(terms ScheduleTerms, payments []*Payment) (*PaymentSchedule, error) {
	terms.StartDate = utils.DateOnly(terms.StartDate)
	if err := terms.Validate(); err != nil {
		return nil, err
	}
	if len(payments) != terms.InstallmentCount {
		return nil, customError.WrapValidation("installments",
			fmt.Sprintf("got %d installments, expected %d", len(payments), terms.InstallmentCount))
	}

	s := &PaymentSchedule{terms: terms, installments: make(map[int]*Payment, len(payments))}
	for _, p := range payments {
		if p == nil {
			return nil, customError.WrapValidation("installments", "nil installment")
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, dup := s.installments[p.id]; dup {
			return nil, customError.WrapValidation("installment ids", fmt.Sprintf("id %d is repeated", p.id))
		}
		s.installments[p.id] = p.Clone()
	}
	return s, nil
}

// Terms returns a copy of the loan terms.
func (s *PaymentSchedule) Terms() ScheduleTerms { return s.terms }

func (s *PaymentSchedule) Principal() decimal.Decimal          { return s.terms.Principal }
func (s *PaymentSchedule) Rate() decimal.Decimal               { return s.terms.Rate }
func (s *PaymentSchedule) MonthlyInstallment() decimal.Decimal { return s.terms.MonthlyInstallment }
func (s *PaymentSchedule) StartDate() time.Time                { return s.terms.StartDate }
func (s *PaymentSchedule) InstallmentCount() int               { return s.terms.InstallmentCount }
func (s *PaymentSchedule) Currency() Currency                  { return s.terms.Currency }

// Len returns the number of installments.
func (s *PaymentSchedule) Len() int { return len(s.installments) }

// Payments returns the installments ordered by due date, then id. The
// returned payments are the schedule's own and may be mutated.
func (s *PaymentSchedule) Payments() []*Payment {
	out := make([]*Payment, 0, len(s.installments))
	for _, p := range s.installments {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].dueDate.Equal(out[j].dueDate) {
			return out[i].dueDate.Before(out[j].dueDate)
		}
		return out[i].id < out[j].id
	})
	return out
}

// Get returns the installment with the given id.
func (s *PaymentSchedule) Get(id int) (*Payment, error) {
	p, ok := s.installments[id]
	if !ok {
		return nil, customError.WrapNotFound("payment", id)
	}
	return p, nil
}

// Add inserts a copy of p. Duplicate ids are refused.
func (s *PaymentSchedule) Add(p *Payment) error {
	if p == nil {
		return customError.WrapValidation("payment", "is required")
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if _, dup := s.installments[p.id]; dup {
		return customError.WrapAlreadyExists("payment", p.id)
	}
	s.installments[p.id] = p.Clone()
	s.terms.InstallmentCount = len(s.installments)
	return nil
}

// Remove deletes the installment with the given id. A schedule always keeps
// at least one installment.
func (s *PaymentSchedule) Remove(id int) error {
	if _, ok := s.installments[id]; !ok {
		return customError.WrapNotFound("payment", id)
	}
	if len(s.installments) == 1 {
		return customError.WrapValidation("installments", "a schedule needs at least one installment")
	}
	delete(s.installments, id)
	s.terms.InstallmentCount = len(s.installments)
	return nil
}

// Replace swaps the installment with the id of p for a copy of p.
func (s *PaymentSchedule) Replace(p *Payment) error {
	if p == nil {
		return customError.WrapValidation("payment", "is required")
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if _, ok := s.installments[p.id]; !ok {
		return customError.WrapNotFound("payment", p.id)
	}
	s.installments[p.id] = p.Clone()
	return nil
}

// ChangePaymentStatus sets the status of the installment with the given id.
func (s *PaymentSchedule) ChangePaymentStatus(id int, status PaymentStatus) error {
	p, err := s.Get(id)
	if err != nil {
		return err
	}
	return p.ChangeStatus(status)
}

// Total is the sum of every installment amount.
func (s *PaymentSchedule) Total() decimal.Decimal {
	return s.sum(func(*Payment) bool { return true })
}

// TotalPaid is the sum of paid installments.
func (s *PaymentSchedule) TotalPaid() decimal.Decimal {
	return s.sum(func(p *Payment) bool { return p.status == PaymentPaid })
}

// TotalPending is the sum of pending installments. Cancelled installments
// count neither as paid nor as pending.
func (s *PaymentSchedule) TotalPending() decimal.Decimal {
	return s.sum(func(p *Payment) bool { return p.status == PaymentPending })
}

func (s *PaymentSchedule) TotalCancelled() decimal.Decimal {
	return s.sum(func(p *Payment) bool { return p.status == PaymentCancelled })
}

func (s *PaymentSchedule) sum(keep func(*Payment) bool) decimal.Decimal {
	total := decimal.Zero
	for _, p := range s.installments {
		if keep(p) {
			total = total.Add(p.amount)
		}
	}
	return total
}

// Clone returns a deep copy of the schedule.
func (s *PaymentSchedule) Clone() *PaymentSchedule {
	c := &PaymentSchedule{terms: s.terms, installments: make(map[int]*Payment, len(s.installments))}
	for id, p := range s.installments {
		c.installments[id] = p.Clone()
	}
	return c
}

// Equal reports whether both schedules hold the same terms and installments.
func (s *PaymentSchedule) Equal(o *PaymentSchedule) bool {
	if s == nil || o == nil {
		return s == o
	}
	a, b := s.terms, o.terms
	if !a.Principal.Equal(b.Principal) || !a.Rate.Equal(b.Rate) ||
		!a.MonthlyInstallment.Equal(b.MonthlyInstallment) || !a.StartDate.Equal(b.StartDate) ||
		a.InstallmentCount != b.InstallmentCount || a.Currency != b.Currency {
		return false
	}
	if len(s.installments) != len(o.installments) {
		return false
	}
	for id, p := range s.installments {
		if !p.Equal(o.installments[id]) {
			return false
		}
	}
	return true
}
