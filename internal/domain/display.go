package domain

import (
	"strconv"

	"github.com/segyhp/dealer-loans/pkg/utils"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// FormatMoney renders amount with the symbol and separators of c, rounded to
// the currency's minor unit. Domain values are never rounded; only their
// display is.
func FormatMoney(amount decimal.Decimal, c Currency) string {
	code := c.String()
	// money.New never returns a nil currency, even for unknown codes.
	fraction := money.New(0, code).Currency().Fraction
	minor := amount.Shift(int32(fraction)).Round(0).IntPart()
	return money.New(minor, code).Display()
}

func (c Car) DisplayValues() []FieldValue {
	return project(EntityCar, map[string]string{
		"brand": c.Brand,
		"model": c.Model,
	})
}

func (d Dealership) DisplayValues() []FieldValue {
	return project(EntityDealership, map[string]string{
		"name":            d.Name,
		"dealership_code": d.Code,
		"phone":           d.Phone,
	})
}

func (pb PotentialBorrower) DisplayValues() []FieldValue {
	return project(EntityPotentialBorrower, map[string]string{
		"name":   pb.Borrower.Name,
		"phone":  pb.Borrower.Phone,
		"notes":  pb.Borrower.Notes,
		"status": pb.Status.String(),
	})
}

func (s *PaymentSchedule) DisplayValues() []FieldValue {
	return project(EntitySchedule, map[string]string{
		"principal":           FormatMoney(s.terms.Principal, s.terms.Currency),
		"periodic_rate":       s.terms.Rate.String(),
		"monthly_installment": FormatMoney(s.terms.MonthlyInstallment, s.terms.Currency),
		"start_date":          utils.FormatDate(s.terms.StartDate),
		"installment_count":   strconv.Itoa(s.terms.InstallmentCount),
		"currency":            s.terms.Currency.String(),
	})
}

// DisplayValues renders the installment using the currency of its schedule.
func (p *Payment) DisplayValues(c Currency) []FieldValue {
	values := map[string]string{
		"id":       strconv.Itoa(p.id),
		"amount":   FormatMoney(p.amount, c),
		"due_date": utils.FormatDate(p.dueDate),
		"status":   p.status.String(),
	}
	if paid, ok := p.PaidDate(); ok {
		values["paid_date"] = utils.FormatDate(paid)
	}
	return project(EntityPayment, values)
}
