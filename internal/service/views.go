package service

import (
	"github.com/segyhp/dealer-loans/internal/domain"
	"github.com/segyhp/dealer-loans/pkg/utils"

	"github.com/shopspring/decimal"
)

// Views are the read models returned to the API and the CLI. Amounts keep
// their exact value; the *_display fields are rounded for presentation only.

type PaymentView struct {
	ID            int                  `json:"id"`
	Amount        decimal.Decimal      `json:"amount"`
	AmountDisplay string               `json:"amount_display"`
	DueDate       string               `json:"due_date"`
	Status        domain.PaymentStatus `json:"status"`
	PaidDate      string               `json:"paid_date,omitempty"`
}

type TotalsView struct {
	Total            decimal.Decimal `json:"total"`
	TotalPaid        decimal.Decimal `json:"total_paid"`
	TotalPending     decimal.Decimal `json:"total_pending"`
	TotalCancelled   decimal.Decimal `json:"total_cancelled"`
	TotalDisplay     string          `json:"total_display"`
	PaidDisplay      string          `json:"total_paid_display"`
	PendingDisplay   string          `json:"total_pending_display"`
	CancelledDisplay string          `json:"total_cancelled_display"`
}

type LoanView struct {
	ID                 int                   `json:"id"`
	ReadableCode       string                `json:"readable_code"`
	Status             domain.ApprovalStatus `json:"status"`
	Borrower           domain.Borrower       `json:"borrower"`
	Car                domain.Car            `json:"car"`
	Dealership         domain.Dealership     `json:"dealership"`
	Principal          decimal.Decimal       `json:"principal"`
	Rate               decimal.Decimal       `json:"periodic_rate"`
	MonthlyInstallment decimal.Decimal       `json:"monthly_installment"`
	StartDate          string                `json:"start_date"`
	InstallmentCount   int                   `json:"installment_count"`
	Currency           domain.Currency       `json:"currency"`
	Installments       []PaymentView         `json:"installments"`
	Totals             TotalsView            `json:"totals"`
}

// InstallmentView is one installment listed across loans.
type InstallmentView struct {
	LoanID       int             `json:"loan_id"`
	ReadableCode string          `json:"readable_code"`
	BorrowerName string          `json:"borrower_name"`
	Currency     domain.Currency `json:"currency"`
	PaymentView
}

type QuoteView struct {
	Principal                 decimal.Decimal `json:"principal"`
	Rate                      decimal.Decimal `json:"periodic_rate"`
	InstallmentCount          int             `json:"installment_count"`
	MonthlyInstallment        decimal.Decimal `json:"monthly_installment"`
	TotalPayable              decimal.Decimal `json:"total_payable"`
	Currency                  domain.Currency `json:"currency"`
	MonthlyInstallmentDisplay string          `json:"monthly_installment_display"`
	TotalPayableDisplay       string          `json:"total_payable_display"`
}

func NewPaymentView(p *domain.Payment, c domain.Currency) PaymentView {
	v := PaymentView{
		ID:            p.ID(),
		Amount:        p.Amount(),
		AmountDisplay: domain.FormatMoney(p.Amount(), c),
		DueDate:       utils.FormatDate(p.DueDate()),
		Status:        p.Status(),
	}
	if paid, ok := p.PaidDate(); ok {
		v.PaidDate = utils.FormatDate(paid)
	}
	return v
}

func NewLoanView(l *domain.Loan) LoanView {
	s := l.Schedule()
	c := s.Currency()

	installments := make([]PaymentView, 0, s.Len())
	for _, p := range s.Payments() {
		installments = append(installments, NewPaymentView(p, c))
	}

	return LoanView{
		ID:                 l.ID(),
		ReadableCode:       l.ReadableCode(),
		Status:             l.Status(),
		Borrower:           l.Borrower(),
		Car:                l.Car(),
		Dealership:         l.Dealership(),
		Principal:          s.Principal(),
		Rate:               s.Rate(),
		MonthlyInstallment: s.MonthlyInstallment(),
		StartDate:          utils.FormatDate(s.StartDate()),
		InstallmentCount:   s.InstallmentCount(),
		Currency:           c,
		Installments:       installments,
		Totals: TotalsView{
			Total:            s.Total(),
			TotalPaid:        s.TotalPaid(),
			TotalPending:     s.TotalPending(),
			TotalCancelled:   s.TotalCancelled(),
			TotalDisplay:     domain.FormatMoney(s.Total(), c),
			PaidDisplay:      domain.FormatMoney(s.TotalPaid(), c),
			PendingDisplay:   domain.FormatMoney(s.TotalPending(), c),
			CancelledDisplay: domain.FormatMoney(s.TotalCancelled(), c),
		},
	}
}

func newInstallmentView(l *domain.Loan, p *domain.Payment) InstallmentView {
	c := l.Schedule().Currency()
	return InstallmentView{
		LoanID:       l.ID(),
		ReadableCode: l.ReadableCode(),
		BorrowerName: l.Borrower().Name,
		Currency:     c,
		PaymentView:  NewPaymentView(p, c),
	}
}
