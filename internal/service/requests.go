package service

import (
	"github.com/shopspring/decimal"
)

// BorrowerInput carries the editable fields of a borrower.
type BorrowerInput struct {
	Name      string `json:"name" validate:"required"`
	Phone     string `json:"phone"`
	Notes     string `json:"notes"`
	FilesPath string `json:"files_path,omitempty"`
}

type CarInput struct {
	Brand string `json:"brand" validate:"required"`
	Model string `json:"model" validate:"required"`
}

// CreateLoanRequest originates a loan for a new applicant. When
// MonthlyInstallment is omitted it is computed from the principal, rate and
// installment count.
type CreateLoanRequest struct {
	DealershipID       int              `json:"dealership_id" validate:"required,gt=0"`
	Borrower           BorrowerInput    `json:"borrower"`
	Car                CarInput         `json:"car"`
	Principal          decimal.Decimal  `json:"principal" validate:"decimal_gt=0"`
	Rate               decimal.Decimal  `json:"periodic_rate" validate:"decimal_gt=0,decimal_lt=1"`
	InstallmentCount   int              `json:"installment_count" validate:"required,gt=0"`
	MonthlyInstallment *decimal.Decimal `json:"monthly_installment,omitempty" validate:"omitempty,decimal_gt=0"`
	StartDate          string           `json:"start_date" validate:"required,datetime=2006-01-02"`
	Currency           string           `json:"currency" validate:"required,oneof=USD UYU EUR"`
}

// MarkPaidRequest records the payment of one installment.
type MarkPaidRequest struct {
	PaidDate string `json:"paid_date" validate:"required,datetime=2006-01-02"`
}

// EditPaymentRequest changes any subset of an installment's fields. Fields
// left nil are not touched.
type EditPaymentRequest struct {
	Amount   *decimal.Decimal `json:"amount,omitempty" validate:"omitempty,decimal_gte=0"`
	DueDate  *string          `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Status   *string          `json:"status,omitempty" validate:"omitempty,oneof=pendiente pago cancelado"`
	PaidDate *string          `json:"paid_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// QuoteRequest asks for the terms of a loan. Exactly one of Principal and
// MonthlyInstallment must be set; the other one is derived.
type QuoteRequest struct {
	Principal          *decimal.Decimal `json:"principal,omitempty" validate:"omitempty,decimal_gt=0"`
	MonthlyInstallment *decimal.Decimal `json:"monthly_installment,omitempty" validate:"omitempty,decimal_gt=0"`
	Rate               decimal.Decimal  `json:"periodic_rate" validate:"decimal_gt=0,decimal_lt=1"`
	InstallmentCount   int              `json:"installment_count" validate:"required,gt=0"`
	Currency           string           `json:"currency" validate:"omitempty,oneof=USD UYU EUR"`
}

type DealershipRequest struct {
	Name  string `json:"name" validate:"required"`
	Code  string `json:"dealership_code" validate:"required,alphanum"`
	Phone string `json:"phone"`
}
