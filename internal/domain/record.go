package domain

import (
	"encoding/json"
	"sort"

	customError "github.com/segyhp/dealer-loans/pkg/errors"
	"github.com/segyhp/dealer-loans/pkg/utils"

	"github.com/shopspring/decimal"
)

// LoanRecord is the flat storage form of a loan: three scalars plus one
// self-contained JSON document per nested entity. The storage layer never
// parses the documents.
type LoanRecord struct {
	ID           int    `json:"id"`
	ReadableCode string `json:"readable_code"`
	Status       string `json:"status"`
	Schedule     string `json:"schedule"`
	Borrower     string `json:"borrower"`
	Car          string `json:"car"`
	Dealership   string `json:"dealership"`
}

type scheduleDocument struct {
	StartDate          string            `json:"start_date"`
	MonthlyInstallment decimal.Decimal   `json:"monthly_installment"`
	InstallmentCount   int               `json:"installment_count"`
	Principal          decimal.Decimal   `json:"principal"`
	Rate               decimal.Decimal   `json:"periodic_rate"`
	Currency           Currency          `json:"currency"`
	Installments       []paymentDocument `json:"installments"`
}

type paymentDocument struct {
	ID       int             `json:"id"`
	Amount   decimal.Decimal `json:"amount"`
	DueDate  string          `json:"due_date"`
	Status   PaymentStatus   `json:"status"`
	PaidDate string          `json:"paid_date,omitempty"`
}

// ToRecord serializes the loan into its flat storage form.
func (l *Loan) ToRecord() (LoanRecord, error) {
	schedule, err := EncodeSchedule(l.schedule)
	if err != nil {
		return LoanRecord{}, err
	}
	borrower, err := encodeDocument(l.borrower)
	if err != nil {
		return LoanRecord{}, err
	}
	car, err := encodeDocument(l.car)
	if err != nil {
		return LoanRecord{}, err
	}
	dealership, err := encodeDocument(l.dealership)
	if err != nil {
		return LoanRecord{}, err
	}
	return LoanRecord{
		ID:           l.id,
		ReadableCode: l.readableCode,
		Status:       l.status.String(),
		Schedule:     schedule,
		Borrower:     borrower,
		Car:          car,
		Dealership:   dealership,
	}, nil
}

// LoanFromRecord is the inverse of ToRecord. Every nested entity is
// validated again; a corrupt record is refused.
func LoanFromRecord(r LoanRecord) (*Loan, error) {
	status, err := ParseApprovalStatus(r.Status)
	if err != nil {
		return nil, err
	}
	schedule, err := DecodeSchedule(r.Schedule)
	if err != nil {
		return nil, err
	}
	borrower, err := DecodeBorrower(r.Borrower)
	if err != nil {
		return nil, err
	}
	var car Car
	if err := decodeDocument("car", r.Car, &car); err != nil {
		return nil, err
	}
	dealership, err := DecodeDealership(r.Dealership)
	if err != nil {
		return nil, err
	}
	return restoreLoan(r.ID, r.ReadableCode, schedule, borrower, car, dealership, status)
}

// EncodeSchedule serializes a schedule. Installments are written in id order
// so that equal schedules encode to the same text.
func EncodeSchedule(s *PaymentSchedule) (string, error) {
	doc := scheduleDocument{
		StartDate:          utils.FormatDate(s.terms.StartDate),
		MonthlyInstallment: s.terms.MonthlyInstallment,
		InstallmentCount:   s.terms.InstallmentCount,
		Principal:          s.terms.Principal,
		Rate:               s.terms.Rate,
		Currency:           s.terms.Currency,
		Installments:       make([]paymentDocument, 0, len(s.installments)),
	}
	for _, p := range s.installments {
		pd := paymentDocument{
			ID:      p.id,
			Amount:  p.amount,
			DueDate: utils.FormatDate(p.dueDate),
			Status:  p.status,
		}
		if p.paidDate != nil {
			pd.PaidDate = utils.FormatDate(*p.paidDate)
		}
		doc.Installments = append(doc.Installments, pd)
	}
	sort.Slice(doc.Installments, func(i, j int) bool { return doc.Installments[i].ID < doc.Installments[j].ID })
	return encodeDocument(doc)
}

// DecodeSchedule parses a schedule document and checks its invariants.
func DecodeSchedule(text string) (*PaymentSchedule, error) {
	var doc scheduleDocument
	if err := decodeDocument("schedule", text, &doc); err != nil {
		return nil, err
	}
	start, err := utils.ParseDate(doc.StartDate)
	if err != nil {
		return nil, customError.WrapValidation("schedule start date", err.Error())
	}

	payments := make([]*Payment, 0, len(doc.Installments))
	for _, pd := range doc.Installments {
		due, err := utils.ParseDate(pd.DueDate)
		if err != nil {
			return nil, customError.WrapValidation("payment due date", err.Error())
		}
		p := &Payment{id: pd.ID, amount: pd.Amount, dueDate: due, status: pd.Status}
		if pd.PaidDate != "" {
			paid, err := utils.ParseDate(pd.PaidDate)
			if err != nil {
				return nil, customError.WrapValidation("payment paid date", err.Error())
			}
			p.paidDate = &paid
		}
		payments = append(payments, p)
	}

	return RestoreSchedule(ScheduleTerms{
		Principal:          doc.Principal,
		Rate:               doc.Rate,
		MonthlyInstallment: doc.MonthlyInstallment,
		StartDate:          start,
		InstallmentCount:   doc.InstallmentCount,
		Currency:           doc.Currency,
	}, payments)
}

func EncodeBorrower(b Borrower) (string, error) { return encodeDocument(b) }

func DecodeBorrower(text string) (Borrower, error) {
	var b Borrower
	if err := decodeDocument("borrower", text, &b); err != nil {
		return Borrower{}, err
	}
	return b, nil
}

func EncodeDealership(d Dealership) (string, error) { return encodeDocument(d) }

func DecodeDealership(text string) (Dealership, error) {
	var d Dealership
	if err := decodeDocument("dealership", text, &d); err != nil {
		return Dealership{}, err
	}
	return d, nil
}

func encodeDocument(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", customError.WrapValidation("record", err.Error())
	}
	return string(b), nil
}

type validatable interface{ Validate() error }

func decodeDocument(name, text string, dst any) error {
	if err := json.Unmarshal([]byte(text), dst); err != nil {
		return customError.WrapValidation(name+" record", err.Error())
	}
	if v, ok := dst.(validatable); ok {
		return v.Validate()
	}
	return nil
}
