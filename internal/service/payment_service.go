package service

import (
	"context"
	"sort"
	"time"

	"github.com/segyhp/dealer-loans/internal/domain"
	"github.com/segyhp/dealer-loans/internal/repository"
	customError "github.com/segyhp/dealer-loans/pkg/errors"
	"github.com/segyhp/dealer-loans/pkg/utils"

	"github.com/sirupsen/logrus"
)

// PaymentService manages the installments of approved loans.
type PaymentService struct {
	LoanRepo repository.LoanRepository
	log      *logrus.Logger
}

func NewPaymentService(loanRepo repository.LoanRepository, log *logrus.Logger) *PaymentService {
	return &PaymentService{LoanRepo: loanRepo, log: log}
}

// approvedLoan loads a loan that accepts payment changes.
func (s *PaymentService) approvedLoan(ctx context.Context, loanID int) (*domain.Loan, error) {
	loan, err := s.LoanRepo.Get(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.Status() != domain.StatusApproved {
		return nil, customError.WrapLoanNotApproved(loanID)
	}
	return loan, nil
}

// MarkPaymentPaid records the payment of one installment.
func (s *PaymentService) MarkPaymentPaid(ctx context.Context, loanID, paymentID int, paidDate time.Time) (*domain.Loan, error) {
	loan, err := s.approvedLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}
	payment, err := loan.Schedule().Get(paymentID)
	if err != nil {
		return nil, err
	}
	if err := payment.MarkPaid(paidDate); err != nil {
		return nil, err
	}
	if err := s.LoanRepo.Update(ctx, loan); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"loan_id":    loanID,
		"payment_id": paymentID,
		"paid_date":  utils.FormatDate(paidDate),
	}).Info("Payment marked as paid")
	return loan, nil
}

// EditPayment applies the fields set in req to one installment. A paid date
// implies the PAID status, so it cannot be combined with another status.
func (s *PaymentService) EditPayment(ctx context.Context, loanID, paymentID int, req EditPaymentRequest) (*domain.Loan, error) {
	loan, err := s.approvedLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}
	payment, err := loan.Schedule().Get(paymentID)
	if err != nil {
		return nil, err
	}

	edited := payment.Clone()
	if req.Amount != nil {
		if err := edited.ChangeAmount(*req.Amount); err != nil {
			return nil, err
		}
	}
	if req.DueDate != nil {
		due, err := utils.ParseDate(*req.DueDate)
		if err != nil {
			return nil, customError.WrapValidation("due_date", err.Error())
		}
		if err := edited.ChangeDueDate(due); err != nil {
			return nil, err
		}
	}
	if req.Status != nil {
		status, err := domain.ParsePaymentStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		if req.PaidDate != nil && status != domain.PaymentPaid {
			return nil, customError.WrapValidation("paid_date", "can only be set on a paid installment")
		}
		if err := edited.ChangeStatus(status); err != nil {
			return nil, err
		}
	}
	if req.PaidDate != nil {
		paid, err := utils.ParseDate(*req.PaidDate)
		if err != nil {
			return nil, customError.WrapValidation("paid_date", err.Error())
		}
		if err := edited.ChangePaidDate(paid); err != nil {
			return nil, err
		}
	}

	// The edited copy replaces the installment only once every change was accepted.
	if err := loan.Schedule().Replace(edited); err != nil {
		return nil, err
	}
	if err := s.LoanRepo.Update(ctx, loan); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"loan_id":    loanID,
		"payment_id": paymentID,
	}).Info("Payment edited")
	return loan, nil
}

// PaymentsDueInMonth lists the installments of approved loans falling due in
// the given month, by due date and then loan id.
func (s *PaymentService) PaymentsDueInMonth(ctx context.Context, year int, month time.Month) ([]InstallmentView, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := utils.AddMonths(from, 1)
	return s.installments(ctx, func(p *domain.Payment) bool {
		return !p.DueDate().Before(from) && p.DueDate().Before(to)
	})
}

// UpcomingInstallments lists the pending installments of approved loans due
// between from and from+days, both inclusive.
func (s *PaymentService) UpcomingInstallments(ctx context.Context, from time.Time, days int) ([]InstallmentView, error) {
	start := utils.DateOnly(from)
	end := start.AddDate(0, 0, days)
	return s.installments(ctx, func(p *domain.Payment) bool {
		return p.Status() == domain.PaymentPending && !p.DueDate().Before(start) && !p.DueDate().After(end)
	})
}

// OverdueInstallments lists the pending installments of approved loans whose
// due date is before reference.
func (s *PaymentService) OverdueInstallments(ctx context.Context, reference time.Time) ([]InstallmentView, error) {
	return s.installments(ctx, func(p *domain.Payment) bool {
		return p.Status() == domain.PaymentPending && utils.IsDateOverdue(p.DueDate(), reference)
	})
}

func (s *PaymentService) installments(ctx context.Context, keep func(*domain.Payment) bool) ([]InstallmentView, error) {
	loans, err := s.LoanRepo.LoadByStatus(ctx, domain.StatusApproved)
	if err != nil {
		return nil, err
	}

	views := []InstallmentView{}
	for _, l := range loans {
		for _, p := range l.Schedule().Payments() {
			if keep(p) {
				views = append(views, newInstallmentView(l, p))
			}
		}
	}
	sort.SliceStable(views, func(i, j int) bool {
		if views[i].DueDate != views[j].DueDate {
			return views[i].DueDate < views[j].DueDate
		}
		return views[i].LoanID < views[j].LoanID
	})
	return views, nil
}
