package service

import (
	"context"
	"errors"

	"github.com/segyhp/dealer-loans/internal/domain"
	"github.com/segyhp/dealer-loans/internal/repository"
	customError "github.com/segyhp/dealer-loans/pkg/errors"
	"github.com/segyhp/dealer-loans/pkg/utils"

	"github.com/sirupsen/logrus"
)

type LoanService struct {
	LoanRepo       repository.LoanRepository
	ApplicantRepo  repository.PotentialBorrowerRepository
	BorrowerRepo   repository.BorrowerRepository
	DealershipRepo repository.DealershipRepository
	idStrategy     domain.IDStrategy
	log            *logrus.Logger
}

func NewLoanService(
	loanRepo repository.LoanRepository,
	applicantRepo repository.PotentialBorrowerRepository,
	borrowerRepo repository.BorrowerRepository,
	dealershipRepo repository.DealershipRepository,
	idStrategy domain.IDStrategy,
	log *logrus.Logger,
) *LoanService {
	return &LoanService{
		LoanRepo:       loanRepo,
		ApplicantRepo:  applicantRepo,
		BorrowerRepo:   borrowerRepo,
		DealershipRepo: dealershipRepo,
		idStrategy:     idStrategy,
		log:            log,
	}
}

// CreateLoan originates a POTENTIAL loan for a new applicant and registers
// the applicant as a potential borrower.
func (s *LoanService) CreateLoan(ctx context.Context, req CreateLoanRequest) (*domain.Loan, error) {
	currency, err := domain.ParseCurrency(req.Currency)
	if err != nil {
		return nil, err
	}
	start, err := utils.ParseDate(req.StartDate)
	if err != nil {
		return nil, customError.WrapValidation("start_date", err.Error())
	}

	dealership, err := s.DealershipRepo.Get(ctx, req.DealershipID)
	if err != nil {
		return nil, err
	}
	loans, err := s.LoanRepo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	applicants, err := s.ApplicantRepo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	// 1. Applicant
	borrowerID := domain.NextBorrowerID(applicants, s.idStrategy)
	borrower, err := domain.NewBorrower(borrowerID, req.Borrower.Name, req.Borrower.Phone, req.Borrower.Notes, req.Borrower.FilesPath)
	if err != nil {
		return nil, err
	}
	car, err := domain.NewCar(borrowerID, req.Car.Brand, req.Car.Model)
	if err != nil {
		return nil, err
	}

	// 2. Schedule; without an explicit installment it is derived from the terms
	monthly, err := utils.MonthlyInstallment(req.Principal, req.Rate, req.InstallmentCount)
	if err != nil {
		return nil, err
	}
	if req.MonthlyInstallment != nil {
		monthly = *req.MonthlyInstallment
	}
	schedule, err := domain.GenerateSchedule(domain.ScheduleTerms{
		Principal:          req.Principal,
		Rate:               req.Rate,
		MonthlyInstallment: monthly,
		StartDate:          start,
		InstallmentCount:   req.InstallmentCount,
		Currency:           currency,
	}, nil)
	if err != nil {
		return nil, err
	}

	// 3. Loan
	loanID := domain.NextLoanID(loans, s.idStrategy)
	sequence := domain.NextSequenceForDealership(loans, dealership.ID, s.idStrategy)
	loan, err := domain.NewLoan(loanID, sequence, schedule, borrower, car, dealership)
	if err != nil {
		return nil, err
	}

	if err := s.LoanRepo.Insert(ctx, loan); err != nil {
		return nil, err
	}
	applicant, err := domain.NewPotentialBorrower(borrower)
	if err != nil {
		return nil, err
	}
	if err := s.ApplicantRepo.Insert(ctx, applicant); err != nil {
		s.log.WithError(err).WithField("loan_id", loan.ID()).Error("Loan stored without its potential borrower")
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"loan_id":       loan.ID(),
		"readable_code": loan.ReadableCode(),
		"borrower_id":   borrowerID,
	}).Info("Loan created")
	return loan, nil
}

func (s *LoanService) GetLoan(ctx context.Context, id int) (*domain.Loan, error) {
	return s.LoanRepo.Get(ctx, id)
}

// ListLoans returns every loan, or only those in status when it is set.
func (s *LoanService) ListLoans(ctx context.Context, status *domain.ApprovalStatus) ([]*domain.Loan, error) {
	if status == nil {
		return s.LoanRepo.LoadAll(ctx)
	}
	return s.LoanRepo.LoadByStatus(ctx, *status)
}

// ApproveLoan approves the loan and its applicant, and promotes the
// applicant into the borrowers table.
func (s *LoanService) ApproveLoan(ctx context.Context, id int) (*domain.Loan, error) {
	loan, err := s.LoanRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := loan.Approve(); err != nil {
		return nil, err
	}
	if err := s.LoanRepo.Update(ctx, loan); err != nil {
		return nil, err
	}

	applicant, err := s.decideApplicant(ctx, loan, (*domain.PotentialBorrower).Approve)
	if err != nil {
		return nil, err
	}
	err = s.BorrowerRepo.Insert(ctx, applicant.ToBorrower())
	if err != nil && !errors.Is(err, customError.ErrAlreadyExists) {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"loan_id":       loan.ID(),
		"readable_code": loan.ReadableCode(),
		"borrower_id":   applicant.Borrower.ID,
	}).Info("Loan approved")
	return loan, nil
}

// RejectLoan rejects the loan and its applicant.
func (s *LoanService) RejectLoan(ctx context.Context, id int) (*domain.Loan, error) {
	loan, err := s.LoanRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := loan.Reject(); err != nil {
		return nil, err
	}
	if err := s.LoanRepo.Update(ctx, loan); err != nil {
		return nil, err
	}
	if _, err := s.decideApplicant(ctx, loan, (*domain.PotentialBorrower).Reject); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"loan_id":       loan.ID(),
		"readable_code": loan.ReadableCode(),
	}).Info("Loan rejected")
	return loan, nil
}

// decideApplicant applies decision to the loan's potential borrower. Loans
// stored before applicants were tracked get their applicant created from
// the loan's borrower snapshot.
func (s *LoanService) decideApplicant(ctx context.Context, loan *domain.Loan, decision func(*domain.PotentialBorrower) error) (domain.PotentialBorrower, error) {
	applicant, err := s.ApplicantRepo.Get(ctx, loan.Borrower().ID)
	missing := errors.Is(err, customError.ErrNotFound)
	if err != nil && !missing {
		return domain.PotentialBorrower{}, err
	}
	if missing {
		if applicant, err = domain.NewPotentialBorrower(loan.Borrower()); err != nil {
			return domain.PotentialBorrower{}, err
		}
	}

	if err := decision(&applicant); err != nil {
		return domain.PotentialBorrower{}, err
	}
	if missing {
		err = s.ApplicantRepo.Insert(ctx, applicant)
	} else {
		err = s.ApplicantRepo.Update(ctx, applicant)
	}
	return applicant, err
}
