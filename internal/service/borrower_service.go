package service

import (
	"context"

	"github.com/segyhp/dealer-loans/internal/domain"
	"github.com/segyhp/dealer-loans/internal/repository"

	"github.com/sirupsen/logrus"
)

// BorrowerService exposes the master borrower table and the applicants.
type BorrowerService struct {
	BorrowerRepo  repository.BorrowerRepository
	ApplicantRepo repository.PotentialBorrowerRepository
	log           *logrus.Logger
}

func NewBorrowerService(borrowerRepo repository.BorrowerRepository, applicantRepo repository.PotentialBorrowerRepository, log *logrus.Logger) *BorrowerService {
	return &BorrowerService{BorrowerRepo: borrowerRepo, ApplicantRepo: applicantRepo, log: log}
}

func (s *BorrowerService) ListBorrowers(ctx context.Context) ([]domain.Borrower, error) {
	return s.BorrowerRepo.LoadAll(ctx)
}

func (s *BorrowerService) GetBorrower(ctx context.Context, id int) (domain.Borrower, error) {
	return s.BorrowerRepo.Get(ctx, id)
}

// ListApplicants returns every potential borrower, or only those in status
// when it is set.
func (s *BorrowerService) ListApplicants(ctx context.Context, status *domain.ApprovalStatus) ([]domain.PotentialBorrower, error) {
	all, err := s.ApplicantRepo.LoadAll(ctx)
	if err != nil || status == nil {
		return all, err
	}
	var out []domain.PotentialBorrower
	for _, pb := range all {
		if pb.Status == *status {
			out = append(out, pb)
		}
	}
	return out, nil
}

// EditBorrower changes the master borrower record only. The snapshots held
// by loans are not touched.
func (s *BorrowerService) EditBorrower(ctx context.Context, id int, in BorrowerInput) (domain.Borrower, error) {
	if _, err := s.BorrowerRepo.Get(ctx, id); err != nil {
		return domain.Borrower{}, err
	}
	b, err := domain.NewBorrower(id, in.Name, in.Phone, in.Notes, in.FilesPath)
	if err != nil {
		return domain.Borrower{}, err
	}
	if err := s.BorrowerRepo.Update(ctx, b); err != nil {
		return domain.Borrower{}, err
	}

	s.log.WithField("borrower_id", id).Info("Borrower edited")
	return b, nil
}
