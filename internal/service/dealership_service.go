package service

import (
	"context"
	"strings"

	"github.com/segyhp/dealer-loans/internal/domain"
	"github.com/segyhp/dealer-loans/internal/repository"
	customError "github.com/segyhp/dealer-loans/pkg/errors"

	"github.com/sirupsen/logrus"
)

type DealershipService struct {
	DealershipRepo repository.DealershipRepository
	log            *logrus.Logger
}

func NewDealershipService(dealershipRepo repository.DealershipRepository, log *logrus.Logger) *DealershipService {
	return &DealershipService{DealershipRepo: dealershipRepo, log: log}
}

func (s *DealershipService) ListDealerships(ctx context.Context) ([]domain.Dealership, error) {
	return s.DealershipRepo.LoadAll(ctx)
}

func (s *DealershipService) GetDealership(ctx context.Context, id int) (domain.Dealership, error) {
	return s.DealershipRepo.Get(ctx, id)
}

// AddDealership stores a new dealership under the next free id. Codes are
// unique across dealerships.
func (s *DealershipService) AddDealership(ctx context.Context, req DealershipRequest) (domain.Dealership, error) {
	all, err := s.DealershipRepo.LoadAll(ctx)
	if err != nil {
		return domain.Dealership{}, err
	}
	code := normalizeCode(req.Code)
	if err := codeAvailable(all, code, 0); err != nil {
		return domain.Dealership{}, err
	}

	d, err := domain.NewDealership(domain.NextDealershipID(all), strings.TrimSpace(req.Name), code, strings.TrimSpace(req.Phone))
	if err != nil {
		return domain.Dealership{}, err
	}
	if err := s.DealershipRepo.Insert(ctx, d); err != nil {
		return domain.Dealership{}, err
	}

	s.log.WithFields(logrus.Fields{"dealership_id": d.ID, "dealership_code": d.Code}).Info("Dealership added")
	return d, nil
}

// EditDealership replaces the dealership master record. Loans keep the
// snapshot taken when they were created.
func (s *DealershipService) EditDealership(ctx context.Context, id int, req DealershipRequest) (domain.Dealership, error) {
	all, err := s.DealershipRepo.LoadAll(ctx)
	if err != nil {
		return domain.Dealership{}, err
	}
	code := normalizeCode(req.Code)
	if err := codeAvailable(all, code, id); err != nil {
		return domain.Dealership{}, err
	}

	d, err := domain.NewDealership(id, strings.TrimSpace(req.Name), code, strings.TrimSpace(req.Phone))
	if err != nil {
		return domain.Dealership{}, err
	}
	if err := s.DealershipRepo.Update(ctx, d); err != nil {
		return domain.Dealership{}, err
	}

	s.log.WithFields(logrus.Fields{"dealership_id": d.ID, "dealership_code": d.Code}).Info("Dealership edited")
	return d, nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// codeAvailable fails when a dealership other than selfID already uses code.
func codeAvailable(all []domain.Dealership, code string, selfID int) error {
	for _, d := range all {
		if d.ID != selfID && strings.EqualFold(d.Code, code) {
			return customError.WrapAlreadyExists("dealership code", code)
		}
	}
	return nil
}
