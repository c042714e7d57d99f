package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segyhp/dealer-loans/internal/domain"
	customError "github.com/segyhp/dealer-loans/pkg/errors"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	loanKeyPrefix = "loan:"
	loanTableKey  = "loans:all"
)

// cachedLoanRepository is a read-through cache in front of a LoanRepository.
// Entries hold the flat loan record, so a cached loan is decoded and
// validated exactly like a stored one. Cache failures are logged and the
// call falls through to the wrapped repository.
type cachedLoanRepository struct {
	next   LoanRepository
	redis  *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

func NewCachedLoanRepository(next LoanRepository, client *redis.Client, ttl time.Duration, logger *logrus.Logger) LoanRepository {
	return &cachedLoanRepository{next: next, redis: client, ttl: ttl, logger: logger}
}

func loanKey(id int) string {
	return fmt.Sprintf("%s%d", loanKeyPrefix, id)
}

func (r *cachedLoanRepository) LoadAll(ctx context.Context) ([]*domain.Loan, error) {
	if loans, ok := r.readLoans(ctx, loanTableKey); ok {
		return loans, nil
	}
	loans, err := r.next.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	r.writeLoans(ctx, loanTableKey, loans)
	return loans, nil
}

func (r *cachedLoanRepository) LoadByStatus(ctx context.Context, status domain.ApprovalStatus) ([]*domain.Loan, error) {
	all, err := r.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	var loans []*domain.Loan
	for _, l := range all {
		if l.Status() == status {
			loans = append(loans, l)
		}
	}
	return loans, nil
}

func (r *cachedLoanRepository) Get(ctx context.Context, id int) (*domain.Loan, error) {
	if loans, ok := r.readLoans(ctx, loanKey(id)); ok && len(loans) == 1 {
		return loans[0], nil
	}
	loan, err := r.next.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	r.writeLoans(ctx, loanKey(id), []*domain.Loan{loan})
	return loan, nil
}

func (r *cachedLoanRepository) Insert(ctx context.Context, loan *domain.Loan) error {
	if err := r.next.Insert(ctx, loan); err != nil {
		return err
	}
	r.invalidate(ctx, loan.ID())
	return nil
}

func (r *cachedLoanRepository) Update(ctx context.Context, loan *domain.Loan) error {
	if err := r.next.Update(ctx, loan); err != nil {
		return err
	}
	r.invalidate(ctx, loan.ID())
	return nil
}

func (r *cachedLoanRepository) readLoans(ctx context.Context, key string) ([]*domain.Loan, bool) {
	raw, err := r.redis.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		r.warn(key, customError.WrapCacheError(err))
		return nil, false
	}

	var records []domain.LoanRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		r.warn(key, customError.WrapCacheError(err))
		return nil, false
	}
	loans := make([]*domain.Loan, 0, len(records))
	for _, rec := range records {
		l, err := domain.LoanFromRecord(rec)
		if err != nil {
			r.warn(key, err)
			return nil, false
		}
		loans = append(loans, l)
	}
	return loans, true
}

func (r *cachedLoanRepository) writeLoans(ctx context.Context, key string, loans []*domain.Loan) {
	records := make([]domain.LoanRecord, 0, len(loans))
	for _, l := range loans {
		rec, err := l.ToRecord()
		if err != nil {
			r.warn(key, err)
			return
		}
		records = append(records, rec)
	}
	raw, err := json.Marshal(records)
	if err != nil {
		r.warn(key, customError.WrapCacheError(err))
		return
	}
	if err := r.redis.Set(ctx, key, raw, r.ttl).Err(); err != nil {
		r.warn(key, customError.WrapCacheError(err))
	}
}

func (r *cachedLoanRepository) invalidate(ctx context.Context, id int) {
	if err := r.redis.Del(ctx, loanKey(id), loanTableKey).Err(); err != nil {
		r.warn(loanKey(id), customError.WrapCacheError(err))
	}
}

func (r *cachedLoanRepository) warn(key string, err error) {
	r.logger.WithError(err).WithField("key", key).Warn("loan cache unavailable, using storage")
}
