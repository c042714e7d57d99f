// Package reminder logs the installments that need attention: pending ones
// falling due soon and pending ones already overdue.
package reminder

import (
	"context"
	"time"

	"github.com/segyhp/dealer-loans/internal/service"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// InstallmentLister is the part of the payment service the job reads.
type InstallmentLister interface {
	UpcomingInstallments(ctx context.Context, from time.Time, days int) ([]service.InstallmentView, error)
	OverdueInstallments(ctx context.Context, reference time.Time) ([]service.InstallmentView, error)
}

type Job struct {
	payments InstallmentLister
	days     int
	log      *logrus.Logger
	now      func() time.Time
}

func NewJob(payments InstallmentLister, days int, log *logrus.Logger, loc *time.Location) *Job {
	return &Job{
		payments: payments,
		days:     days,
		log:      log,
		now:      func() time.Time { return time.Now().In(loc) },
	}
}

// Run logs one entry per installment and a summary. Errors are logged and
// returned.
func (j *Job) Run(ctx context.Context) error {
	today := j.now()

	upcoming, err := j.payments.UpcomingInstallments(ctx, today, j.days)
	if err != nil {
		j.log.WithError(err).Error("Failed to list upcoming installments")
		return err
	}
	for _, v := range upcoming {
		j.entry(v).Info("Installment due soon")
	}

	overdue, err := j.payments.OverdueInstallments(ctx, today)
	if err != nil {
		j.log.WithError(err).Error("Failed to list overdue installments")
		return err
	}
	for _, v := range overdue {
		j.entry(v).Warn("Installment overdue")
	}

	j.log.WithFields(logrus.Fields{
		"upcoming": len(upcoming),
		"overdue":  len(overdue),
		"days":     j.days,
	}).Info("Payment reminder job finished")
	return nil
}

func (j *Job) entry(v service.InstallmentView) *logrus.Entry {
	return j.log.WithFields(logrus.Fields{
		"loan_id":       v.LoanID,
		"readable_code": v.ReadableCode,
		"payment_id":    v.ID,
		"borrower":      v.BorrowerName,
		"due_date":      v.DueDate,
		"amount":        v.AmountDisplay,
	})
}

// Schedule registers the job on c under the cron expression expr.
func (j *Job) Schedule(c *cron.Cron, expr string) (cron.EntryID, error) {
	return c.AddFunc(expr, func() {
		j.log.Info("Running payment reminder job...")
		_ = j.Run(context.Background())
	})
}
