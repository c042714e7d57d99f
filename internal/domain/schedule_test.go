package domain

import (
	"testing"

	customError "github.com/segyhp/dealer-loans/pkg/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSchedule(t *testing.T) {
	s := charlesSchedule(t)

	require.Equal(t, 12, s.Len())
	assert.Equal(t, 12, s.InstallmentCount())

	payments := s.Payments()
	for k, p := range payments {
		assert.Equal(t, k+1, p.ID())
		assert.Equal(t, PaymentPending, p.Status())
		assert.True(t, p.Amount().Equal(decimal.NewFromInt(1000)))
	}
	assert.Equal(t, date(2025, 7, 1), payments[0].DueDate())
	assert.Equal(t, date(2025, 8, 1), payments[1].DueDate())
	assert.Equal(t, date(2025, 12, 1), payments[5].DueDate())
	assert.Equal(t, date(2026, 1, 1), payments[6].DueDate())
	assert.Equal(t, date(2026, 6, 1), payments[11].DueDate())
}

func TestGenerateSchedule_CustomIDs(t *testing.T) {
	terms := charlesTerms()
	ids := []int{10, 20, 30, 40, 50, 60, 70, 80, 90, 100, 110, 120}

	s, err := GenerateSchedule(terms, ids)
	require.NoError(t, err)

	p, err := s.Get(10)
	require.NoError(t, err)
	assert.Equal(t, date(2025, 7, 1), p.DueDate())

	p, err = s.Get(120)
	require.NoError(t, err)
	assert.Equal(t, date(2026, 6, 1), p.DueDate())
}

func TestGenerateSchedule_ClampsEndOfMonth(t *testing.T) {
	terms := charlesTerms()
	terms.StartDate = date(2025, 1, 31)
	terms.InstallmentCount = 3

	s, err := GenerateSchedule(terms, nil)
	require.NoError(t, err)

	payments := s.Payments()
	assert.Equal(t, date(2025, 1, 31), payments[0].DueDate())
	assert.Equal(t, date(2025, 2, 28), payments[1].DueDate())
	assert.Equal(t, date(2025, 3, 31), payments[2].DueDate())
}

func TestGenerateSchedule_InvalidIDs(t *testing.T) {
	terms := charlesTerms()
	terms.InstallmentCount = 3

	_, err := GenerateSchedule(terms, []int{1, 2})
	assert.ErrorIs(t, err, customError.ErrValidation)

	_, err = GenerateSchedule(terms, []int{1, 2, 2})
	assert.ErrorIs(t, err, customError.ErrValidation)

	_, err = GenerateSchedule(terms, []int{1, 2, 0})
	assert.ErrorIs(t, err, customError.ErrValidation)
}

func TestGenerateSchedule_Rate(t *testing.T) {
	tests := []struct {
		rate    string
		wantErr bool
	}{
		{"0", true},
		{"1", true},
		{"-0.1", true},
		{"1.5", true},
		{"0.5", false},
		{"0.0001", false},
		{"0.9999", false},
	}

	for _, tt := range tests {
		t.Run(tt.rate, func(t *testing.T) {
			terms := charlesTerms()
			terms.Rate = decimal.RequireFromString(tt.rate)
			_, err := GenerateSchedule(terms, nil)
			if tt.wantErr {
				assert.ErrorIs(t, err, customError.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGenerateSchedule_InvalidTerms(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ScheduleTerms)
	}{
		{"zero principal", func(t *ScheduleTerms) { t.Principal = decimal.Zero }},
		{"zero installment", func(t *ScheduleTerms) { t.MonthlyInstallment = decimal.Zero }},
		{"zero count", func(t *ScheduleTerms) { t.InstallmentCount = 0 }},
		{"unknown currency", func(t *ScheduleTerms) { t.Currency = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			terms := charlesTerms()
			tt.mutate(&terms)
			_, err := GenerateSchedule(terms, nil)
			assert.ErrorIs(t, err, customError.ErrValidation)
		})
	}
}

func TestSchedule_Totals(t *testing.T) {
	s := charlesSchedule(t)

	assert.True(t, s.Total().Equal(decimal.NewFromInt(12000)))
	assert.True(t, s.TotalPaid().IsZero())
	assert.True(t, s.TotalPending().Equal(decimal.NewFromInt(12000)))

	p, err := s.Get(3)
	require.NoError(t, err)
	require.NoError(t, p.ChangeAmount(decimal.RequireFromString("1250.50")))
	require.NoError(t, p.ChangePaidDate(date(2025, 9, 2)))

	assert.True(t, s.TotalPaid().Equal(decimal.RequireFromString("1250.50")))
	assert.True(t, s.TotalPending().Equal(decimal.NewFromInt(11000)))
	assert.True(t, s.Total().Equal(s.TotalPaid().Add(s.TotalPending())))
}

func TestSchedule_MarkPaidMovesExactAmount(t *testing.T) {
	s := charlesSchedule(t)
	paidBefore, pendingBefore := s.TotalPaid(), s.TotalPending()

	require.NoError(t, s.ChangePaymentStatus(5, PaymentPaid))

	assert.True(t, s.TotalPaid().Sub(paidBefore).Equal(decimal.NewFromInt(1000)))
	assert.True(t, pendingBefore.Sub(s.TotalPending()).Equal(decimal.NewFromInt(1000)))
}

func TestSchedule_CancelledIsExcluded(t *testing.T) {
	s := charlesSchedule(t)
	require.NoError(t, s.ChangePaymentStatus(1, PaymentPaid))
	require.NoError(t, s.ChangePaymentStatus(2, PaymentCancelled))

	assert.True(t, s.TotalPaid().Equal(decimal.NewFromInt(1000)))
	assert.True(t, s.TotalPending().Equal(decimal.NewFromInt(10000)))
	assert.True(t, s.TotalCancelled().Equal(decimal.NewFromInt(1000)))
	assert.True(t, s.Total().Equal(s.TotalPaid().Add(s.TotalPending()).Add(s.TotalCancelled())))
}

func TestSchedule_GetMissing(t *testing.T) {
	s := charlesSchedule(t)

	_, err := s.Get(99)
	assert.ErrorIs(t, err, customError.ErrNotFound)
	assert.ErrorIs(t, s.ChangePaymentStatus(99, PaymentPaid), customError.ErrNotFound)
}

func TestSchedule_AddAndRemove(t *testing.T) {
	s := charlesSchedule(t)

	extra, err := NewPayment(13, decimal.NewFromInt(500), date(2026, 7, 1), PaymentPending)
	require.NoError(t, err)
	require.NoError(t, s.Add(extra))
	assert.Equal(t, 13, s.Len())
	assert.Equal(t, 13, s.InstallmentCount())

	dup, err := NewPayment(13, decimal.NewFromInt(1), date(2026, 8, 1), PaymentPending)
	require.NoError(t, err)
	assert.ErrorIs(t, s.Add(dup), customError.ErrAlreadyExists)
	assert.Equal(t, 13, s.Len())

	require.NoError(t, s.Remove(1))
	assert.Equal(t, 12, s.Len())
	assert.Equal(t, 12, s.InstallmentCount())
	assert.ErrorIs(t, s.Remove(1), customError.ErrNotFound)
}

func TestSchedule_RemoveKeepsLastInstallment(t *testing.T) {
	terms := charlesTerms()
	terms.InstallmentCount = 1
	s, err := GenerateSchedule(terms, nil)
	require.NoError(t, err)

	assert.ErrorIs(t, s.Remove(1), customError.ErrValidation)
	assert.Equal(t, 1, s.Len())
}

func TestRestoreSchedule_CountMismatch(t *testing.T) {
	s := charlesSchedule(t)
	terms := s.Terms()
	terms.InstallmentCount = 11

	_, err := RestoreSchedule(terms, s.Payments())
	assert.ErrorIs(t, err, customError.ErrValidation)
}

func TestSchedule_CloneIsDeep(t *testing.T) {
	s := charlesSchedule(t)
	c := s.Clone()
	require.True(t, c.Equal(s))

	require.NoError(t, c.ChangePaymentStatus(1, PaymentPaid))
	assert.False(t, c.Equal(s))

	p, err := s.Get(1)
	require.NoError(t, err)
	assert.Equal(t, PaymentPending, p.Status())
}

func TestSchedule_Replace(t *testing.T) {
	s := charlesSchedule(t)

	p, err := NewPayment(4, decimal.NewFromInt(900), date(2025, 10, 15), PaymentCancelled)
	require.NoError(t, err)
	require.NoError(t, s.Replace(p))

	got, err := s.Get(4)
	require.NoError(t, err)
	assert.True(t, got.Equal(p))
	assert.Equal(t, 12, s.Len())

	missing, err := NewPayment(40, decimal.NewFromInt(1), date(2025, 10, 15), PaymentPending)
	require.NoError(t, err)
	assert.ErrorIs(t, s.Replace(missing), customError.ErrNotFound)
}
