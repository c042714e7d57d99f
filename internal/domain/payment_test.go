package domain

import (
	"testing"
	"time"

	customError "github.com/segyhp/dealer-loans/pkg/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPayment(t *testing.T) {
	p, err := NewPayment(12345678, decimal.NewFromInt(100), date(2025, 1, 1), 0)
	require.NoError(t, err)

	assert.Equal(t, 12345678, p.ID())
	assert.True(t, p.Amount().Equal(decimal.NewFromInt(100)))
	assert.Equal(t, date(2025, 1, 1), p.DueDate())
	assert.Equal(t, PaymentPending, p.Status())
	_, paid := p.PaidDate()
	assert.False(t, paid)
}

func TestNewPayment_DropsClock(t *testing.T) {
	p, err := NewPayment(1, decimal.NewFromInt(100), time.Date(2025, 1, 1, 17, 30, 0, 0, time.UTC), PaymentPending)
	require.NoError(t, err)
	assert.Equal(t, date(2025, 1, 1), p.DueDate())
}

func TestNewPayment_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		id     int
		amount decimal.Decimal
		due    time.Time
		status PaymentStatus
	}{
		{"negative amount", 1, decimal.NewFromInt(-100), date(2025, 1, 1), PaymentPaid},
		{"negative id", -12345678, decimal.NewFromInt(100), date(2025, 1, 1), PaymentPaid},
		{"zero id", 0, decimal.NewFromInt(100), date(2025, 1, 1), PaymentPaid},
		{"missing due date", 1, decimal.NewFromInt(100), time.Time{}, PaymentPending},
		{"unknown status", 1, decimal.NewFromInt(100), date(2025, 1, 1), PaymentStatus(42)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPayment(tt.id, tt.amount, tt.due, tt.status)
			assert.ErrorIs(t, err, customError.ErrValidation)
		})
	}
}

func TestPayment_ChangeAmount(t *testing.T) {
	p, err := NewPayment(1, decimal.NewFromInt(100), date(2025, 1, 1), PaymentPending)
	require.NoError(t, err)

	require.NoError(t, p.ChangeAmount(decimal.Zero))
	assert.True(t, p.Amount().IsZero())

	err = p.ChangeAmount(decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, customError.ErrValidation)
	assert.True(t, p.Amount().IsZero(), "rejected amount must not be applied")
}

func TestPayment_ChangePaidDate_MarksPaid(t *testing.T) {
	p, err := NewPayment(1, decimal.NewFromInt(100), date(2025, 1, 1), PaymentPending)
	require.NoError(t, err)

	require.NoError(t, p.ChangePaidDate(date(2025, 1, 3)))

	assert.Equal(t, PaymentPaid, p.Status())
	paid, ok := p.PaidDate()
	require.True(t, ok)
	assert.Equal(t, date(2025, 1, 3), paid)
	assert.NoError(t, p.Validate())
}

func TestPayment_ChangeStatus_ClearsPaidDate(t *testing.T) {
	p, err := NewPayment(1, decimal.NewFromInt(100), date(2025, 1, 1), PaymentPending)
	require.NoError(t, err)
	require.NoError(t, p.ChangePaidDate(date(2025, 1, 3)))

	require.NoError(t, p.ChangeStatus(PaymentCancelled))

	assert.Equal(t, PaymentCancelled, p.Status())
	_, ok := p.PaidDate()
	assert.False(t, ok)
	assert.NoError(t, p.Validate())
}

func TestPayment_ChangeStatus_Unknown(t *testing.T) {
	p, err := NewPayment(1, decimal.NewFromInt(100), date(2025, 1, 1), PaymentPending)
	require.NoError(t, err)

	assert.ErrorIs(t, p.ChangeStatus(0), customError.ErrValidation)
	assert.Equal(t, PaymentPending, p.Status())
}

func TestPayment_ChangeDueDate(t *testing.T) {
	p, err := NewPayment(1, decimal.NewFromInt(100), date(2025, 1, 1), PaymentPending)
	require.NoError(t, err)

	require.NoError(t, p.ChangeDueDate(date(2025, 2, 15)))
	assert.Equal(t, date(2025, 2, 15), p.DueDate())
	assert.ErrorIs(t, p.ChangeDueDate(time.Time{}), customError.ErrValidation)
}

func TestPayment_MarkPaidThenCancelled(t *testing.T) {
	p, err := NewPayment(1, decimal.NewFromInt(100), date(2025, 1, 1), PaymentPending)
	require.NoError(t, err)

	require.NoError(t, p.MarkPaid(date(2025, 1, 5)))
	assert.Equal(t, PaymentPaid, p.Status())

	p.MarkCancelled()
	assert.Equal(t, PaymentCancelled, p.Status())
	_, ok := p.PaidDate()
	assert.False(t, ok)
}

func TestPayment_CloneIsIndependent(t *testing.T) {
	p, err := NewPayment(1, decimal.NewFromInt(100), date(2025, 1, 1), PaymentPending)
	require.NoError(t, err)
	require.NoError(t, p.ChangePaidDate(date(2025, 1, 2)))

	c := p.Clone()
	assert.True(t, c.Equal(p))

	require.NoError(t, c.ChangePaidDate(date(2025, 1, 9)))
	assert.False(t, c.Equal(p))
	paid, _ := p.PaidDate()
	assert.Equal(t, date(2025, 1, 2), paid)
}
