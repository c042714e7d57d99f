package utils

import (
	"fmt"
	"time"

	customError "github.com/segyhp/dealer-loans/pkg/errors"

	"github.com/shopspring/decimal"
)

// DateLayout is the layout used for every date persisted or exchanged.
const DateLayout = "2006-01-02"

var one = decimal.NewFromInt(1)

// TotalPayable calculates the full amount owed over the life of a loan
// Formula: Principal * (Installments * Rate + 1)
func TotalPayable(principal, rate decimal.Decimal, installments int) (decimal.Decimal, error) {
	if installments <= 0 {
		return decimal.Zero, customError.WrapArithmetic("installment count must be greater than 0")
	}
	return principal.Mul(interestFactor(rate, installments)), nil
}

// MonthlyInstallment calculates the monthly installment amount
// Formula: TotalPayable / Installments
func MonthlyInstallment(principal, rate decimal.Decimal, installments int) (decimal.Decimal, error) {
	total, err := TotalPayable(principal, rate, installments)
	if err != nil {
		return decimal.Zero, err
	}
	return total.Div(decimal.NewFromInt(int64(installments))), nil
}

// PrincipalFromInstallment is the inverse of TotalPayable: it returns the
// principal that produces the given total payable amount.
func PrincipalFromInstallment(amount, rate decimal.Decimal, installments int) (decimal.Decimal, error) {
	if installments <= 0 {
		return decimal.Zero, customError.WrapArithmetic("installment count must be greater than 0")
	}
	return amount.Div(interestFactor(rate, installments)), nil
}

func interestFactor(rate decimal.Decimal, installments int) decimal.Decimal {
	return decimal.NewFromInt(int64(installments)).Mul(rate).Add(one)
}

// AddMonths moves t forward by the given number of calendar months. When the
// target month is shorter, the day is clamped to its last day
// (2025-01-31 + 1 month = 2025-02-28).
func AddMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// DateOnly drops the clock part of t and pins it to UTC midnight.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// FormatDate formats t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ZeroPad left pads n with zeros to width digits. Width is a minimum: numbers
// with more digits are returned unchanged.
func ZeroPad(n, width int) string {
	return fmt.Sprintf("%0*d", width, n)
}

// IsDateOverdue checks if a date is before the reference date
func IsDateOverdue(dueDate, reference time.Time) bool {
	return DateOnly(reference).After(DateOnly(dueDate))
}

// DecimalFromString converts string to decimal.Decimal
func DecimalFromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}
