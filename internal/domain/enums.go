package domain

import (
	"fmt"

	customError "github.com/segyhp/dealer-loans/pkg/errors"
)

// The labels below are the persisted representation of every enum. They are
// part of the storage format and must not change.

// PaymentStatus is the payment state of a single installment.
type PaymentStatus int

const (
	PaymentPending PaymentStatus = iota + 1
	PaymentPaid
	PaymentCancelled
)

var paymentStatusLabels = enumTable[PaymentStatus]{
	name: "payment status",
	labels: map[PaymentStatus]string{
		PaymentPending:   "pendiente",
		PaymentPaid:      "pago",
		PaymentCancelled: "cancelado",
	},
}

func (s PaymentStatus) String() string                { return paymentStatusLabels.label(s) }
func (s PaymentStatus) Valid() bool                   { return paymentStatusLabels.valid(s) }
func (s PaymentStatus) MarshalText() ([]byte, error)  { return paymentStatusLabels.marshal(s) }
func (s *PaymentStatus) UnmarshalText(b []byte) error { return paymentStatusLabels.unmarshal(b, s) }

// ParsePaymentStatus maps a persisted label back to its PaymentStatus.
func ParsePaymentStatus(label string) (PaymentStatus, error) {
	return paymentStatusLabels.parse(label)
}

// Currency is the currency a loan is denominated in.
type Currency int

const (
	CurrencyUSD Currency = iota + 1
	CurrencyUYU
	CurrencyEUR
)

var currencyLabels = enumTable[Currency]{
	name: "currency",
	labels: map[Currency]string{
		CurrencyUSD: "USD",
		CurrencyUYU: "UYU",
		CurrencyEUR: "EUR",
	},
	order: []Currency{CurrencyUSD, CurrencyUYU, CurrencyEUR},
}

func (c Currency) String() string                { return currencyLabels.label(c) }
func (c Currency) Valid() bool                   { return currencyLabels.valid(c) }
func (c Currency) MarshalText() ([]byte, error)  { return currencyLabels.marshal(c) }
func (c *Currency) UnmarshalText(b []byte) error { return currencyLabels.unmarshal(b, c) }

// ParseCurrency maps an ISO code to its Currency.
func ParseCurrency(code string) (Currency, error) {
	return currencyLabels.parse(code)
}

// Currencies lists the supported currency codes in display order.
func Currencies() []string {
	out := make([]string, 0, len(currencyLabels.order))
	for _, c := range currencyLabels.order {
		out = append(out, c.String())
	}
	return out
}

// ApprovalStatus is the decision state shared by loans and potential
// borrowers.
type ApprovalStatus int

const (
	StatusPotential ApprovalStatus = iota + 1
	StatusRejected
	StatusApproved
)

var approvalStatusLabels = enumTable[ApprovalStatus]{
	name: "approval status",
	labels: map[ApprovalStatus]string{
		StatusPotential: "Pendiente de Aprobación",
		StatusRejected:  "Rechazado",
		StatusApproved:  "Aprobado",
	},
}

func (s ApprovalStatus) String() string                { return approvalStatusLabels.label(s) }
func (s ApprovalStatus) Valid() bool                   { return approvalStatusLabels.valid(s) }
func (s ApprovalStatus) MarshalText() ([]byte, error)  { return approvalStatusLabels.marshal(s) }
func (s *ApprovalStatus) UnmarshalText(b []byte) error { return approvalStatusLabels.unmarshal(b, s) }

// ParseApprovalStatus maps a persisted label back to its ApprovalStatus.
func ParseApprovalStatus(label string) (ApprovalStatus, error) {
	return approvalStatusLabels.parse(label)
}

// decide applies an approval decision. POTENTIAL moves to either decision,
// repeating the current decision is a no-op and switching a decided entity
// to the opposite decision is refused.
func decide(entity string, current, target ApprovalStatus) (ApprovalStatus, error) {
	switch {
	case current == target:
		return current, nil
	case current == StatusPotential && (target == StatusApproved || target == StatusRejected):
		return target, nil
	default:
		return current, customError.WrapInvalidTransition(entity, current.String(), target.String())
	}
}

type enumTable[T ~int] struct {
	name   string
	labels map[T]string
	order  []T
}

func (t enumTable[T]) label(v T) string {
	if l, ok := t.labels[v]; ok {
		return l
	}
	return fmt.Sprintf("%s(%d)", t.name, any(v))
}

func (t enumTable[T]) valid(v T) bool {
	_, ok := t.labels[v]
	return ok
}

func (t enumTable[T]) parse(label string) (T, error) {
	for v, l := range t.labels {
		if l == label {
			return v, nil
		}
	}
	var zero T
	return zero, customError.WrapValidation(t.name, fmt.Sprintf("unknown value %q", label))
}

func (t enumTable[T]) marshal(v T) ([]byte, error) {
	l, ok := t.labels[v]
	if !ok {
		return nil, customError.WrapValidation(t.name, fmt.Sprintf("unknown value %d", any(v)))
	}
	return []byte(l), nil
}

func (t enumTable[T]) unmarshal(b []byte, dst *T) error {
	v, err := t.parse(string(b))
	if err != nil {
		return err
	}
	*dst = v
	return nil
}
