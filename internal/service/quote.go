package service

import (
	"github.com/segyhp/dealer-loans/internal/domain"
	customError "github.com/segyhp/dealer-loans/pkg/errors"
	"github.com/segyhp/dealer-loans/pkg/utils"

	"github.com/shopspring/decimal"
)

// Quote computes the terms of a prospective loan. Given a principal it
// returns the monthly installment; given an installment it returns the
// principal that produces it. The currency defaults to defaultCurrency.
func Quote(req QuoteRequest, defaultCurrency domain.Currency) (QuoteView, error) {
	if (req.Principal == nil) == (req.MonthlyInstallment == nil) {
		return QuoteView{}, customError.WrapValidation("quote", "exactly one of principal and monthly_installment is required")
	}
	currency := defaultCurrency
	if req.Currency != "" {
		c, err := domain.ParseCurrency(req.Currency)
		if err != nil {
			return QuoteView{}, err
		}
		currency = c
	}

	q := QuoteView{Rate: req.Rate, InstallmentCount: req.InstallmentCount, Currency: currency}
	var err error
	if req.Principal != nil {
		q.Principal = *req.Principal
		if q.MonthlyInstallment, err = utils.MonthlyInstallment(q.Principal, req.Rate, req.InstallmentCount); err != nil {
			return QuoteView{}, err
		}
	} else {
		q.MonthlyInstallment = *req.MonthlyInstallment
		total := q.MonthlyInstallment.Mul(decimal.NewFromInt(int64(req.InstallmentCount)))
		if q.Principal, err = utils.PrincipalFromInstallment(total, req.Rate, req.InstallmentCount); err != nil {
			return QuoteView{}, err
		}
	}
	if q.TotalPayable, err = utils.TotalPayable(q.Principal, req.Rate, req.InstallmentCount); err != nil {
		return QuoteView{}, err
	}

	q.MonthlyInstallmentDisplay = domain.FormatMoney(q.MonthlyInstallment, currency)
	q.TotalPayableDisplay = domain.FormatMoney(q.TotalPayable, currency)
	return q, nil
}
