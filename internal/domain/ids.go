package domain

import (
	"strconv"
	"strings"

	customError "github.com/segyhp/dealer-loans/pkg/errors"
)

// IDStrategy selects how the next numeric id of a table is derived.
//
// IDStrategyCount (row count + 1) is the historical behavior and stays the
// default for compatibility with existing tables. It reuses ids once a row
// has been deleted; IDStrategyMax (largest id + 1) does not.
type IDStrategy string

const (
	IDStrategyCount IDStrategy = "count"
	IDStrategyMax   IDStrategy = "max"
)

func ParseIDStrategy(s string) (IDStrategy, error) {
	switch IDStrategy(s) {
	case IDStrategyCount, IDStrategyMax:
		return IDStrategy(s), nil
	default:
		return "", customError.WrapValidation("id strategy", "must be count or max")
	}
}

// NextID derives the next id from the ids already in use.
func NextID(ids []int, strategy IDStrategy) int {
	if strategy != IDStrategyMax {
		return len(ids) + 1
	}
	highest := 0
	for _, id := range ids {
		highest = max(highest, id)
	}
	return highest + 1
}

// NextLoanID derives the id of the next loan.
func NextLoanID(loans []*Loan, strategy IDStrategy) int {
	ids := make([]int, 0, len(loans))
	for _, l := range loans {
		ids = append(ids, l.id)
	}
	return NextID(ids, strategy)
}

// NextBorrowerID derives the id of the next applicant. Every applicant ever
// registered is a potential borrower, whatever its later decision.
func NextBorrowerID(applicants []PotentialBorrower, strategy IDStrategy) int {
	ids := make([]int, 0, len(applicants))
	for _, pb := range applicants {
		ids = append(ids, pb.Borrower.ID)
	}
	return NextID(ids, strategy)
}

// NextDealershipID is always the largest dealership id + 1.
func NextDealershipID(dealerships []Dealership) int {
	ids := make([]int, 0, len(dealerships))
	for _, d := range dealerships {
		ids = append(ids, d.ID)
	}
	return NextID(ids, IDStrategyMax)
}

// NextSequenceForDealership derives the sequence number of the next loan of
// a dealership from the loans whose embedded dealership matches. Under
// IDStrategyMax the sequence is read back from the readable codes.
func NextSequenceForDealership(loans []*Loan, dealershipID int, strategy IDStrategy) int {
	var sequences []int
	for _, l := range loans {
		if l.dealership.ID != dealershipID {
			continue
		}
		seq, _ := sequenceOf(l.readableCode)
		sequences = append(sequences, seq)
	}
	return NextID(sequences, strategy)
}

func sequenceOf(code string) (int, bool) {
	i := strings.LastIndex(code, "-")
	if i < 0 {
		return 0, false
	}
	n, err := strconv.Atoi(code[i+1:])
	if err != nil {
		return 0, false
	}
	return n, true
}
