package repository

import (
	customError "github.com/segyhp/dealer-loans/pkg/errors"
)

// Table names.
const (
	TableLoans              = "loans"
	TableBorrowers          = "borrowers"
	TablePotentialBorrowers = "potential_borrowers"
	TableDealerships        = "dealerships"
)

var tableColumns = map[string][]string{
	TableLoans:              {"id", "readable_code", "status", "schedule", "borrower", "car", "dealership"},
	TableBorrowers:          {"borrower_id", "name", "phone", "notes", "files_path"},
	TablePotentialBorrowers: {"borrower_id", "name", "phone", "notes", "files_path", "status"},
	TableDealerships:        {"dealership_id", "name", "dealership_code", "phone"},
}

// Tables lists every table in initialization order.
func Tables() []string {
	return []string{TableDealerships, TableBorrowers, TablePotentialBorrowers, TableLoans}
}

// Columns returns the ordered column list of a table.
func Columns(table string) ([]string, error) {
	cols, ok := tableColumns[table]
	if !ok {
		return nil, customError.WrapNotFound("table", table)
	}
	return append([]string(nil), cols...), nil
}

// conform checks that every record of table carries exactly its columns.
func conform(table string, records []Record) error {
	cols, err := Columns(table)
	if err != nil {
		return err
	}
	for _, r := range records {
		if len(r) != len(cols) {
			return customError.WrapValidation(table+" record", "unexpected column count")
		}
		for _, c := range cols {
			if _, ok := r[c]; !ok {
				return customError.WrapValidation(table+" record", "missing column "+c)
			}
		}
	}
	return nil
}

func cloneRecords(records []Record) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		c := make(Record, len(r))
		for k, v := range r {
			c[k] = v
		}
		out[i] = c
	}
	return out
}
