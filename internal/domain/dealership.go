package domain

import (
	customError "github.com/segyhp/dealer-loans/pkg/errors"
)

// Dealership is a car dealer originating loans. Code is its unique business
// key and prefixes every readable loan code.
type Dealership struct {
	ID    int    `json:"dealership_id"`
	Name  string `json:"name"`
	Code  string `json:"dealership_code"`
	Phone string `json:"phone"`
}

func NewDealership(id int, name, code, phone string) (Dealership, error) {
	d := Dealership{ID: id, Name: name, Code: code, Phone: phone}
	return d, d.Validate()
}

func (d Dealership) Validate() error {
	if d.ID <= 0 {
		return customError.WrapValidation("dealership id", "must be a positive integer")
	}
	if d.Code == "" {
		return customError.WrapValidation("dealership code", "is required")
	}
	return nil
}
