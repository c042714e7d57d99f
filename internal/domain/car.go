package domain

import (
	customError "github.com/segyhp/dealer-loans/pkg/errors"
)

// Car is the vehicle financed by a loan. OwnerBorrowerID is a copy of the
// borrower id, not a live reference.
type Car struct {
	OwnerBorrowerID int    `json:"borrower_id"`
	Brand           string `json:"brand"`
	Model           string `json:"model"`
}

func NewCar(ownerBorrowerID int, brand, model string) (Car, error) {
	c := Car{OwnerBorrowerID: ownerBorrowerID, Brand: brand, Model: model}
	return c, c.Validate()
}

func (c Car) Validate() error {
	if c.OwnerBorrowerID <= 0 {
		return customError.WrapValidation("car owner borrower id", "must be a positive integer")
	}
	return nil
}
