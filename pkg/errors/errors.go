package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrAlreadyExists     = errors.New("already exists")
	ErrArithmetic        = errors.New("arithmetic error")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrLoanNotApproved   = errors.New("loan is not approved")
	ErrStorage           = errors.New("storage operation failed")
	ErrCache             = errors.New("cache operation failed")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeAlreadyExists     = "ALREADY_EXISTS"
	ErrCodeArithmetic        = "ARITHMETIC_ERROR"
	ErrCodeInvalidTransition = "INVALID_TRANSITION"
	ErrCodeLoanNotApproved   = "LOAN_NOT_APPROVED"
	ErrCodeStorageError      = "STORAGE_ERROR"
	ErrCodeCacheError        = "CACHE_ERROR"
)

// WrapValidation reports a malformed or out of range field value.
func WrapValidation(field, reason string) *BusinessError {
	return NewBusinessError(
		ErrCodeValidation,
		fmt.Sprintf("invalid %s: %s", field, reason),
		ErrValidation,
	)
}

func WrapNotFound(entity string, key any) *BusinessError {
	return NewBusinessError(
		ErrCodeNotFound,
		fmt.Sprintf("%s with key %v not found", entity, key),
		ErrNotFound,
	)
}

func WrapAlreadyExists(entity string, key any) *BusinessError {
	return NewBusinessError(
		ErrCodeAlreadyExists,
		fmt.Sprintf("%s with key %v already exists", entity, key),
		ErrAlreadyExists,
	)
}

func WrapArithmetic(reason string) *BusinessError {
	return NewBusinessError(
		ErrCodeArithmetic,
		reason,
		ErrArithmetic,
	)
}

func WrapInvalidTransition(entity string, from, to string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidTransition,
		fmt.Sprintf("%s cannot move from %q to %q", entity, from, to),
		ErrInvalidTransition,
	)
}

func WrapLoanNotApproved(loanID int) *BusinessError {
	return NewBusinessError(
		ErrCodeLoanNotApproved,
		fmt.Sprintf("Loan with ID %d is not approved", loanID),
		ErrLoanNotApproved,
	)
}

// WrapStorageError keeps the underlying error reachable through errors.Is
// so that callers can still match ErrNotFound or ErrAlreadyExists.
func WrapStorageError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeStorageError,
		"storage operation failed",
		errors.Join(ErrStorage, err),
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		errors.Join(ErrCache, err),
	)
}

// Code returns the code of the first BusinessError in err's chain, or an
// empty string.
func Code(err error) string {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
