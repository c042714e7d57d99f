package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusinessError_Is(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		code     string
	}{
		{"validation", WrapValidation("amount", "must not be negative"), ErrValidation, ErrCodeValidation},
		{"not found", WrapNotFound("loan", 7), ErrNotFound, ErrCodeNotFound},
		{"already exists", WrapAlreadyExists("loan", 7), ErrAlreadyExists, ErrCodeAlreadyExists},
		{"arithmetic", WrapArithmetic("installment count must be greater than 0"), ErrArithmetic, ErrCodeArithmetic},
		{"transition", WrapInvalidTransition("loan", "Aprobado", "Rechazado"), ErrInvalidTransition, ErrCodeInvalidTransition},
		{"not approved", WrapLoanNotApproved(3), ErrLoanNotApproved, ErrCodeLoanNotApproved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("context: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.sentinel)
			assert.Equal(t, tt.code, Code(wrapped))
		})
	}
}

func TestWrapStorageError_KeepsCause(t *testing.T) {
	cause := WrapNotFound("table", "loans")
	err := WrapStorageError(cause)

	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, ErrCodeStorageError, Code(err))
	assert.Contains(t, err.Error(), "loans")
}

func TestCode_PlainError(t *testing.T) {
	assert.Empty(t, Code(errors.New("boom")))
}
