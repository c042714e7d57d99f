package handler

import (
	"net/http"

	"github.com/segyhp/dealer-loans/internal/domain"
	"github.com/segyhp/dealer-loans/internal/service"
	"github.com/segyhp/dealer-loans/pkg/response"
	"github.com/segyhp/dealer-loans/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// QuoteHandler serves the installment calculator. It needs no storage.
type QuoteHandler struct {
	defaultCurrency domain.Currency
	validator       *validator.Validate
}

func NewQuoteHandler(defaultCurrency domain.Currency) *QuoteHandler {
	return &QuoteHandler{
		defaultCurrency: defaultCurrency,
		validator:       validation.New(),
	}
}

// Quote handles POST /quote
func (h *QuoteHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req service.QuoteRequest
	if err := decodeAndValidate(r, h.validator, &req); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}
	q, err := service.Quote(req, h.defaultCurrency)
	if err != nil {
		response.FromError(w, "Failed to compute quote", err)
		return
	}
	response.Success(w, q)
}
