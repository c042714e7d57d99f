package handler

import (
	"context"
	"net/http"

	"github.com/segyhp/dealer-loans/internal/domain"
	"github.com/segyhp/dealer-loans/internal/service"
	"github.com/segyhp/dealer-loans/pkg/response"
	"github.com/segyhp/dealer-loans/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type LoanHandler struct {
	service   *service.LoanService
	validator *validator.Validate
}

func NewLoanHandler(service *service.LoanService) *LoanHandler {
	return &LoanHandler{
		service:   service,
		validator: validation.New(),
	}
}

// CreateLoan handles POST /loans
func (h *LoanHandler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	var req service.CreateLoanRequest
	if err := decodeAndValidate(r, h.validator, &req); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	loan, err := h.service.CreateLoan(r.Context(), req)
	if err != nil {
		response.FromError(w, "Failed to create loan", err)
		return
	}
	response.Created(w, service.NewLoanView(loan))
}

// ListLoans handles GET /loans?status=
func (h *LoanHandler) ListLoans(w http.ResponseWriter, r *http.Request) {
	status, err := statusFilter(r)
	if err != nil {
		response.BadRequest(w, "Invalid status filter", err)
		return
	}

	loans, err := h.service.ListLoans(r.Context(), status)
	if err != nil {
		response.FromError(w, "Failed to list loans", err)
		return
	}
	response.Success(w, loanViews(loans))
}

// GetLoan handles GET /loans/{loanId}
func (h *LoanHandler) GetLoan(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "loanId")
	if err != nil {
		response.BadRequest(w, "Invalid loan id", err)
		return
	}

	loan, err := h.service.GetLoan(r.Context(), id)
	if err != nil {
		response.FromError(w, "Failed to get loan", err)
		return
	}
	response.Success(w, service.NewLoanView(loan))
}

// ApproveLoan handles POST /loans/{loanId}/approve
func (h *LoanHandler) ApproveLoan(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, "Failed to approve loan", h.service.ApproveLoan)
}

// RejectLoan handles POST /loans/{loanId}/reject
func (h *LoanHandler) RejectLoan(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, "Failed to reject loan", h.service.RejectLoan)
}

func (h *LoanHandler) decide(w http.ResponseWriter, r *http.Request, failure string, decision func(ctx context.Context, id int) (*domain.Loan, error)) {
	id, err := pathID(r, "loanId")
	if err != nil {
		response.BadRequest(w, "Invalid loan id", err)
		return
	}

	loan, err := decision(r.Context(), id)
	if err != nil {
		response.FromError(w, failure, err)
		return
	}
	response.Success(w, service.NewLoanView(loan))
}

func loanViews(loans []*domain.Loan) []service.LoanView {
	views := make([]service.LoanView, 0, len(loans))
	for _, l := range loans {
		views = append(views, service.NewLoanView(l))
	}
	return views
}
