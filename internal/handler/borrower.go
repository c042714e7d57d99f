package handler

import (
	"net/http"

	"github.com/segyhp/dealer-loans/internal/service"
	"github.com/segyhp/dealer-loans/pkg/response"
	"github.com/segyhp/dealer-loans/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type BorrowerHandler struct {
	service   *service.BorrowerService
	validator *validator.Validate
}

func NewBorrowerHandler(service *service.BorrowerService) *BorrowerHandler {
	return &BorrowerHandler{
		service:   service,
		validator: validation.New(),
	}
}

func (h *BorrowerHandler) List(w http.ResponseWriter, r *http.Request) {
	borrowers, err := h.service.ListBorrowers(r.Context())
	if err != nil {
		response.FromError(w, "Failed to list borrowers", err)
		return
	}
	response.Success(w, borrowers)
}

func (h *BorrowerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid borrower id", err)
		return
	}
	b, err := h.service.GetBorrower(r.Context(), id)
	if err != nil {
		response.FromError(w, "Failed to get borrower", err)
		return
	}
	response.Success(w, b)
}

// Edit changes the master borrower record; loans keep their snapshot.
func (h *BorrowerHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid borrower id", err)
		return
	}
	var req service.BorrowerInput
	if err := decodeAndValidate(r, h.validator, &req); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}
	b, err := h.service.EditBorrower(r.Context(), id, req)
	if err != nil {
		response.FromError(w, "Failed to edit borrower", err)
		return
	}
	response.Success(w, b)
}

// ListApplicants handles GET /applicants?status=
func (h *BorrowerHandler) ListApplicants(w http.ResponseWriter, r *http.Request) {
	status, err := statusFilter(r)
	if err != nil {
		response.BadRequest(w, "Invalid status filter", err)
		return
	}
	applicants, err := h.service.ListApplicants(r.Context(), status)
	if err != nil {
		response.FromError(w, "Failed to list applicants", err)
		return
	}
	response.Success(w, applicants)
}
