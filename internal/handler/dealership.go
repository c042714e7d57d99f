package handler

import (
	"net/http"

	"github.com/segyhp/dealer-loans/internal/service"
	"github.com/segyhp/dealer-loans/pkg/response"
	"github.com/segyhp/dealer-loans/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type DealershipHandler struct {
	service   *service.DealershipService
	validator *validator.Validate
}

func NewDealershipHandler(service *service.DealershipService) *DealershipHandler {
	return &DealershipHandler{
		service:   service,
		validator: validation.New(),
	}
}

func (h *DealershipHandler) List(w http.ResponseWriter, r *http.Request) {
	dealerships, err := h.service.ListDealerships(r.Context())
	if err != nil {
		response.FromError(w, "Failed to list dealerships", err)
		return
	}
	response.Success(w, dealerships)
}

func (h *DealershipHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid dealership id", err)
		return
	}
	d, err := h.service.GetDealership(r.Context(), id)
	if err != nil {
		response.FromError(w, "Failed to get dealership", err)
		return
	}
	response.Success(w, d)
}

func (h *DealershipHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req service.DealershipRequest
	if err := decodeAndValidate(r, h.validator, &req); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}
	d, err := h.service.AddDealership(r.Context(), req)
	if err != nil {
		response.FromError(w, "Failed to add dealership", err)
		return
	}
	response.Created(w, d)
}

func (h *DealershipHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid dealership id", err)
		return
	}
	var req service.DealershipRequest
	if err := decodeAndValidate(r, h.validator, &req); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}
	d, err := h.service.EditDealership(r.Context(), id, req)
	if err != nil {
		response.FromError(w, "Failed to edit dealership", err)
		return
	}
	response.Success(w, d)
}
