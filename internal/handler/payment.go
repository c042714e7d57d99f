package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/segyhp/dealer-loans/internal/service"
	customError "github.com/segyhp/dealer-loans/pkg/errors"
	"github.com/segyhp/dealer-loans/pkg/response"
	"github.com/segyhp/dealer-loans/pkg/utils"
	"github.com/segyhp/dealer-loans/pkg/validation"

	"github.com/go-playground/validator/v10"
)

const defaultUpcomingDays = 7

type PaymentHandler struct {
	service   *service.PaymentService
	validator *validator.Validate
	now       func() time.Time
}

func NewPaymentHandler(service *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		service:   service,
		validator: validation.New(),
		now:       time.Now,
	}
}

// MarkPaid handles POST /loans/{loanId}/payments/{paymentId}/pay
func (h *PaymentHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	loanID, paymentID, err := paymentPath(r)
	if err != nil {
		response.BadRequest(w, "Invalid path", err)
		return
	}
	var req service.MarkPaidRequest
	if err := decodeAndValidate(r, h.validator, &req); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}
	paidDate, err := utils.ParseDate(req.PaidDate)
	if err != nil {
		response.BadRequest(w, "Invalid paid date", customError.WrapValidation("paid_date", err.Error()))
		return
	}

	loan, err := h.service.MarkPaymentPaid(r.Context(), loanID, paymentID, paidDate)
	if err != nil {
		response.FromError(w, "Failed to mark payment as paid", err)
		return
	}
	response.Success(w, service.NewLoanView(loan))
}

// EditPayment handles PATCH /loans/{loanId}/payments/{paymentId}
func (h *PaymentHandler) EditPayment(w http.ResponseWriter, r *http.Request) {
	loanID, paymentID, err := paymentPath(r)
	if err != nil {
		response.BadRequest(w, "Invalid path", err)
		return
	}
	var req service.EditPaymentRequest
	if err := decodeAndValidate(r, h.validator, &req); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	loan, err := h.service.EditPayment(r.Context(), loanID, paymentID, req)
	if err != nil {
		response.FromError(w, "Failed to edit payment", err)
		return
	}
	response.Success(w, service.NewLoanView(loan))
}

// ListByMonth handles GET /payments?month=YYYY-MM. The current month is
// used when month is omitted.
func (h *PaymentHandler) ListByMonth(w http.ResponseWriter, r *http.Request) {
	month := h.now()
	if raw := r.URL.Query().Get("month"); raw != "" {
		parsed, err := time.Parse("2006-01", raw)
		if err != nil {
			response.BadRequest(w, "Invalid month", customError.WrapValidation("month", "must be YYYY-MM"))
			return
		}
		month = parsed
	}

	views, err := h.service.PaymentsDueInMonth(r.Context(), month.Year(), month.Month())
	if err != nil {
		response.FromError(w, "Failed to list payments", err)
		return
	}
	response.Success(w, views)
}

// Upcoming handles GET /payments/upcoming?days=
func (h *PaymentHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	days := defaultUpcomingDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			response.BadRequest(w, "Invalid days", customError.WrapValidation("days", "must be a non-negative integer"))
			return
		}
		days = n
	}

	views, err := h.service.UpcomingInstallments(r.Context(), h.now(), days)
	if err != nil {
		response.FromError(w, "Failed to list upcoming payments", err)
		return
	}
	response.Success(w, views)
}

// Overdue handles GET /payments/overdue
func (h *PaymentHandler) Overdue(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.OverdueInstallments(r.Context(), h.now())
	if err != nil {
		response.FromError(w, "Failed to list overdue payments", err)
		return
	}
	response.Success(w, views)
}

func paymentPath(r *http.Request) (loanID, paymentID int, err error) {
	if loanID, err = pathID(r, "loanId"); err != nil {
		return 0, 0, err
	}
	if paymentID, err = pathID(r, "paymentId"); err != nil {
		return 0, 0, err
	}
	return loanID, paymentID, nil
}
