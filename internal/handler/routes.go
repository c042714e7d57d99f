package handler

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Handlers groups everything the router serves.
type Handlers struct {
	Health      *HealthHandler
	Loans       *LoanHandler
	Payments    *PaymentHandler
	Dealerships *DealershipHandler
	Borrowers   *BorrowerHandler
	Quote       *QuoteHandler
}

func NewRouter(h Handlers, middleware ...mux.MiddlewareFunc) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware...)

	// Health check
	router.HandleFunc("/health", h.Health.Health).Methods(http.MethodGet)
	router.HandleFunc("/health/ready", h.Health.Ready).Methods(http.MethodGet)

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/quote", h.Quote.Quote).Methods(http.MethodPost)
	api.HandleFunc("/fields/{entity}", Fields).Methods(http.MethodGet)

	api.HandleFunc("/loans", h.Loans.CreateLoan).Methods(http.MethodPost)
	api.HandleFunc("/loans", h.Loans.ListLoans).Methods(http.MethodGet)
	api.HandleFunc("/loans/{loanId}", h.Loans.GetLoan).Methods(http.MethodGet)
	api.HandleFunc("/loans/{loanId}/approve", h.Loans.ApproveLoan).Methods(http.MethodPost)
	api.HandleFunc("/loans/{loanId}/reject", h.Loans.RejectLoan).Methods(http.MethodPost)
	api.HandleFunc("/loans/{loanId}/payments/{paymentId}/pay", h.Payments.MarkPaid).Methods(http.MethodPost)
	api.HandleFunc("/loans/{loanId}/payments/{paymentId}", h.Payments.EditPayment).Methods(http.MethodPatch)

	api.HandleFunc("/payments", h.Payments.ListByMonth).Methods(http.MethodGet)
	api.HandleFunc("/payments/upcoming", h.Payments.Upcoming).Methods(http.MethodGet)
	api.HandleFunc("/payments/overdue", h.Payments.Overdue).Methods(http.MethodGet)

	api.HandleFunc("/dealerships", h.Dealerships.List).Methods(http.MethodGet)
	api.HandleFunc("/dealerships", h.Dealerships.Add).Methods(http.MethodPost)
	api.HandleFunc("/dealerships/{id}", h.Dealerships.Get).Methods(http.MethodGet)
	api.HandleFunc("/dealerships/{id}", h.Dealerships.Edit).Methods(http.MethodPut)

	api.HandleFunc("/borrowers", h.Borrowers.List).Methods(http.MethodGet)
	api.HandleFunc("/borrowers/{id}", h.Borrowers.Get).Methods(http.MethodGet)
	api.HandleFunc("/borrowers/{id}", h.Borrowers.Edit).Methods(http.MethodPut)
	api.HandleFunc("/applicants", h.Borrowers.ListApplicants).Methods(http.MethodGet)

	return router
}
