package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/segyhp/dealer-loans/internal/domain"
	"github.com/segyhp/dealer-loans/internal/mocks"
	"github.com/segyhp/dealer-loans/internal/repository"
	"github.com/segyhp/dealer-loans/internal/service"
	"github.com/segyhp/dealer-loans/pkg/response"

	"github.com/alicebob/miniredis/v2"
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
}

// newTestRouter serves the full API over an in-memory store holding the
// ACG dealership. The clock of the payment handler is fixed at 2025-08-02.
func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()
	store := repository.NewMemoryStore()
	log, _ := test.NewNullLogger()

	loans := repository.NewLoanRepository(store)
	applicants := repository.NewPotentialBorrowerRepository(store)
	borrowers := repository.NewBorrowerRepository(store)
	dealerships := repository.NewDealershipRepository(store)
	require.NoError(t, dealerships.Insert(context.Background(),
		domain.Dealership{ID: 1, Name: "AUTOMOTORA CARLOS GONZALEZ", Code: "ACG", Phone: "1234567890"}))

	payments := NewPaymentHandler(service.NewPaymentService(loans, log))
	payments.now = func() time.Time { return time.Date(2025, 8, 2, 10, 0, 0, 0, time.UTC) }

	return NewRouter(Handlers{
		Health:      NewHealthHandler(store, nil, time.Second),
		Loans:       NewLoanHandler(service.NewLoanService(loans, applicants, borrowers, dealerships, domain.IDStrategyCount, log)),
		Payments:    payments,
		Dealerships: NewDealershipHandler(service.NewDealershipService(dealerships, log)),
		Borrowers:   NewBorrowerHandler(service.NewBorrowerService(borrowers, applicants, log)),
		Quote:       NewQuoteHandler(domain.CurrencyUYU),
	}, response.RequestIDMiddleware)
}

func do(t *testing.T, router http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

const createLoanBody = `{
	"dealership_id": 1,
	"borrower": {"name": "Charles", "phone": "1234567890", "notes": "No notes"},
	"car": {"brand": "Toyota", "model": "Corolla"},
	"principal": "10000",
	"periodic_rate": "0.02",
	"installment_count": 12,
	"start_date": "2025-07-01",
	"currency": "UYU"
}`

func TestLoanLifecycle(t *testing.T) {
	router := newTestRouter(t)

	rec, env := do(t, router, http.MethodPost, "/api/v1/loans", createLoanBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(response.RequestIDHeader))

	var created service.LoanView
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, 1, created.ID)
	assert.Equal(t, "ACG-00000001", created.ReadableCode)
	assert.Equal(t, domain.StatusPotential, created.Status)
	assert.Len(t, created.Installments, 12)
	assert.NotEmpty(t, created.Installments[0].AmountDisplay)

	rec, _ = do(t, router, http.MethodPost, "/api/v1/loans/1/payments/1/pay", `{"paid_date": "2025-07-01"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, _ = do(t, router, http.MethodPost, "/api/v1/loans/1/approve", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, env = do(t, router, http.MethodPost, "/api/v1/loans/1/payments/1/pay", `{"paid_date": "2025-07-01"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var paid service.LoanView
	require.NoError(t, json.Unmarshal(env.Data, &paid))
	assert.Equal(t, domain.PaymentPaid, paid.Installments[0].Status)
	assert.Equal(t, "2025-07-01", paid.Installments[0].PaidDate)
	assert.True(t, paid.Totals.TotalPaid.Equal(paid.Installments[0].Amount))

	rec, _ = do(t, router, http.MethodPatch, "/api/v1/loans/1/payments/2", `{"amount": "900", "due_date": "2025-08-10"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, env = do(t, router, http.MethodGet, "/api/v1/payments?month=2025-08", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var due []service.InstallmentView
	require.NoError(t, json.Unmarshal(env.Data, &due))
	require.Len(t, due, 1)
	assert.Equal(t, "2025-08-10", due[0].DueDate)
	assert.Equal(t, "ACG-00000001", due[0].ReadableCode)

	rec, env = do(t, router, http.MethodGet, "/api/v1/payments/upcoming?days=10", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var upcoming []service.InstallmentView
	require.NoError(t, json.Unmarshal(env.Data, &upcoming))
	require.Len(t, upcoming, 1)
	assert.Equal(t, 2, upcoming[0].ID)

	rec, env = do(t, router, http.MethodGet, "/api/v1/loans?status=active", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var active []service.LoanView
	require.NoError(t, json.Unmarshal(env.Data, &active))
	assert.Len(t, active, 1)

	rec, _ = do(t, router, http.MethodPost, "/api/v1/loans/1/reject", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, env = do(t, router, http.MethodGet, "/api/v1/borrowers/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var borrower domain.Borrower
	require.NoError(t, json.Unmarshal(env.Data, &borrower))
	assert.Equal(t, "Charles", borrower.Name)
}

func TestCreateLoan_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantIn     string
	}{
		{"malformed json", `{"dealership_id":`, http.StatusBadRequest, "body"},
		{"missing borrower name", `{"dealership_id":1,"borrower":{},"car":{"brand":"a","model":"b"},"principal":"1","periodic_rate":"0.1","installment_count":1,"start_date":"2025-07-01","currency":"UYU"}`, http.StatusBadRequest, "borrower.name"},
		{"rate above one", `{"dealership_id":1,"borrower":{"name":"a"},"car":{"brand":"a","model":"b"},"principal":"1","periodic_rate":"1.5","installment_count":1,"start_date":"2025-07-01","currency":"UYU"}`, http.StatusBadRequest, "periodic_rate"},
		{"unknown dealership", `{"dealership_id":7,"borrower":{"name":"a"},"car":{"brand":"a","model":"b"},"principal":"1","periodic_rate":"0.1","installment_count":1,"start_date":"2025-07-01","currency":"UYU"}`, http.StatusNotFound, "7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := do(t, newTestRouter(t), http.MethodPost, "/api/v1/loans", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.False(t, env.Success)
			assert.Contains(t, env.Error, tt.wantIn)
		})
	}
}

func TestGetLoan_Errors(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := do(t, router, http.MethodGet, "/api/v1/loans/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env := do(t, router, http.MethodGet, "/api/v1/loans/9", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", env.Code)

	rec, _ = do(t, router, http.MethodGet, "/api/v1/loans?status=closed", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDealershipEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rec, env := do(t, router, http.MethodPost, "/api/v1/dealerships", `{"name":"Sur","dealership_code":"sur","phone":"099"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var d domain.Dealership
	require.NoError(t, json.Unmarshal(env.Data, &d))
	assert.Equal(t, 2, d.ID)
	assert.Equal(t, "SUR", d.Code)

	rec, _ = do(t, router, http.MethodPost, "/api/v1/dealerships", `{"name":"Dup","dealership_code":"ACG"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, _ = do(t, router, http.MethodPut, "/api/v1/dealerships/2", `{"name":"Sur Motors","dealership_code":"SUR"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env = do(t, router, http.MethodGet, "/api/v1/dealerships", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var all []domain.Dealership
	require.NoError(t, json.Unmarshal(env.Data, &all))
	require.Len(t, all, 2)
	assert.Equal(t, "Sur Motors", all[1].Name)
}

func TestQuoteEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec, env := do(t, router, http.MethodPost, "/api/v1/quote", `{"principal":"10000","periodic_rate":"0.02","installment_count":10}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var q service.QuoteView
	require.NoError(t, json.Unmarshal(env.Data, &q))
	assert.Equal(t, "1200", q.MonthlyInstallment.String())
	assert.Equal(t, domain.CurrencyUYU, q.Currency)

	rec, _ = do(t, router, http.MethodPost, "/api/v1/quote", `{"periodic_rate":"0.02","installment_count":10}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFieldsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec, env := do(t, router, http.MethodGet, "/api/v1/fields/dealership", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var fields []domain.FieldDescriptor
	require.NoError(t, json.Unmarshal(env.Data, &fields))
	assert.NotEmpty(t, fields)

	rec, _ = do(t, router, http.MethodGet, "/api/v1/fields/spaceship", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthReady(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := &mocks.MockTableStore{}
	store.On("Ping", mock.Anything).Return(nil).Once()
	store.On("Ping", mock.Anything).Return(errors.New("dir missing")).Once()

	h := NewHealthHandler(store, client, time.Second)

	rec := httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"redis":"ok"`)

	rec = httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "dir missing")
	store.AssertExpectations(t)
}
