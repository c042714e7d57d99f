package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	customError "github.com/segyhp/dealer-loans/pkg/errors"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{customError.WrapValidation("name", "is required"), http.StatusBadRequest},
		{customError.WrapArithmetic("installment count must be greater than 0"), http.StatusBadRequest},
		{customError.WrapNotFound("loan", 1), http.StatusNotFound},
		{customError.WrapAlreadyExists("loan", 1), http.StatusConflict},
		{customError.WrapInvalidTransition("loan", "Aprobado", "Rechazado"), http.StatusConflict},
		{customError.WrapLoanNotApproved(1), http.StatusConflict},
		{customError.WrapStorageError(errors.New("disk")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func TestFromError(t *testing.T) {
	rec := httptest.NewRecorder()
	FromError(rec, "Failed to get loan", customError.WrapNotFound("loan", 7))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Equal(t, "Failed to get loan", body.Message)
	assert.Contains(t, body.Error, "7")
	assert.Equal(t, customError.Code(customError.WrapNotFound("loan", 7)), body.Code)
}

func TestFromError_HidesInternalErrors(t *testing.T) {
	previous := Logger
	logger, hook := test.NewNullLogger()
	Logger = logger
	t.Cleanup(func() { Logger = previous })

	rec := httptest.NewRecorder()
	FromError(rec, "Failed to list loans", customError.WrapStorageError(errors.New("connection refused")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "Failed to list loans", hook.LastEntry().Message)
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	h := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc", seen)
}

func TestLoggingMiddleware(t *testing.T) {
	logger, hook := test.NewNullLogger()
	h := RequestIDMiddleware(LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/loans", nil))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, http.StatusTeapot, entry.Data["status"])
	assert.Equal(t, "/api/v1/loans", entry.Data["path"])
	assert.NotEmpty(t, entry.Data["request_id"])
}
