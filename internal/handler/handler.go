package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/segyhp/dealer-loans/internal/domain"
	customError "github.com/segyhp/dealer-loans/pkg/errors"
	"github.com/segyhp/dealer-loans/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

// decodeAndValidate reads a JSON body into dst and checks its validate tags.
func decodeAndValidate(r *http.Request, v *validator.Validate, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return customError.WrapValidation("body", err.Error())
	}
	return validation.Struct(v, dst)
}

// pathID reads a positive integer path variable.
func pathID(r *http.Request, name string) (int, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, customError.WrapValidation(name, "must be a positive integer")
	}
	return id, nil
}

// statusFilter reads the optional ?status= query parameter. Besides the
// stored labels it accepts potential, active (or approved) and rejected.
func statusFilter(r *http.Request) (*domain.ApprovalStatus, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("status"))
	if raw == "" {
		return nil, nil
	}

	var status domain.ApprovalStatus
	switch strings.ToLower(raw) {
	case "potential", "pending":
		status = domain.StatusPotential
	case "active", "approved":
		status = domain.StatusApproved
	case "rejected":
		status = domain.StatusRejected
	default:
		parsed, err := domain.ParseApprovalStatus(raw)
		if err != nil {
			return nil, err
		}
		status = parsed
	}
	return &status, nil
}
