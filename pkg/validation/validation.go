// Package validation builds the request validator shared by the HTTP API and
// the CLI.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	customError "github.com/segyhp/dealer-loans/pkg/errors"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// New returns a validator that understands decimal.Decimal fields through the
// decimal_gt, decimal_gte, decimal_lt and decimal_lte tags, and reports
// fields by their json name.
func New() *validator.Validate {
	v := validator.New()

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	rules := map[string]func(cmp int) bool{
		"decimal_gt":  func(cmp int) bool { return cmp > 0 },
		"decimal_gte": func(cmp int) bool { return cmp >= 0 },
		"decimal_lt":  func(cmp int) bool { return cmp < 0 },
		"decimal_lte": func(cmp int) bool { return cmp <= 0 },
	}
	for tag, accept := range rules {
		_ = v.RegisterValidation(tag, decimalRule(accept))
	}
	return v
}

func decimalRule(accept func(cmp int) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		bound, err := decimal.NewFromString(fl.Param())
		if err != nil {
			return false
		}
		return accept(value.Cmp(bound))
	}
}

// Struct validates s and converts the first failure into a validation
// BusinessError naming the offending field.
func Struct(v *validator.Validate, s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return customError.WrapValidation("request", err.Error())
	}
	fe := fieldErrors[0]
	return customError.WrapValidation(fieldPath(fe.Namespace()), describe(fe))
}

// fieldPath drops the top level struct name from a validator namespace.
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of " + fe.Param()
	case "datetime":
		return "must be a date formatted " + fe.Param()
	case "gt", "decimal_gt":
		return "must be greater than " + fe.Param()
	case "gte", "decimal_gte":
		return "must be at least " + fe.Param()
	case "lt", "decimal_lt":
		return "must be less than " + fe.Param()
	case "lte", "decimal_lte":
		return "must be at most " + fe.Param()
	default:
		return fmt.Sprintf("failed the %s rule", fe.Tag())
	}
}
