package domain

import (
	customError "github.com/segyhp/dealer-loans/pkg/errors"
)

// FieldKind is the semantic type of an entity field, used by generic forms
// and tables.
type FieldKind string

const (
	KindText     FieldKind = "text"
	KindInteger  FieldKind = "integer"
	KindDecimal  FieldKind = "decimal"
	KindDate     FieldKind = "date"
	KindCurrency FieldKind = "currency"
	KindStatus   FieldKind = "status"
	KindNested   FieldKind = "nested"
)

// FieldDescriptor describes one field of an entity. Internal fields are
// carried in records but never shown or edited through generic forms.
type FieldDescriptor struct {
	Name        string    `json:"name"`
	Kind        FieldKind `json:"kind"`
	Displayable bool      `json:"displayable"`
}

// Entity names an entity type of the registry.
type Entity string

const (
	EntityBorrower          Entity = "borrower"
	EntityPotentialBorrower Entity = "potential_borrower"
	EntityCar               Entity = "car"
	EntityDealership        Entity = "dealership"
	EntitySchedule          Entity = "schedule"
	EntityPayment           Entity = "payment"
	EntityLoan              Entity = "loan"
)

var fieldRegistry = map[Entity][]FieldDescriptor{
	EntityBorrower: {
		{"borrower_id", KindInteger, false},
		{"name", KindText, true},
		{"phone", KindText, true},
		{"notes", KindText, true},
		{"files_path", KindText, false},
	},
	EntityPotentialBorrower: {
		{"borrower_id", KindInteger, false},
		{"name", KindText, true},
		{"phone", KindText, true},
		{"notes", KindText, true},
		{"files_path", KindText, false},
		{"status", KindStatus, true},
	},
	EntityCar: {
		{"borrower_id", KindInteger, false},
		{"brand", KindText, true},
		{"model", KindText, true},
	},
	EntityDealership: {
		{"dealership_id", KindInteger, false},
		{"name", KindText, true},
		{"dealership_code", KindText, true},
		{"phone", KindText, true},
	},
	EntitySchedule: {
		{"principal", KindDecimal, true},
		{"periodic_rate", KindDecimal, true},
		{"monthly_installment", KindDecimal, true},
		{"start_date", KindDate, true},
		{"installment_count", KindInteger, true},
		{"currency", KindCurrency, true},
		{"installments", KindNested, false},
	},
	EntityPayment: {
		{"id", KindInteger, true},
		{"amount", KindDecimal, true},
		{"due_date", KindDate, true},
		{"status", KindStatus, true},
		{"paid_date", KindDate, true},
	},
	EntityLoan: {
		{"id", KindInteger, true},
		{"readable_code", KindText, true},
		{"status", KindStatus, true},
		{"schedule", KindNested, true},
		{"borrower", KindNested, true},
		{"car", KindNested, true},
		{"dealership", KindNested, true},
	},
}

// DescribeFields returns the ordered field descriptors of an entity type.
func DescribeFields(e Entity) ([]FieldDescriptor, error) {
	fields, ok := fieldRegistry[e]
	if !ok {
		return nil, customError.WrapNotFound("entity", e)
	}
	return append([]FieldDescriptor(nil), fields...), nil
}

// DisplayFields returns the names of the displayable fields of an entity
// type, in order.
func DisplayFields(e Entity) ([]string, error) {
	fields, err := DescribeFields(e)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		if f.Displayable {
			names = append(names, f.Name)
		}
	}
	return names, nil
}

// project orders values by the displayable fields of e. Empty values render
// as NotAvailable.
func project(e Entity, values map[string]string) []FieldValue {
	names, _ := DisplayFields(e)
	out := make([]FieldValue, 0, len(names))
	for _, name := range names {
		v, ok := values[name]
		if !ok || v == "" {
			v = NotAvailable
		}
		out = append(out, FieldValue{Name: name, Value: v})
	}
	return out
}
