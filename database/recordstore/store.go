package recordstore

import (
	"context"
	"errors"
)

// Table names shared by every backend.
const (
	TableLabTest      = "lab_test"
	TableComboPackage = "combo_package"
	TableBooking      = "booking"
)

var ErrNotFound = errors.New("record not found")

// Operator is a comparison supported in where conditions.
type Operator string

const (
	OpEquals   Operator = "equals"
	OpContains Operator = "contains" // case-insensitive substring
)

type Condition struct {
	Field    string
	Operator Operator
	Value    interface{}
}

type Order struct {
	Field      string
	Descending bool
}

// Query selects records from one table. A zero Limit means no limit.
type Query struct {
	Fields  []string
	Where   []Condition
	OrderBy []Order
	Limit   int
	Offset  int
}

// Store is the remote record store. Records are addressed by their string "id"
// field; out arguments are pointers to a struct or a slice of structs.
type Store interface {
	FetchRecords(ctx context.Context, table string, q Query, out interface{}) error
	GetRecordByID(ctx context.Context, table, id string, out interface{}) error
	CreateRecord(ctx context.Context, table string, record interface{}) error
	UpdateRecord(ctx context.Context, table, id string, fields map[string]interface{}) error
}

// Eq is shorthand for an equals condition.
func Eq(field string, value interface{}) Condition {
	return Condition{Field: field, Operator: OpEquals, Value: value}
}

// Contains is shorthand for a contains condition.
func Contains(field, value string) Condition {
	return Condition{Field: field, Operator: OpContains, Value: value}
}
