// Package docstore describes the query model understood by the document
// store backends and the Store interface they implement.
package docstore

import (
	"context"
	"strings"
)

//go:generate moq -rm -out store_mock.go . Store

type Store interface {
	Find(ctx context.Context, collection string, q Query) (DocumentIterator, error)
	Count(ctx context.Context, collection string, q Query) (int64, error)
	Get(ctx context.Context, collection, id string) ([]byte, error)
	Upsert(ctx context.Context, collection, id string, document []byte) error
	// MergeAndUpsert merges document into the stored document with the same id,
	// or inserts it when absent. When condition does not hold for the stored
	// document, the stored document is returned unchanged and applied is false.
	MergeAndUpsert(ctx context.Context, collection, id string, document []byte, condition *Condition) (merged []byte, applied bool, err error)
}

// DocumentIterator walks the documents returned by Find. Callers must call
// Close when done.
type DocumentIterator interface {
	Next() bool
	Document() []byte
	Err() error
	Close()
}

// SelectingExpression is anything that can produce a value for a selection
type SelectingExpression interface {
	selectingExpression()
}

// Identifier addresses a field in a stored document by its path
type Identifier struct {
	Path []string
}

func NewIdentifier(dotted string) Identifier {
	return Identifier{Path: strings.Split(dotted, ".")}
}

func (i Identifier) String() string {
	return strings.Join(i.Path, ".")
}

func (Identifier) selectingExpression() {}

// Constant selects the same value for every document
type Constant struct {
	Value any
}

func (Constant) selectingExpression() {}

type AggregateOperator string

const (
	AggregateAvg           AggregateOperator = "AVG"
	AggregateMin           AggregateOperator = "MIN"
	AggregateMax           AggregateOperator = "MAX"
	AggregateSum           AggregateOperator = "SUM"
	AggregateCount         AggregateOperator = "COUNT"
	AggregateDistinctCount AggregateOperator = "DISTINCT_COUNT"
	AggregateDistinctArray AggregateOperator = "DISTINCT_ARRAY"
)

type Aggregate struct {
	Operator   AggregateOperator
	Identifier Identifier
}

func (Aggregate) selectingExpression() {}

type Selection struct {
	Expression SelectingExpression
	Alias      string
}

type FilterOperator string

const (
	FilterAnd       FilterOperator = "AND"
	FilterOr        FilterOperator = "OR"
	FilterEq        FilterOperator = "EQ"
	FilterNeq       FilterOperator = "NEQ"
	FilterGt        FilterOperator = "GT"
	FilterGe        FilterOperator = "GE"
	FilterLt        FilterOperator = "LT"
	FilterLe        FilterOperator = "LE"
	FilterIn        FilterOperator = "IN"
	FilterNotIn     FilterOperator = "NOT_IN"
	FilterLike      FilterOperator = "LIKE"
	FilterExists    FilterOperator = "EXISTS"
	FilterNotExists FilterOperator = "NOT_EXISTS"
)

// Filter is either a composite over Children (AND, OR) or a leaf relating
// the field at Identifier to Value
type Filter struct {
	Operator   FilterOperator
	Identifier Identifier
	Value      any
	Children   []Filter
}

func (f Filter) IsComposite() bool {
	return f.Operator == FilterAnd || f.Operator == FilterOr
}

func Eq(path string, value any) Filter {
	return Filter{Operator: FilterEq, Identifier: NewIdentifier(path), Value: value}
}

func All(children ...Filter) Filter {
	return Filter{Operator: FilterAnd, Children: children}
}

type Sort struct {
	Expression SelectingExpression
	Descending bool
}

type Query struct {
	Selections []Selection
	Filter     *Filter
	GroupBy    []Identifier
	Sort       []Sort
	Limit      int
	Offset     int
}

type ConditionOperator string

const (
	ConditionEquals      ConditionOperator = "EQUALS"
	ConditionLessThan    ConditionOperator = "LESS_THAN"
	ConditionGreaterThan ConditionOperator = "GREATER_THAN"
)

// Condition guards a merge and upsert. It compares the field at Identifier
// in the currently stored document with Value.
type Condition struct {
	Identifier Identifier
	Operator   ConditionOperator
	Value      any
}
